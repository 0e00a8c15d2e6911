package ports

import "time"

// EditEvent is broadcast to a presentation's edit-session subscribers
// after every applied mutation.
type EditEvent struct {
	Type           string      `json:"type"`
	PresentationID string      `json:"presentationId"`
	Timestamp      time.Time   `json:"timestamp"`
	Data           interface{} `json:"data,omitempty"`
}

// EditEvent type constants
const (
	EventSlideAdded        = "slide_added"
	EventSlideDeleted      = "slide_deleted"
	EventSlideUpdated      = "slide_updated"
	EventSlidesReordered   = "slides_reordered"
	EventBackgroundChanged = "background_changed"
	EventNavigated         = "navigated"
	EventConnected         = "connected"
)
