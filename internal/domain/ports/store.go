package ports

// KeyValueStore is the persisted string store the repositories are built
// on. It is synchronous from the core's point of view; values are
// serialized documents keyed by fixed collection names.
type KeyValueStore interface {
	// Get returns the value for key, and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}
