package entities

// DefaultTheme is the theme applied when none is chosen.
const DefaultTheme = "default"

// Themes is the fixed palette of selectable presentation themes.
var Themes = []string{
	"default",
	"midnight",
	"sunrise",
	"forest",
	"ocean",
	"slate",
}

// IsValidTheme reports whether name belongs to the fixed palette.
func IsValidTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// NormalizeTheme returns name if it is a palette member, the default
// theme otherwise.
func NormalizeTheme(name string) string {
	if IsValidTheme(name) {
		return name
	}
	return DefaultTheme
}
