package model

// Theme is a visual theme tag for an account type.
type Theme string

// Known themes.
const (
	ThemeBlue    Theme = "blue"
	ThemeEmerald Theme = "emerald"
	ThemeOrange  Theme = "orange"
	ThemePurple  Theme = "purple"
	ThemeRose    Theme = "rose"
	ThemeSlate   Theme = "slate"
	ThemeIndigo  Theme = "indigo"
)

// Themes lists every valid theme name.
var Themes = []Theme{
	ThemeBlue, ThemeEmerald, ThemeOrange, ThemePurple,
	ThemeRose, ThemeSlate, ThemeIndigo,
}

// Valid reports whether the theme is one of the known theme names.
func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// AccountType is a user-defined or built-in account type label. The label
// is the join key used by Account.Type; there is no referential integrity,
// so deleting a type does not touch accounts carrying its label.
type AccountType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Theme Theme  `json:"theme"`
}
