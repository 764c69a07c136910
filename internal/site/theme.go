// Package site holds the host page state: theme preference, the showcase
// project catalog and the résumé capability, plus the page template.
package site

import "net/http"

// Theme is the page color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeCookie stores a visitor's theme preference
const ThemeCookie = "theme"

// ParseTheme maps anything other than "dark" to light
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// AriaLabel describes what the toggle button will do next
func (t Theme) AriaLabel() string {
	return "Switch to " + string(t.Toggle()) + " mode"
}

// ThemeFromCookie reads the visitor's theme, falling back when the cookie is absent
func ThemeFromCookie(r *http.Request, fallback Theme) Theme {
	cookie, err := r.Cookie(ThemeCookie)
	if err != nil || cookie.Value == "" {
		return fallback
	}
	return ParseTheme(cookie.Value)
}
