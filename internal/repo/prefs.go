package repo

import "errors"

// Theme values accepted in stored preferences.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences is the persisted dashboard state for one user: which widgets
// are visible and in what order, named layout presets, and the theme.
type Preferences struct {
	Layout  []string            `json:"layout"`
	Presets map[string][]string `json:"presets"`
	Theme   string              `json:"theme"`
}

// PreferenceRepository persists dashboard preferences as opaque JSON.
type PreferenceRepository interface {
	Get(userID int) (Preferences, error)
	Save(userID int, prefs Preferences) error
	Reset(userID int) error
}

// ErrPreferencesNotFound is returned when a user has no stored preferences.
// Callers substitute the role default; it is never surfaced as a failure.
var ErrPreferencesNotFound = errors.New("preferences not found")

// DefaultLayout returns the documented default widget layout for a role.
func DefaultLayout(role string) []string {
	switch role {
	case "operator":
		return []string{
			"kpi-total-items", "kpi-writeoff",
			"chart-branch-count", "chart-category-count",
		}
	case "auditor":
		return []string{
			"kpi-total-value", "kpi-pending-value",
			"chart-evolution",
			"chart-branch", "table-top-items",
		}
	default: // admin, approver
		return []string{
			"kpi-total-value", "kpi-total-items", "kpi-pending-value", "kpi-writeoff",
			"chart-evolution",
			"chart-branch", "chart-category",
			"table-top-items",
		}
	}
}

// DefaultPreferences is the fallback when nothing is stored or the stored
// entry was corrupt.
func DefaultPreferences(role string) Preferences {
	return Preferences{
		Layout:  DefaultLayout(role),
		Presets: map[string][]string{},
		Theme:   ThemeLight,
	}
}

// Normalize repairs a loaded Preferences value in place of crashing on bad
// state: an unknown theme or empty layout falls back to the role default,
// a nil preset map becomes empty.
func Normalize(p Preferences, role string) Preferences {
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	if len(p.Layout) == 0 {
		p.Layout = DefaultLayout(role)
	}
	if p.Presets == nil {
		p.Presets = map[string][]string{}
	}
	return p
}
