package internal

import "strings"

// MaskName renders a display name for non-premium viewers: the first
// letter of each name part followed by dots, so "Asha Rao" becomes
// "A..... R.....". Falls back to "User" when both parts are blank.
func MaskName(firstName, lastName string) string {
	mask := func(s string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return ""
		}
		return strings.ToUpper(s[:1]) + "....."
	}

	var parts []string
	if m := mask(firstName); m != "" {
		parts = append(parts, m)
	}
	if m := mask(lastName); m != "" {
		parts = append(parts, m)
	}
	if len(parts) == 0 {
		return "User"
	}
	return strings.Join(parts, " ")
}

// DisplayName picks the full or masked form of a profile's name
// depending on whether the viewer has an active premium plan.
func DisplayName(p Profile, premium bool) string {
	if premium {
		full := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
		if full != "" {
			return full
		}
		return "User"
	}
	return MaskName(p.FirstName, p.LastName)
}
