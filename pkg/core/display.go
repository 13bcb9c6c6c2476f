package core

import "strings"

// DisplayLevel selects which results are presented.
type DisplayLevel int

// Display levels.
const (
	// ShowAll shows every note and test.
	ShowAll DisplayLevel = iota
	// NotesAndFails shows notes and failed tests.
	NotesAndFails
	// JustFails shows failed tests only.
	JustFails
	// HideAll shows only the summary.
	HideAll
)

// String returns the string representation of the display level.
func (l DisplayLevel) String() string {
	switch l {
	case ShowAll:
		return "show-all"
	case NotesAndFails:
		return "notes-and-fails"
	case JustFails:
		return "just-fails"
	case HideAll:
		return "hide-all"
	default:
		return "unknown"
	}
}

// ParseDisplayLevel converts a string (or its single-letter alias) to a DisplayLevel.
// Returns ShowAll and false if the value is not recognised.
func ParseDisplayLevel(s string) (DisplayLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "show-all", "a":
		return ShowAll, true
	case "notes-and-fails", "n":
		return NotesAndFails, true
	case "just-fails", "f":
		return JustFails, true
	case "hide-all", "h":
		return HideAll, true
	default:
		return ShowAll, false
	}
}

// ShowsNotes reports whether notes are displayed at this level.
func (l DisplayLevel) ShowsNotes() bool {
	return l == ShowAll || l == NotesAndFails
}

// ShowsTest reports whether a test with the given outcome is displayed at this level.
func (l DisplayLevel) ShowsTest(pass bool) bool {
	switch l {
	case ShowAll:
		return true
	case NotesAndFails, JustFails:
		return !pass
	default:
		return false
	}
}

// DisplayLevelNames lists the accepted long names, for flag completion.
func DisplayLevelNames() []string {
	return []string{"show-all", "notes-and-fails", "just-fails", "hide-all"}
}
