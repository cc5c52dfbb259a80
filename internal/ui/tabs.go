package ui

// TabID identifies one of the five root tabs.
type TabID int

const (
	TabHome TabID = iota
	TabRankings
	TabSocial
	TabTournaments
	TabSettings
)

// TabCount is the number of root tabs.
const TabCount = 5

func (t TabID) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabRankings:
		return "Rankings"
	case TabSocial:
		return "Social"
	case TabTournaments:
		return "Tournaments"
	case TabSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// TabSelection tracks the active root tab and the previously active one.
//
// Every tab's model stays mounted regardless of selection; switching tabs only
// changes which model receives key input and is rendered. The previous index
// is remembered so a switch can be reversed.
type TabSelection struct {
	active   TabID
	previous TabID
}

// NewTabSelection starts on the home tab.
func NewTabSelection() TabSelection {
	return TabSelection{active: TabHome, previous: TabHome}
}

// Active returns the currently selected tab.
func (s TabSelection) Active() TabID { return s.active }

// Previous returns the tab that was active before the last switch.
func (s TabSelection) Previous() TabID { return s.previous }

// Select switches to the given tab and reports whether the active tab changed.
//
// The previous index is always recorded, so re-selecting the active tab sets
// previous to that same tab. Out-of-range tabs are ignored.
func (s *TabSelection) Select(tab TabID) bool {
	if tab < 0 || tab >= TabCount {
		return false
	}
	changed := tab != s.active
	s.previous = s.active
	s.active = tab
	return changed
}

// Back returns to the previously active tab.
func (s *TabSelection) Back() bool {
	return s.Select(s.previous)
}
