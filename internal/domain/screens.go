package domain

// FunnelScreen is one step in the fixed post-quiz screen sequence.
type FunnelScreen string

const (
	ScreenA        FunnelScreen = "A"
	ScreenB        FunnelScreen = "B"
	ScreenC1       FunnelScreen = "C1"
	ScreenC2       FunnelScreen = "C2"
	ScreenC3       FunnelScreen = "C3"
	ScreenD        FunnelScreen = "D"
	ScreenE        FunnelScreen = "E"
	ScreenF        FunnelScreen = "F"
	ScreenComplete FunnelScreen = "complete"
)

// funnelScreenOrder is the strictly linear post-quiz sequence. No branching,
// no conditional skipping.
var funnelScreenOrder = []FunnelScreen{
	ScreenA, ScreenB, ScreenC1, ScreenC2, ScreenC3, ScreenD, ScreenE, ScreenF, ScreenComplete,
}

// ValidFunnelScreen reports whether the screen is part of the sequence.
func ValidFunnelScreen(screen FunnelScreen) bool {
	for _, s := range funnelScreenOrder {
		if s == screen {
			return true
		}
	}
	return false
}

// NextScreen returns the screen after the given one, or false at the end of
// the sequence (and for unknown screens).
func NextScreen(current FunnelScreen) (FunnelScreen, bool) {
	for i, s := range funnelScreenOrder {
		if s == current {
			if i == len(funnelScreenOrder)-1 {
				return "", false
			}
			return funnelScreenOrder[i+1], true
		}
	}
	return "", false
}

// PreviousScreen returns the screen before the given one, or false at the
// start of the sequence (and for unknown screens).
func PreviousScreen(current FunnelScreen) (FunnelScreen, bool) {
	for i, s := range funnelScreenOrder {
		if s == current {
			if i == 0 {
				return "", false
			}
			return funnelScreenOrder[i-1], true
		}
	}
	return "", false
}
