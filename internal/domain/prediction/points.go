package prediction

const (
	PointsExact   = 3
	PointsOutcome = 1
	PointsMiss    = 0
)

type Outcome int

const (
	OutcomeAwayWin Outcome = -1
	OutcomeDraw    Outcome = 0
	OutcomeHomeWin Outcome = 1
)

func OutcomeOf(homeGoals, awayGoals int) Outcome {
	switch {
	case homeGoals > awayGoals:
		return OutcomeHomeWin
	case homeGoals < awayGoals:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// Score awards 3 for the exact scoreline, 1 for the correct outcome with a
// wrong scoreline, 0 otherwise.
func Score(predHome, predAway, actualHome, actualAway int) int {
	if predHome == actualHome && predAway == actualAway {
		return PointsExact
	}
	if OutcomeOf(predHome, predAway) == OutcomeOf(actualHome, actualAway) {
		return PointsOutcome
	}
	return PointsMiss
}
