package prediction

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		name                   string
		predHome, predAway     int
		resultHome, resultAway int
		want                   int
	}{
		{"exact win", 2, 1, 2, 1, PointsExact},
		{"exact draw", 1, 1, 1, 1, PointsExact},
		{"exact zero draw", 0, 0, 0, 0, PointsExact},
		{"right outcome wrong score", 3, 1, 2, 0, PointsOutcome},
		{"right draw wrong score", 2, 2, 0, 0, PointsOutcome},
		{"right away win wrong score", 0, 1, 1, 3, PointsOutcome},
		{"wrong outcome", 2, 0, 0, 2, PointsMiss},
		{"predicted draw got home win", 1, 1, 2, 1, PointsMiss},
		{"predicted home win got draw", 2, 1, 1, 1, PointsMiss},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.predHome, tc.predAway, tc.resultHome, tc.resultAway)
			if got != tc.want {
				t.Fatalf("unexpected points: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestOutcomeOf(t *testing.T) {
	if OutcomeOf(3, 1) != 1 {
		t.Fatalf("home win must map to 1")
	}
	if OutcomeOf(1, 1) != 0 {
		t.Fatalf("draw must map to 0")
	}
	if OutcomeOf(0, 2) != -1 {
		t.Fatalf("away win must map to -1")
	}
}
