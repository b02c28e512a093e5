package reports

import (
	"testing"
	"time"

	"asthmacare/internal/domain/symptoms"
)

var scoringNow = time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

func entryAt(severity int, recordedAt time.Time) symptoms.Entry {
	return symptoms.Entry{
		ID:          "e-" + recordedAt.Format(time.RFC3339),
		OwnerUserID: "owner-1",
		Severity:    severity,
		RecordedAt:  recordedAt,
	}
}

func TestComputeControlScore_Empty(t *testing.T) {
	a := ComputeControlScore(nil, scoringNow)

	if a.Score != 100 {
		t.Fatalf("expected score 100, got %d", a.Score)
	}
	if a.Level != LevelWellControlled {
		t.Fatalf("expected well_controlled, got %s", a.Level)
	}
	if len(a.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations for empty input, got %d", len(a.Recommendations))
	}
}

func TestComputeControlScore_AllEntriesOlderThanWindow(t *testing.T) {
	entries := []symptoms.Entry{
		entryAt(5, scoringNow.Add(-8*24*time.Hour)),
		entryAt(4, scoringNow.Add(-30*24*time.Hour)),
	}

	a := ComputeControlScore(entries, scoringNow)

	if a.Score != 100 {
		t.Fatalf("expected score 100 with all entries outside window, got %d", a.Score)
	}
	if a.Level != LevelWellControlled {
		t.Fatalf("expected well_controlled, got %s", a.Level)
	}
	if len(a.Recommendations) != 3 {
		t.Fatalf("expected well-controlled recommendations, got %d items", len(a.Recommendations))
	}
}

func TestComputeControlScore_SingleSevereEntry(t *testing.T) {
	a := ComputeControlScore([]symptoms.Entry{entryAt(5, scoringNow)}, scoringNow)

	if a.Score != 75 {
		t.Fatalf("expected score 75, got %d", a.Score)
	}
	if a.Level != LevelPartlyControlled {
		t.Fatalf("expected partly_controlled, got %s", a.Level)
	}
	if len(a.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(a.Recommendations))
	}
}

func TestComputeControlScore_TwoEntries_PoorlyControlled(t *testing.T) {
	entries := []symptoms.Entry{
		entryAt(5, scoringNow.Add(-time.Hour)),
		entryAt(4, scoringNow.Add(-2*24*time.Hour)),
	}

	a := ComputeControlScore(entries, scoringNow)

	if a.Score != 55 {
		t.Fatalf("expected score 55, got %d", a.Score)
	}
	if a.Level != LevelPoorlyControlled {
		t.Fatalf("expected poorly_controlled, got %s", a.Level)
	}
	if len(a.Recommendations) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(a.Recommendations))
	}
}

func TestComputeControlScore_ClampsAtZero(t *testing.T) {
	entries := make([]symptoms.Entry, 0, 10)
	for i := 0; i < 10; i++ {
		entries = append(entries, entryAt(5, scoringNow.Add(-time.Duration(i)*time.Hour)))
	}

	a := ComputeControlScore(entries, scoringNow)

	if a.Score != 0 {
		t.Fatalf("expected score clamped to 0, got %d", a.Score)
	}
	if a.Level != LevelPoorlyControlled {
		t.Fatalf("expected poorly_controlled, got %s", a.Level)
	}
}

func TestComputeControlScore_MixedWindow(t *testing.T) {
	entries := []symptoms.Entry{
		entryAt(5, scoringNow.Add(-time.Hour)),          // cuenta: -25
		entryAt(3, scoringNow.Add(-6*24*time.Hour)),     // cuenta: -15
		entryAt(5, scoringNow.Add(-7*24*time.Hour-1)),   // fuera por un instante
		entryAt(4, scoringNow.Add(-20*24*time.Hour)),    // fuera
		entryAt(2, scoringNow.Add(time.Hour)),           // futuro: no cuenta
	}

	a := ComputeControlScore(entries, scoringNow)

	if a.Score != 60 {
		t.Fatalf("expected score 60, got %d", a.Score)
	}
	if a.Level != LevelPartlyControlled {
		t.Fatalf("expected partly_controlled, got %s", a.Level)
	}
}

func TestComputeControlScore_BoundaryInclusive(t *testing.T) {
	// Un entry exactamente a 7 días está dentro de la ventana (inclusiva).
	a := ComputeControlScore([]symptoms.Entry{
		entryAt(1, scoringNow.Add(-scoringWindow)),
	}, scoringNow)

	if a.Score != 95 {
		t.Fatalf("expected score 95 for boundary entry, got %d", a.Score)
	}
}

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  ControlLevel
	}{
		{100, LevelWellControlled},
		{80, LevelWellControlled},
		{79, LevelPartlyControlled},
		{60, LevelPartlyControlled},
		{59, LevelPoorlyControlled},
		{0, LevelPoorlyControlled},
	}

	for _, c := range cases {
		if got := classify(c.score); got != c.want {
			t.Fatalf("classify(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}
