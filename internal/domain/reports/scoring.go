package reports

import (
	"time"

	"asthmacare/internal/domain/symptoms"
)

type ControlLevel string

const (
	LevelWellControlled   ControlLevel = "well_controlled"
	LevelPartlyControlled ControlLevel = "partly_controlled"
	LevelPoorlyControlled ControlLevel = "poorly_controlled"
)

// scoringWindow: solo cuentan los entries de los últimos 7 días.
const scoringWindow = 7 * 24 * time.Hour

// severityPenalty: cada entry resta severity × 5 puntos.
const severityPenalty = 5

type Assessment struct {
	Score           int
	Level           ControlLevel
	Recommendations []string
}

var noSymptomsRecommendations = []string{
	"Keep logging how you feel, even on good days",
	"Continue your controller medication as prescribed",
}

var levelRecommendations = map[ControlLevel][]string{
	LevelWellControlled: {
		"Continue your current treatment plan",
		"Keep avoiding your known triggers",
		"Log symptoms promptly so trends stay visible",
	},
	LevelPartlyControlled: {
		"Review inhaler technique with your pharmacist or doctor",
		"Take your controller medication at the same time every day",
		"Consider booking a check-up to review your treatment plan",
	},
	LevelPoorlyControlled: {
		"Contact your doctor soon to review your treatment",
		"Keep your rescue inhaler within reach at all times",
		"Avoid known triggers until symptoms settle",
		"Seek emergency care immediately if breathing worsens",
	},
}

// ComputeControlScore es una función pura sobre los entries + el reloj
// inyectado. Arranca en 100 y descuenta severity×5 por cada entry dentro
// de la ventana de 7 días; el score nunca baja de 0.
func ComputeControlScore(entries []symptoms.Entry, now time.Time) Assessment {
	if len(entries) == 0 {
		return Assessment{
			Score:           100,
			Level:           LevelWellControlled,
			Recommendations: noSymptomsRecommendations,
		}
	}

	cutoff := now.Add(-scoringWindow)

	score := 100
	for _, e := range entries {
		// Ventana inclusiva: [now-7d, now].
		if e.RecordedAt.Before(cutoff) || e.RecordedAt.After(now) {
			continue
		}
		score -= e.Severity * severityPenalty
	}
	if score < 0 {
		score = 0
	}

	level := classify(score)

	return Assessment{
		Score:           score,
		Level:           level,
		Recommendations: levelRecommendations[level],
	}
}

func classify(score int) ControlLevel {
	switch {
	case score >= 80:
		return LevelWellControlled
	case score >= 60:
		return LevelPartlyControlled
	default:
		return LevelPoorlyControlled
	}
}
