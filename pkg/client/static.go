package client

import (
	"math/rand"
	"sync"
	"time"
)

var staticRecommendations = []string{
	"Maintain a balanced diet rich in vegetables, whole grains, and lean protein",
	"Aim for at least 150 minutes of moderate physical activity per week",
	"Schedule regular check-ups with your healthcare provider",
	"Prioritize 7-9 hours of sleep per night",
	"Manage stress through relaxation techniques or mindfulness practice",
}

// synthesizer fabricates local prediction results for demo deployments.
type synthesizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newSynthesizer(src rand.Source) *synthesizer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &synthesizer{rnd: rand.New(src)}
}

// result fabricates a plausible demo result for a predictor. Scores land
// in [0.05, 0.85] and the level follows the score bands the scoring
// service itself uses.
func (s *synthesizer) result(predictorID, predictorName string) Result {
	s.mu.Lock()
	score := 0.05 + s.rnd.Float64()*0.8
	confidence := 0.7 + s.rnd.Float64()*0.25
	s.mu.Unlock()

	level := RiskLow
	switch {
	case score >= 0.6:
		level = RiskHigh
	case score >= 0.3:
		level = RiskMedium
	}

	name := predictorName
	if name == "" {
		name = predictorID
	}

	return Result{
		PredictorType: predictorID,
		RiskLevel:     level,
		RiskScore:     score,
		Confidence:    confidence,
		Explanation: "Demo mode result for " + name +
			". Values are generated locally and carry no clinical meaning.",
		Recommendations: append([]string(nil), staticRecommendations...),
		Timestamp:       time.Now().Format(time.RFC3339),
	}
}
