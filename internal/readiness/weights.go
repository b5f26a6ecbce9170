// Package readiness turns a profile and its platform metrics into a
// readiness report: component scores, insights, ranked opportunities and
// course recommendations. Everything except Engine.Predict is pure.
package readiness

import (
	"fmt"
	"math"

	"readiness-workers/internal/models"
)

// WeightTable holds the contribution of each component to the overall score.
type WeightTable struct {
	Academic    float64 `json:"academic"`
	Algorithmic float64 `json:"algorithmic"`
	Project     float64 `json:"project"`
	Skills      float64 `json:"skills"`
	Community   float64 `json:"community"`
	Network     float64 `json:"network"`
	Experience  float64 `json:"experience"`
	Language    float64 `json:"language"`
}

// CanonicalWeights is the single weight table used for every prediction.
var CanonicalWeights = WeightTable{
	Academic:    0.18,
	Algorithmic: 0.22,
	Project:     0.15,
	Skills:      0.12,
	Community:   0.12,
	Network:     0.08,
	Experience:  0.08,
	Language:    0.05,
}

const weightTolerance = 1e-9

// Values returns the weights in the same order as models.ComponentScores.Values.
func (w WeightTable) Values() []float64 {
	return []float64{
		w.Academic, w.Algorithmic, w.Project, w.Skills,
		w.Community, w.Network, w.Experience, w.Language,
	}
}

func (w WeightTable) Sum() float64 {
	var sum float64
	for _, v := range w.Values() {
		sum += v
	}
	return sum
}

// Validate requires non-negative weights summing to 1.
func (w WeightTable) Validate() error {
	for _, v := range w.Values() {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("weight %v is negative or NaN", v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights sum to %v, want 1", sum)
	}
	return nil
}

// Overall is round(Σ weight·score), half away from zero.
func (w WeightTable) Overall(scores models.ComponentScores) int {
	weights := w.Values()
	var total float64
	for i, s := range scores.Values() {
		total += weights[i] * s
	}
	return int(math.Round(total))
}
