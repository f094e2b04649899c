package types

import (
	"github.com/go-playground/validator/v10"
)

// CriteriaWeights controls how much each sub-score contributes to the overall
// score. Weights are not normalized.
type CriteriaWeights struct {
	Skills     float64 `json:"skills" validate:"gte=0,lte=1"`
	Experience float64 `json:"experience" validate:"gte=0,lte=1"`
	Education  float64 `json:"education" validate:"gte=0,lte=1"`
	Keywords   float64 `json:"keywords" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the stock weighting.
func DefaultWeights() CriteriaWeights {
	return CriteriaWeights{
		Skills:     0.4,
		Experience: 0.3,
		Education:  0.2,
		Keywords:   0.1,
	}
}

// Sum returns the total of all four weights.
func (w CriteriaWeights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Keywords
}

// Validate checks that every weight lies in [0,1].
func (w CriteriaWeights) Validate() error {
	validate := validator.New()
	return validate.Struct(w)
}
