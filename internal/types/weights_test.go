package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 0.4, w.Skills)
	assert.Equal(t, 0.3, w.Experience)
	assert.Equal(t, 0.2, w.Education)
	assert.Equal(t, 0.1, w.Keywords)
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	assert.NoError(t, w.Validate())
}

func TestCriteriaWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights CriteriaWeights
		wantErr bool
	}{
		{"all zero", CriteriaWeights{}, false},
		{"all one", CriteriaWeights{1, 1, 1, 1}, false},
		{"negative skills", CriteriaWeights{Skills: -0.1}, true},
		{"keywords above one", CriteriaWeights{Keywords: 1.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
