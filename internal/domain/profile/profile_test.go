package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMI(t *testing.T) {
	p := UserHealthProfile{HeightCM: 170, WeightKG: 70}

	assert.InDelta(t, 24.22, p.BMI(), 0.01)
}

func TestBMI_ZeroHeight(t *testing.T) {
	p := UserHealthProfile{HeightCM: 0, WeightKG: 70}

	assert.Zero(t, p.BMI())
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		name     string
		heightCM float64
		weightKG float64
		want     string
	}{
		{"underweight", 180, 55, "Underweight"},
		{"normal", 170, 70, "Normal weight"},
		{"overweight", 170, 75, "Overweight"},
		{"obese", 160, 80, "Obese"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := UserHealthProfile{HeightCM: tt.heightCM, WeightKG: tt.weightKG}
			assert.Equal(t, tt.want, p.BMICategory())
		})
	}
}

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, 170.0, p.HeightCM)
	assert.Equal(t, 70.0, p.WeightKG)
	assert.Equal(t, 25, p.Age)
	assert.Equal(t, "moderate", p.ActivityLevel)
	assert.Equal(t, "maintenance", p.FitnessGoal)
	assert.Equal(t, "Normal weight", p.BMICategory())
}
