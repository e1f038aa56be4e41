// Package profile contains the user health profile model and the
// BMI derivation used by recipe and workout personalization.
package profile

// UserHealthProfile holds the user's self-reported health data. It is
// persisted wholesale as a single JSON blob and replaced on every save.
type UserHealthProfile struct {
	HeightCM           float64  `json:"height" validate:"gt=0"`
	WeightKG           float64  `json:"weight" validate:"gt=0"`
	Gender             string   `json:"gender"`
	Age                int      `json:"age" validate:"gte=0,lte=150"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	Allergies          []string `json:"allergies"`
	FitnessGoal        string   `json:"fitnessGoal"`
	ActivityLevel      string   `json:"activityLevel"`
}

// Default returns the profile used before the user has saved one.
func Default() UserHealthProfile {
	return UserHealthProfile{
		HeightCM:      170,
		WeightKG:      70,
		Age:           25,
		ActivityLevel: "moderate",
		FitnessGoal:   "maintenance",
	}
}

// BMI derives Body Mass Index: weight(kg) / height(m)^2.
func (p UserHealthProfile) BMI() float64 {
	if p.HeightCM <= 0 {
		return 0
	}
	heightM := p.HeightCM / 100
	return p.WeightKG / (heightM * heightM)
}

// BMICategory classifies the derived BMI using WHO boundaries.
func (p UserHealthProfile) BMICategory() string {
	bmi := p.BMI()
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
