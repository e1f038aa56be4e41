package workout

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr error
	}{
		{"walking", TypeWalking, nil},
		{"running", TypeRunning, nil},
		{"cycling", TypeCycling, nil},
		{"swimming", "", ErrUnknownType},
		{"Walking", "", ErrUnknownType},
		{"", "", ErrUnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpeedMPH(t *testing.T) {
	assert.Equal(t, 4.0, TypeWalking.SpeedMPH())
	assert.Equal(t, 6.0, TypeRunning.SpeedMPH())
	assert.Equal(t, 14.0, TypeCycling.SpeedMPH())
}

func TestOptionValidate(t *testing.T) {
	valid := NewOption(TypeRunning, 30, 300, "A steady run.")
	require.NoError(t, valid.Validate())

	zeroDuration := valid
	zeroDuration.Duration = 0
	assert.ErrorIs(t, zeroDuration.Validate(), ErrInvalidDuration)

	negativeCalories := valid
	negativeCalories.CaloriesBurned = -10
	assert.ErrorIs(t, negativeCalories.Validate(), ErrNegativeCalories)

	badType := valid
	badType.Type = "rowing"
	assert.ErrorIs(t, badType.Validate(), ErrUnknownType)
}

func TestOptionComplete(t *testing.T) {
	opt := NewOption(TypeWalking, 45, 180, "Easy walk.")
	at := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

	done := opt.Complete(at)

	assert.True(t, done.IsCompleted)
	require.NotNil(t, done.CompletedDate)
	assert.Equal(t, at, *done.CompletedDate)

	// The original stays a live, uncompleted option.
	assert.False(t, opt.IsCompleted)
	assert.Nil(t, opt.CompletedDate)
}

func validRecommendation() Recommendation {
	return Recommendation{
		RecipeName:     "Spinach Omelette",
		CaloriesToBurn: 350,
		Options: []Option{
			NewOption(TypeWalking, 60, 350, "Walk."),
			NewOption(TypeRunning, 30, 350, "Run."),
			NewOption(TypeCycling, 40, 350, "Ride."),
		},
	}
}

func TestRecommendationValidate(t *testing.T) {
	require.NoError(t, validRecommendation().Validate())

	twoOptions := validRecommendation()
	twoOptions.Options = twoOptions.Options[:2]
	assert.ErrorIs(t, twoOptions.Validate(), ErrOptionCount)

	duplicated := validRecommendation()
	duplicated.Options[2].Type = TypeWalking
	assert.ErrorIs(t, duplicated.Validate(), ErrDuplicateType)

	invalidOption := validRecommendation()
	invalidOption.Options[1].Duration = -5
	assert.ErrorIs(t, invalidOption.Validate(), ErrInvalidDuration)
}

func TestOptionByID(t *testing.T) {
	rec := validRecommendation()

	found, ok := rec.OptionByID(rec.Options[1].ID)
	require.True(t, ok)
	assert.Equal(t, TypeRunning, found.Type)

	_, ok = rec.OptionByID(uuid.New())
	assert.False(t, ok)
}
