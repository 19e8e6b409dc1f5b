package srs

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeNextReview_CorrectClimbsOneStep(t *testing.T) {
	today := date("2024-01-01")
	for level := 0; level <= MaxLevel; level++ {
		t.Run(fmt.Sprintf("level_%d", level), func(t *testing.T) {
			newLevel, next := ComputeNextReview(level, true, today)

			expected := level + 1
			if expected > MaxLevel {
				expected = MaxLevel
			}
			assert.Equal(t, expected, newLevel)
			assert.Equal(t, today.AddDate(0, 0, ReviewIntervals[expected]).Format(DateLayout), next)
		})
	}
}

func TestComputeNextReview_IncorrectDropsTwoSteps(t *testing.T) {
	today := date("2024-01-01")
	for level := 0; level <= MaxLevel; level++ {
		t.Run(fmt.Sprintf("level_%d", level), func(t *testing.T) {
			newLevel, next := ComputeNextReview(level, false, today)

			expected := level - 2
			if expected < 0 {
				expected = 0
			}
			assert.Equal(t, expected, newLevel)
			assert.Equal(t, today.AddDate(0, 0, ReviewIntervals[expected]).Format(DateLayout), next)
		})
	}
}

func TestComputeNextReview_LowLevelDemotions(t *testing.T) {
	today := date("2024-01-01")

	cases := []struct {
		level    int
		expected int
	}{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 1},
	}
	for _, tc := range cases {
		newLevel, _ := ComputeNextReview(tc.level, false, today)
		assert.Equal(t, tc.expected, newLevel, "level %d", tc.level)
	}
}

func TestComputeNextReview_Scenarios(t *testing.T) {
	today := date("2024-01-01")

	// Fresh word answered correctly: level 0 -> 1, due 3 days out.
	newLevel, next := ComputeNextReview(0, true, today)
	require.Equal(t, 1, newLevel)
	require.Equal(t, "2024-01-04", next)

	// Fresh word missed: stays at 0, due tomorrow.
	newLevel, next = ComputeNextReview(0, false, today)
	require.Equal(t, 0, newLevel)
	require.Equal(t, "2024-01-02", next)
}

func TestComputeNextReview_ClampsOutOfRangeInput(t *testing.T) {
	today := date("2024-01-01")

	newLevel, _ := ComputeNextReview(-5, true, today)
	assert.Equal(t, 1, newLevel)

	newLevel, _ = ComputeNextReview(99, true, today)
	assert.Equal(t, MaxLevel, newLevel)
}

func TestReviewIntervals_StrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(ReviewIntervals); i++ {
		assert.Greater(t, ReviewIntervals[i], ReviewIntervals[i-1])
	}
}
