package catalog

import (
	"testing"
	"time"

	xerrors "notifyme-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationDays(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		want int
	}{
		{"BASIC", 30},
		{"REGULAR", 90},
		{"STANDARD", 180},
		{"PREMIUM", 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.DurationDays(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRanksStrictlyIncreasing(t *testing.T) {
	c := New()

	tiers := c.Tiers()
	require.Len(t, tiers, 4)
	for i := 1; i < len(tiers); i++ {
		assert.Greater(t, tiers[i].Rank, tiers[i-1].Rank)
	}
}

func TestUnknownPlan(t *testing.T) {
	c := New()

	_, err := c.DurationDays("GOLD")
	assert.ErrorIs(t, err, xerrors.ErrUnknownPlan)

	_, err = c.Rank("")
	assert.ErrorIs(t, err, xerrors.ErrUnknownPlan)

	_, err = c.Recommendations("basic")
	assert.ErrorIs(t, err, xerrors.ErrUnknownPlan)
}

func TestRecommendations(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		want []string
	}{
		{"BASIC", []string{"BASIC", "REGULAR", "STANDARD", "PREMIUM"}},
		{"REGULAR", []string{"REGULAR", "STANDARD", "PREMIUM"}},
		{"STANDARD", []string{"STANDARD", "PREMIUM"}},
		{"PREMIUM", []string{"PREMIUM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Recommendations(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestEndDate(t *testing.T) {
	c := New()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	end, err := c.EndDate("BASIC", start)
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, 30), end)

	end, err = c.EndDate("PREMIUM", start)
	require.NoError(t, err)
	assert.Equal(t, start.AddDate(0, 0, 365), end)

	_, err = c.EndDate("TRIAL", start)
	assert.ErrorIs(t, err, xerrors.ErrUnknownPlan)
}
