package bonus

import (
	"testing"
	"time"

	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyAmount(t *testing.T) {
	want := map[int]int64{1: 10, 2: 20, 3: 30, 4: 40, 5: 50, 6: 30, 7: 35, 10: 50}
	for day, amount := range want {
		assert.True(t, DailyAmount(day).Equal(decimal.NewFromInt(amount)), "day %d: got %s", day, DailyAmount(day))
	}
}

func TestNextStreakDay(t *testing.T) {
	last := time.Date(2026, 5, 10, 20, 0, 0, 0, time.UTC)
	prior := &models.Bonus{Day: 4, GettingDate: last}

	day, err := NextStreakDay(nil, last)
	require.NoError(t, err)
	assert.Equal(t, 1, day)

	for _, gap := range []time.Duration{0, time.Minute, 23*time.Hour + 59*time.Minute, -2 * time.Hour} {
		_, err := NextStreakDay(prior, last.Add(gap))
		assert.ErrorIs(t, err, store.ErrAlreadyClaimedToday, "gap %v", gap)
	}

	for _, gap := range []time.Duration{24 * time.Hour, 47 * time.Hour} {
		day, err := NextStreakDay(prior, last.Add(gap))
		require.NoError(t, err)
		assert.Equal(t, 5, day, "gap %v", gap)
	}

	for _, gap := range []time.Duration{48 * time.Hour, 30 * 24 * time.Hour} {
		day, err := NextStreakDay(prior, last.Add(gap))
		require.NoError(t, err)
		assert.Equal(t, 1, day, "gap %v", gap)
	}
}

func TestReferralAmount(t *testing.T) {
	_, err := ReferralAmount(0)
	assert.ErrorIs(t, err, store.ErrNoReferrals)

	amount, err := ReferralAmount(3)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(30)))
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"registration", "referral", "daily"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, Kind(s), k)
	}

	_, err := ParseKind("weekly")
	assert.ErrorIs(t, err, store.ErrInvalidBonusKind)

	assert.Equal(t, models.BonusDaily, KindDaily.Description())
	assert.Equal(t, models.BonusReferral, KindReferral.Description())
	assert.Equal(t, models.BonusRegistration, KindRegistration.Description())
}
