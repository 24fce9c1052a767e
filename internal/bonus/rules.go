package bonus

import (
	"fmt"
	"math"
	"time"

	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"

	"github.com/shopspring/decimal"
)

// Kind is a claimable bonus type.
type Kind string

const (
	KindRegistration Kind = "registration"
	KindReferral     Kind = "referral"
	KindDaily        Kind = "daily"
)

const (
	referralRate = 10
	streakTaper  = 5
)

var DefaultRegistrationAmount = decimal.NewFromInt(100)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindRegistration, KindReferral, KindDaily:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", store.ErrInvalidBonusKind, s)
	}
}

// Description is the tag stored on the bonus record.
func (k Kind) Description() string {
	switch k {
	case KindRegistration:
		return models.BonusRegistration
	case KindReferral:
		return models.BonusReferral
	default:
		return models.BonusDaily
	}
}

// ReferralAmount pays 10 per referral currently on the user's record.
func ReferralAmount(referralsCount int) (decimal.Decimal, error) {
	if referralsCount <= 0 {
		return decimal.Zero, store.ErrNoReferrals
	}
	return decimal.NewFromInt(int64(referralsCount) * referralRate), nil
}

// ElapsedDays counts whole days between then and now, flooring like a
// calendar-agnostic day difference.
func ElapsedDays(then, now time.Time) int {
	return int(math.Floor(now.Sub(then).Hours() / 24))
}

// NextStreakDay returns the streak day a daily claim at now would carry,
// given the most recent daily bonus (nil if none).
func NextStreakDay(prior *models.Bonus, now time.Time) (int, error) {
	if prior == nil {
		return 1, nil
	}

	switch days := ElapsedDays(prior.GettingDate, now); {
	case days < 1:
		return 0, store.ErrAlreadyClaimedToday
	case days == 1:
		return prior.Day + 1, nil
	default:
		return 1, nil
	}
}

// DailyAmount is day*10 through day 5, then tapers to day*5.
func DailyAmount(day int) decimal.Decimal {
	if day > streakTaper {
		return decimal.NewFromInt(int64(day) * 5)
	}
	return decimal.NewFromInt(int64(day) * 10)
}
