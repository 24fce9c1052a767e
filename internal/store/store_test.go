package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	all := []error{
		ErrUserNotFound, ErrAlreadyClaimed, ErrAlreadyClaimedToday, ErrNoReferrals,
		ErrPersistenceFailure, ErrConcurrentModification, ErrInvalidTrade,
		ErrInvalidBonusKind, ErrInvalidTransaction, ErrWalletNotFound, ErrInvalidInput,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}

func TestWrappedSentinelMatches(t *testing.T) {
	err := fmt.Errorf("claim for user 7: %w", ErrAlreadyClaimedToday)
	if !errors.Is(err, ErrAlreadyClaimedToday) {
		t.Fatalf("expected wrapped error to match, got %v", err)
	}
}
