package common

import (
	"testing"

	"lumina-ledger/internal/models"

	"github.com/shopspring/decimal"
)

func TestSignedAmount(t *testing.T) {
	cases := map[string]string{
		"15":    "+15.00",
		"-9":    "-9.00",
		"0":     "+0.00",
		"1.005": "+1.01",
	}
	for in, want := range cases {
		if got := SignedAmount(decimal.RequireFromString(in)); got != want {
			t.Errorf("SignedAmount(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(models.User{UserId: 3, Username: "carol"}); got != "@carol" {
		t.Errorf("got %q", got)
	}
	if got := DisplayName(models.User{UserId: 3, FirstName: "Carol", LastName: "King"}); got != "Carol King" {
		t.Errorf("got %q", got)
	}
	if got := DisplayName(models.User{UserId: 3}); got != "user 3" {
		t.Errorf("got %q", got)
	}
}
