package common

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lumina-ledger/internal/api"
	"lumina-ledger/internal/store"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// UserSeed describes one user to create, with optional referral count and
// bonuses to claim right away.
type UserSeed struct {
	UserId         int64    `yaml:"user_id"`
	Username       string   `yaml:"username"`
	FirstName      string   `yaml:"first_name"`
	LastName       string   `yaml:"last_name"`
	ReferrerId     *int64   `yaml:"referrer_id"`
	ReferralsCount int      `yaml:"referrals_count"`
	Claims         []string `yaml:"claims"`
}

type SeedsConfig struct {
	Users []UserSeed `yaml:"users"`
}

func LoadUserSeeds(seedsFile string) ([]UserSeed, error) {
	seedsPath := seedsFile
	if !filepath.IsAbs(seedsFile) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		seedsPath = filepath.Join(wd, seedsFile)
	}

	data, err := os.ReadFile(seedsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", seedsFile, err)
	}

	var config SeedsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", seedsFile, err)
	}

	for i, seed := range config.Users {
		if seed.UserId <= 0 {
			return nil, fmt.Errorf("user at index %d missing user_id", i)
		}
		if seed.ReferralsCount < 0 {
			return nil, fmt.Errorf("user at index %d has negative referrals_count", i)
		}
	}

	return config.Users, nil
}

// ApplyUserSeeds creates the seeded users and claims their bonuses.
// Claims that were already granted are skipped, so seeding is repeatable.
func ApplyUserSeeds(ctx context.Context, svc *api.LedgerService, seeds []UserSeed) error {
	for _, seed := range seeds {
		if _, err := svc.UpsertUser(ctx, store.UpsertUserParams{
			UserId:     seed.UserId,
			Username:   seed.Username,
			FirstName:  seed.FirstName,
			LastName:   seed.LastName,
			ReferrerId: seed.ReferrerId,
		}); err != nil {
			return fmt.Errorf("seed user %d: %w", seed.UserId, err)
		}

		if seed.ReferralsCount > 0 {
			if err := svc.SetReferralsCount(ctx, seed.UserId, seed.ReferralsCount); err != nil {
				return fmt.Errorf("seed referrals for %d: %w", seed.UserId, err)
			}
		}

		for _, kind := range seed.Claims {
			if _, err := svc.ClaimBonus(ctx, seed.UserId, kind); err != nil {
				if isAlreadyGranted(err) {
					zap.L().Info("Seed claim skipped", zap.Int64("user_id", seed.UserId), zap.String("kind", kind))
					continue
				}
				return fmt.Errorf("seed %s bonus for %d: %w", kind, seed.UserId, err)
			}
		}
	}
	return nil
}

func isAlreadyGranted(err error) bool {
	return errors.Is(err, store.ErrAlreadyClaimed) || errors.Is(err, store.ErrAlreadyClaimedToday)
}
