// Package profile builds the synthetic customer population.
package profile

import (
	"fmt"

	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/rng"
)

// Generate creates cfg.Customers profiles with behavioral baselines.
// Deterministic under a fixed stream: tier draw, typical amount, bank
// ownership, then the auxiliary attributes, in that order per customer.
func Generate(s *rng.Stream, cfg *domain.Config) []*domain.CustomerProfile {
	weights := make([]float64, len(domain.TierBands))
	for i, b := range domain.TierBands {
		weights[i] = b.Weight
	}

	profiles := make([]*domain.CustomerProfile, 0, cfg.Customers)
	for i := 0; i < cfg.Customers; i++ {
		band := domain.TierBands[rng.WeightedIndex(s, weights)]
		typical := domain.Round2(s.Uniform(band.MinGHS, band.MaxGHS))

		var bank *string
		if s.Chance(cfg.BankAccountRate) {
			acct := fmt.Sprintf("%s%05d", domain.BankAccountPrefix, i)
			bank = &acct
		}

		profiles = append(profiles, &domain.CustomerProfile{
			CustomerID:    fmt.Sprintf("%s%05d", domain.CustomerIDPrefix, i),
			MomoAccount:   fmt.Sprintf("%s%05d", domain.MomoAccountPrefix, i),
			BankAccount:   bank,
			Region:        rng.Pick(s, domain.Regions),
			IncomeTier:    band.Tier,
			TypicalAmount: typical,
			// Personal anomaly threshold: 3x the customer's own baseline,
			// never a universal currency floor.
			AlertThreshold: domain.Round2(typical * 3),
			TypicalChannel: rng.Pick(s, domain.MomoChannels),
			TypicalTxHour:  s.IntBetween(8, 20),
			MonthlyTxCount: s.IntBetween(5, 60),
			PIN:            fmt.Sprintf("%04d", s.IntBetween(1000, 9999)),
		})
	}
	return profiles
}

// BankHolders filters the population down to customers with a linked bank
// account, the victim pool for the cross-channel patterns.
func BankHolders(profiles []*domain.CustomerProfile) []*domain.CustomerProfile {
	holders := make([]*domain.CustomerProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.HasBank() {
			holders = append(holders, p)
		}
	}
	return holders
}
