// Package corpus runs the generation pipeline and assembles the two output
// tables.
package corpus

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/moneyguard/momogen/internal/attack"
	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/profile"
	"github.com/moneyguard/momogen/internal/rng"
	"github.com/moneyguard/momogen/internal/synth"
)

// ChannelSummary reports aggregate counts for one output table. Diagnostic
// output, not a correctness contract.
type ChannelSummary struct {
	Total int `json:"total"`
	Legit int `json:"legit"`
	Fraud int `json:"fraud"`
}

// Summary reports what a run produced.
type Summary struct {
	Customers  int                       `json:"customers"`
	TierCounts map[domain.IncomeTier]int `json:"tierCounts"`
	Momo       ChannelSummary            `json:"momo"`
	Bank       ChannelSummary            `json:"bank"`
}

// Corpus is the assembled output of one generation run: both tables in
// chronological order plus the profile pool they were derived from.
type Corpus struct {
	Profiles []*domain.CustomerProfile
	Momo     []*domain.MomoTransaction
	Bank     []*domain.BankTransaction
	Summary  Summary
}

// SplitAttacks divides the total attack budget across the four patterns in
// injection order, earlier patterns absorbing the remainder.
func SplitAttacks(total int) [4]int {
	var counts [4]int
	base, rem := total/4, total%4
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}

// Build runs the whole pipeline in its fixed draw order: profiles, legit
// MoMo, legit bank, then the four injectors. Each stage fully consumes its
// draws from the one shared stream before the next starts, so a fixed seed
// and config reproduce the corpus byte for byte.
//
// Build either returns a complete coherent pair of tables or an error with
// nothing emitted; there is no partial output.
func Build(cfg *domain.Config) (*Corpus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := rng.New(cfg.Seed)

	slog.Info("generating customer profiles", "count", cfg.Customers)
	profiles := profile.Generate(s, cfg)
	tiers := make(map[domain.IncomeTier]int)
	for _, p := range profiles {
		tiers[p.IncomeTier]++
	}
	slog.Info("income tier distribution",
		"low", tiers[domain.TierLow],
		"middle", tiers[domain.TierMiddle],
		"high", tiers[domain.TierHigh],
	)

	slog.Info("generating legitimate momo transactions", "count", cfg.LegitMomo)
	momo := synth.LegitMomo(s, profiles, cfg.LegitMomo, cfg)

	slog.Info("generating legitimate bank transactions", "count", cfg.LegitBank)
	bank, err := synth.LegitBank(s, profiles, cfg.LegitBank, cfg)
	if err != nil {
		return nil, fmt.Errorf("legit bank generation: %w", err)
	}

	counts := SplitAttacks(cfg.Attacks)
	slog.Info("injecting attack patterns",
		"total", cfg.Attacks,
		"otp_phishing", counts[0],
		"account_takeover", counts[1],
		"structured_drain", counts[2],
		"lateral_movement", counts[3],
	)

	otpMomo, err := attack.OTPPhishing(s, profiles, counts[0], cfg)
	if err != nil {
		return nil, fmt.Errorf("otp phishing injection: %w", err)
	}
	atoMomo, atoBank, err := attack.AccountTakeover(s, profiles, counts[1], cfg)
	if err != nil {
		return nil, fmt.Errorf("account takeover injection: %w", err)
	}
	drainMomo, drainBank, err := attack.StructuredDraining(s, profiles, counts[2], cfg)
	if err != nil {
		return nil, fmt.Errorf("structured draining injection: %w", err)
	}
	latMomo, latBank, err := attack.LateralMovement(s, profiles, counts[3], cfg)
	if err != nil {
		return nil, fmt.Errorf("lateral movement injection: %w", err)
	}

	momo = append(momo, otpMomo...)
	momo = append(momo, atoMomo...)
	momo = append(momo, drainMomo...)
	momo = append(momo, latMomo...)

	bank = append(bank, atoBank...)
	bank = append(bank, drainBank...)
	bank = append(bank, latBank...)

	// Chronological order per table. Stable: records sharing a timestamp
	// keep their injection order, and nothing is deduplicated.
	sort.SliceStable(momo, func(i, j int) bool {
		return momo[i].Timestamp.Before(momo[j].Timestamp)
	})
	sort.SliceStable(bank, func(i, j int) bool {
		return bank[i].Timestamp.Before(bank[j].Timestamp)
	})

	return &Corpus{
		Profiles: profiles,
		Momo:     momo,
		Bank:     bank,
		Summary:  summarize(profiles, momo, bank),
	}, nil
}

func summarize(profiles []*domain.CustomerProfile, momo []*domain.MomoTransaction, bank []*domain.BankTransaction) Summary {
	sum := Summary{
		Customers:  len(profiles),
		TierCounts: make(map[domain.IncomeTier]int),
	}
	for _, p := range profiles {
		sum.TierCounts[p.IncomeTier]++
	}
	for _, r := range momo {
		sum.Momo.Total++
		if r.Label == 1 {
			sum.Momo.Fraud++
		} else {
			sum.Momo.Legit++
		}
	}
	for _, r := range bank {
		sum.Bank.Total++
		if r.Label == 1 {
			sum.Bank.Fraud++
		} else {
			sum.Bank.Legit++
		}
	}
	return sum
}
