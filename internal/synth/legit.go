// Package synth produces legitimate transactions sampled around each
// customer's personal baseline.
package synth

import (
	"errors"

	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/profile"
	"github.com/moneyguard/momogen/internal/rng"
)

// ErrNoBankHolders means the population has no bank-linked customers, so no
// bank traffic can exist. A configuration failure, never silently skipped.
var ErrNoBankHolders = errors.New("no customers with a bank account")

// LegitMomo generates n legitimate MoMo transactions. Sender and
// counterparty are drawn with replacement from the whole population; the
// amount is a normal draw centered on the sender's typical amount with 30%
// relative spread, clamped non-negative by absolute value.
func LegitMomo(s *rng.Stream, profiles []*domain.CustomerProfile, n int, cfg *domain.Config) []*domain.MomoTransaction {
	records := make([]*domain.MomoTransaction, 0, n)
	for i := 0; i < n; i++ {
		customer := rng.Pick(s, profiles)
		counterparty := rng.Pick(s, profiles)
		ts := s.TimeBetween(cfg.WindowStart(), cfg.WindowEnd)
		amount := domain.Round2(abs(s.Normal(customer.TypicalAmount, customer.TypicalAmount*0.3)))

		var agentID *string
		if customer.TypicalChannel == "agent" {
			id := domain.NewAgentID(s, customer.Region)
			agentID = &id
		}

		records = append(records, &domain.MomoTransaction{
			ID:                domain.NewMomoTxnID(s),
			Timestamp:         ts,
			SenderAccount:     customer.MomoAccount,
			ReceiverAccount:   counterparty.MomoAccount,
			AmountGHS:         amount,
			Type:              rng.Pick(s, domain.MomoTxTypes),
			Channel:           customer.TypicalChannel,
			AgentID:           agentID,
			MerchantCategory:  rng.Pick(s, domain.MerchantCategories),
			Region:            customer.Region,
			DeviceID:          domain.NewDeviceID(s),
			IsNewDevice:       false,
			OTPRequested:      s.Chance(0.2),
			LinkedBankAccount: customer.BankAccount,
			IncomeTier:        customer.IncomeTier,
			AlertThreshold:    customer.AlertThreshold,
			Label:             0,
			AttackType:        domain.AttackNone,
		})
	}
	return records
}

// LegitBank generates n legitimate bank transactions over the bank-holding
// subset of the population. Amounts center on 2x the typical amount with 50%
// relative spread; balance_after is derived from balance_before, never drawn.
func LegitBank(s *rng.Stream, profiles []*domain.CustomerProfile, n int, cfg *domain.Config) ([]*domain.BankTransaction, error) {
	holders := profile.BankHolders(profiles)
	if len(holders) == 0 {
		return nil, ErrNoBankHolders
	}

	records := make([]*domain.BankTransaction, 0, n)
	for i := 0; i < n; i++ {
		customer := rng.Pick(s, holders)
		counterparty := rng.Pick(s, holders)
		ts := s.TimeBetween(cfg.WindowStart(), cfg.WindowEnd)
		amount := domain.Round2(abs(s.Normal(customer.TypicalAmount*2, customer.TypicalAmount*0.5)))
		balanceBefore := domain.Round2(s.Uniform(customer.TypicalAmount, customer.TypicalAmount*10))

		records = append(records, &domain.BankTransaction{
			ID:                  domain.NewBankTxnID(s),
			Timestamp:           ts,
			AccountID:           *customer.BankAccount,
			LinkedMomoAccount:   customer.MomoAccount,
			AmountGHS:           amount,
			Type:                rng.Pick(s, domain.BankTxTypes),
			Channel:             rng.Pick(s, domain.BankChannels),
			CounterpartyAccount: *counterparty.BankAccount,
			BalanceBeforeGHS:    balanceBefore,
			BalanceAfterGHS:     domain.Round2(balanceBefore - amount),
			Region:              customer.Region,
			IsAfterHours:        false,
			IncomeTier:          customer.IncomeTier,
			AlertThreshold:      customer.AlertThreshold,
			Label:               0,
			AttackType:          domain.AttackNone,
		})
	}
	return records, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
