package attack

import (
	"time"

	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/rng"
)

// StructuredDraining injects n draining instances of 3-8 paired hits each.
// Every hit is a bank transfer into the victim's own MoMo wallet followed
// minutes later by an agent cash-out to the attacker, sized in [0.7, 0.9] of
// the victim's personal threshold. No single hit trips a per-transaction
// check; only windowed velocity over the pair stream exposes the drain.
func StructuredDraining(s *rng.Stream, profiles []*domain.CustomerProfile, n int, cfg *domain.Config) ([]*domain.MomoTransaction, []*domain.BankTransaction, error) {
	victims, err := victimPool(profiles, n, domain.AttackStructuredDrain)
	if err != nil {
		return nil, nil, err
	}

	var momo []*domain.MomoTransaction
	var bank []*domain.BankTransaction
	for i := 0; i < n; i++ {
		victim := rng.Pick(s, victims)
		attacker := domain.NewAttackerAccount(s)
		baseTS := s.TimeBetween(cfg.AttackWindowStart(), cfg.WindowEnd)
		balanceBefore := domain.Round2(victim.TypicalAmount * s.Uniform(5, 12))
		hits := s.IntBetween(3, 8)

		for hit := 0; hit < hits; hit++ {
			hitTS := baseTS.Add(time.Duration(s.IntBetween(5, 30)*hit) * time.Minute)
			amount := amountBelowThreshold(s, victim)

			bank = append(bank, &domain.BankTransaction{
				ID:                  domain.NewBankTxnID(s),
				Timestamp:           hitTS,
				AccountID:           *victim.BankAccount,
				LinkedMomoAccount:   victim.MomoAccount,
				AmountGHS:           amount,
				Type:                "transfer",
				Channel:             "momo",
				CounterpartyAccount: victim.MomoAccount,
				// Balance walks down cumulatively across the instance.
				BalanceBeforeGHS: domain.Round2(balanceBefore - amount*float64(hit)),
				BalanceAfterGHS:  domain.Round2(balanceBefore - amount*float64(hit+1)),
				Region:           victim.Region,
				IsAfterHours:     hitTS.Hour() > 22 || hitTS.Hour() < 6,
				IncomeTier:       victim.IncomeTier,
				AlertThreshold:   victim.AlertThreshold,
				Label:            1,
				AttackType:       domain.AttackStructuredDrain,
			})

			agentID := domain.NewAgentID(s, rng.Pick(s, domain.Regions))
			momo = append(momo, &domain.MomoTransaction{
				ID:                domain.NewMomoTxnID(s),
				Timestamp:         hitTS.Add(time.Duration(s.IntBetween(1, 10)) * time.Minute),
				SenderAccount:     victim.MomoAccount,
				ReceiverAccount:   attacker,
				AmountGHS:         amount,
				Type:              "withdraw",
				Channel:           "agent",
				AgentID:           &agentID,
				MerchantCategory:  "unknown",
				Region:            rng.Pick(s, domain.Regions),
				DeviceID:          domain.NewDeviceID(s),
				IsNewDevice:       true,
				OTPRequested:      false,
				LinkedBankAccount: victim.BankAccount,
				IncomeTier:        victim.IncomeTier,
				AlertThreshold:    victim.AlertThreshold,
				Label:             1,
				AttackType:        domain.AttackStructuredDrain,
			})
		}
	}
	return momo, bank, nil
}
