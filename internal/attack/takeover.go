package attack

import (
	"time"

	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/rng"
)

// AccountTakeover injects n two-leg takeover instances: a small-hours MoMo
// transfer from a new device, followed 24-72 hours later by a correlated
// bank transfer over the same linked account pair. The bank leg carries the
// after-hours flag; both legs share the victim's join keys.
func AccountTakeover(s *rng.Stream, profiles []*domain.CustomerProfile, n int, cfg *domain.Config) ([]*domain.MomoTransaction, []*domain.BankTransaction, error) {
	victims, err := victimPool(profiles, n, domain.AttackAccountTakeover)
	if err != nil {
		return nil, nil, err
	}

	momo := make([]*domain.MomoTransaction, 0, n)
	bank := make([]*domain.BankTransaction, 0, n)
	for i := 0; i < n; i++ {
		victim := rng.Pick(s, victims)
		ts := s.TimeBetween(cfg.AttackWindowStart(), cfg.WindowEnd)
		ts = atHour(ts, s.IntBetween(1, 5))
		amount := amountOverBaseline(victim, 3.5)
		balanceBefore := domain.Round2(victim.TypicalAmount * s.Uniform(4, 10))

		momo = append(momo, &domain.MomoTransaction{
			ID:                domain.NewMomoTxnID(s),
			Timestamp:         ts,
			SenderAccount:     victim.MomoAccount,
			ReceiverAccount:   domain.NewAttackerAccount(s),
			AmountGHS:         amount,
			Type:              "transfer",
			Channel:           "app",
			AgentID:           nil,
			MerchantCategory:  "transfer",
			Region:            rng.Pick(s, domain.Regions),
			DeviceID:          domain.NewDeviceID(s),
			IsNewDevice:       true,
			OTPRequested:      false,
			LinkedBankAccount: victim.BankAccount,
			IncomeTier:        victim.IncomeTier,
			AlertThreshold:    victim.AlertThreshold,
			Label:             1,
			AttackType:        domain.AttackAccountTakeover,
		})

		// Bank leg lands a whole number of hours in [24, 72) after the MoMo
		// compromise, keeping the cross-channel delay inside the window the
		// correlation signature is defined on.
		bankTS := ts.Add(time.Duration(s.IntBetween(24, 71)) * time.Hour)
		bank = append(bank, &domain.BankTransaction{
			ID:                  domain.NewBankTxnID(s),
			Timestamp:           bankTS,
			AccountID:           *victim.BankAccount,
			LinkedMomoAccount:   victim.MomoAccount,
			AmountGHS:           amount,
			Type:                "transfer",
			Channel:             "momo",
			CounterpartyAccount: victim.MomoAccount,
			BalanceBeforeGHS:    balanceBefore,
			BalanceAfterGHS:     domain.Round2(balanceBefore - amount),
			Region:              rng.Pick(s, domain.Regions),
			IsAfterHours:        true,
			IncomeTier:          victim.IncomeTier,
			AlertThreshold:      victim.AlertThreshold,
			Label:               1,
			AttackType:          domain.AttackAccountTakeover,
		})
	}
	return momo, bank, nil
}
