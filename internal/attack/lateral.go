package attack

import (
	"time"

	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/rng"
)

// LateralMovement injects n two-stage cross-channel instances. Stage 1 is an
// innocuous-looking evening MoMo send (0.8x typical, below suspicion on its
// own) that marks the compromise. Stage 2, 24-72 hours later, is 2-5 bank
// drains at 2.5x the personal threshold, each cashed out through a paired
// MoMo withdrawal minutes afterward, all over the same linked account pair.
func LateralMovement(s *rng.Stream, profiles []*domain.CustomerProfile, n int, cfg *domain.Config) ([]*domain.MomoTransaction, []*domain.BankTransaction, error) {
	victims, err := victimPool(profiles, n, domain.AttackLateralMovement)
	if err != nil {
		return nil, nil, err
	}

	var momo []*domain.MomoTransaction
	var bank []*domain.BankTransaction
	for i := 0; i < n; i++ {
		victim := rng.Pick(s, victims)
		attacker := domain.NewAttackerAccount(s)
		stage1TS := s.TimeBetween(cfg.AttackWindowStart(), cfg.WindowEnd)
		stage1TS = atHour(stage1TS, s.IntBetween(18, 22))
		stage1Amount := amountOverBaseline(victim, 0.8)
		balanceBefore := domain.Round2(victim.TypicalAmount * s.Uniform(4, 10))

		momo = append(momo, &domain.MomoTransaction{
			ID:                domain.NewMomoTxnID(s),
			Timestamp:         stage1TS,
			SenderAccount:     victim.MomoAccount,
			ReceiverAccount:   attacker,
			AmountGHS:         stage1Amount,
			Type:              "send",
			Channel:           "ussd",
			AgentID:           nil,
			MerchantCategory:  "unknown",
			Region:            victim.Region,
			DeviceID:          domain.NewDeviceID(s),
			IsNewDevice:       true,
			OTPRequested:      true,
			LinkedBankAccount: victim.BankAccount,
			IncomeTier:        victim.IncomeTier,
			AlertThreshold:    victim.AlertThreshold,
			Label:             1,
			AttackType:        domain.AttackLateralMovement,
		})

		stage2Amount := amountOverThreshold(victim, 2.5)
		hits := s.IntBetween(2, 5)
		for hit := 0; hit < hits; hit++ {
			// Two or three days out at 01-04h: a small-hours drain whose
			// delay from the evening compromise always lands in [24h, 72h).
			day := stage1TS.AddDate(0, 0, s.IntBetween(2, 3))
			stage2TS := time.Date(day.Year(), day.Month(), day.Day(),
				s.IntBetween(1, 4), s.Intn(60), s.Intn(60), 0, day.Location())

			bank = append(bank, &domain.BankTransaction{
				ID:                  domain.NewBankTxnID(s),
				Timestamp:           stage2TS,
				AccountID:           *victim.BankAccount,
				LinkedMomoAccount:   victim.MomoAccount,
				AmountGHS:           stage2Amount,
				Type:                "transfer",
				Channel:             "momo",
				CounterpartyAccount: victim.MomoAccount,
				BalanceBeforeGHS:    domain.Round2(balanceBefore - stage2Amount*float64(hit)),
				BalanceAfterGHS:     domain.Round2(balanceBefore - stage2Amount*float64(hit+1)),
				Region:              rng.Pick(s, domain.Regions),
				IsAfterHours:        true,
				IncomeTier:          victim.IncomeTier,
				AlertThreshold:      victim.AlertThreshold,
				Label:               1,
				AttackType:          domain.AttackLateralMovement,
			})

			agentID := domain.NewAgentID(s, rng.Pick(s, domain.Regions))
			momo = append(momo, &domain.MomoTransaction{
				ID:                domain.NewMomoTxnID(s),
				Timestamp:         stage2TS.Add(time.Duration(s.IntBetween(2, 15)) * time.Minute),
				SenderAccount:     victim.MomoAccount,
				ReceiverAccount:   attacker,
				AmountGHS:         stage2Amount,
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
				AttackType:        domain.AttackLateralMovement,
			})
		}
	}
	return momo, bank, nil
}
