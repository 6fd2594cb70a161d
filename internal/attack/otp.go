package attack

import (
	"fmt"

	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/rng"
)

// OTPPhishing injects n single-record phishing hits: the attacker poses as a
// merchant and talks the victim through approving a late-night USSD send to
// a fresh attacker account. Signals: new device, 22-23h, unknown merchant,
// OTP requested, amount 3.5x the victim's typical.
func OTPPhishing(s *rng.Stream, profiles []*domain.CustomerProfile, n int, cfg *domain.Config) ([]*domain.MomoTransaction, error) {
	if len(profiles) < n {
		return nil, fmt.Errorf("%s needs %d victims, have %d: %w",
			domain.AttackOTPPhishing, n, len(profiles), ErrInsufficientPopulation)
	}

	records := make([]*domain.MomoTransaction, 0, n)
	for i := 0; i < n; i++ {
		victim := rng.Pick(s, profiles)
		attacker := domain.NewAttackerAccount(s)
		ts := s.TimeBetween(cfg.AttackWindowStart(), cfg.WindowEnd)
		ts = atHour(ts, s.IntBetween(22, 23))
		amount := amountOverBaseline(victim, 3.5)

		records = append(records, &domain.MomoTransaction{
			ID:                domain.NewMomoTxnID(s),
			Timestamp:         ts,
			SenderAccount:     victim.MomoAccount,
			ReceiverAccount:   attacker,
			AmountGHS:         amount,
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
			AttackType:        domain.AttackOTPPhishing,
		})
	}
	return records, nil
}
