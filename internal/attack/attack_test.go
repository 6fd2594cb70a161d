package attack

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/profile"
	"github.com/moneyguard/momogen/internal/rng"
)

func testConfig() *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Customers = 100
	cfg.WindowEnd = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return cfg
}

func testProfiles(t *testing.T, cfg *domain.Config, s *rng.Stream) []*domain.CustomerProfile {
	t.Helper()
	profiles := profile.Generate(s, cfg)
	if len(profile.BankHolders(profiles)) < 30 {
		t.Fatal("fixture population has too few bank holders")
	}
	return profiles
}

func profileIndex(profiles []*domain.CustomerProfile) map[string]*domain.CustomerProfile {
	byMomo := make(map[string]*domain.CustomerProfile)
	for _, p := range profiles {
		byMomo[p.MomoAccount] = p
	}
	return byMomo
}

func TestOTPPhishing(t *testing.T) {
	cfg := testConfig()
	s := rng.New(cfg.Seed)
	profiles := testProfiles(t, cfg, s)
	records, err := OTPPhishing(s, profiles, 30, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 30 {
		t.Fatalf("expected 30 records, got %d", len(records))
	}

	byMomo := profileIndex(profiles)
	for _, r := range records {
		victim, ok := byMomo[r.SenderAccount]
		if !ok {
			t.Fatalf("%s: sender %s not a real profile", r.ID, r.SenderAccount)
		}

		want := domain.Round2(victim.TypicalAmount * 3.5)
		if math.Abs(r.AmountGHS-want) > 0.005 {
			t.Errorf("%s: amount %v, want 3.5x typical = %v", r.ID, r.AmountGHS, want)
		}
		if !strings.HasPrefix(r.ReceiverAccount, domain.AttackerAccountPrefix) {
			t.Errorf("%s: receiver %s not in attacker namespace", r.ID, r.ReceiverAccount)
		}
		if h := r.Timestamp.Hour(); h < 22 {
			t.Errorf("%s: hour %d, want late-night 22-23", r.ID, h)
		}
		if !r.IsNewDevice || !r.OTPRequested {
			t.Errorf("%s: missing new-device/otp signature", r.ID)
		}
		if r.Channel != "ussd" || r.Type != "send" || r.MerchantCategory != "unknown" {
			t.Errorf("%s: unexpected channel/type/merchant %q/%q/%q",
				r.ID, r.Channel, r.Type, r.MerchantCategory)
		}
		if r.Label != 1 || r.AttackType != domain.AttackOTPPhishing {
			t.Errorf("%s: mislabeled", r.ID)
		}
	}
}

func TestOTPPhishingScalesToVictim(t *testing.T) {
	// A farmer with typical GHS 400 is hit for ~1400, never judged against
	// a fixed 10,000 floor.
	cfg := testConfig()
	farmer := &domain.CustomerProfile{
		CustomerID:     "CUST-GH-00000",
		MomoAccount:    "MOMO-GH-00000",
		Region:         "Northern",
		IncomeTier:     domain.TierLow,
		TypicalAmount:  400,
		AlertThreshold: 1200,
		TypicalChannel: "ussd",
	}

	records, err := OTPPhishing(rng.New(1), []*domain.CustomerProfile{farmer}, 1, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := records[0].AmountGHS; got != 1400 {
		t.Fatalf("farmer attack amount = %v, want 1400", got)
	}
}

func TestAccountTakeover(t *testing.T) {
	cfg := testConfig()
	s := rng.New(cfg.Seed)
	profiles := testProfiles(t, cfg, s)
	momo, bank, err := AccountTakeover(s, profiles, 30, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(momo) != 30 || len(bank) != 30 {
		t.Fatalf("expected 30 paired legs, got %d momo / %d bank", len(momo), len(bank))
	}

	for i := range momo {
		m, b := momo[i], bank[i]

		delay := b.Timestamp.Sub(m.Timestamp)
		if delay < 24*time.Hour || delay >= 72*time.Hour {
			t.Errorf("instance %d: cross-channel delay %v outside [24h, 72h)", i, delay)
		}
		if m.LinkedBankAccount == nil || *m.LinkedBankAccount != b.AccountID {
			t.Errorf("instance %d: legs reference different bank accounts", i)
		}
		if b.LinkedMomoAccount != m.SenderAccount {
			t.Errorf("instance %d: legs reference different momo accounts", i)
		}
		if m.AmountGHS != b.AmountGHS {
			t.Errorf("instance %d: leg amounts differ: %v vs %v", i, m.AmountGHS, b.AmountGHS)
		}
		if h := m.Timestamp.Hour(); h < 1 || h > 5 {
			t.Errorf("instance %d: momo leg hour %d outside 1-5 window", i, h)
		}
		if !m.IsNewDevice {
			t.Errorf("instance %d: momo leg missing new-device signature", i)
		}
		if !b.IsAfterHours {
			t.Errorf("instance %d: bank leg missing after-hours flag", i)
		}
		if math.Abs(domain.Round2(b.BalanceBeforeGHS-b.AmountGHS)-b.BalanceAfterGHS) > 0.005 {
			t.Errorf("instance %d: bank balance arithmetic broken", i)
		}
		if m.Label != 1 || b.Label != 1 ||
			m.AttackType != domain.AttackAccountTakeover || b.AttackType != domain.AttackAccountTakeover {
			t.Errorf("instance %d: mislabeled", i)
		}
	}
}

func TestStructuredDraining(t *testing.T) {
	cfg := testConfig()
	s := rng.New(cfg.Seed)
	profiles := testProfiles(t, cfg, s)
	momo, bank, err := StructuredDraining(s, profiles, 10, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(momo) != len(bank) {
		t.Fatalf("unpaired legs: %d momo / %d bank", len(momo), len(bank))
	}
	if len(bank) < 30 || len(bank) > 80 {
		t.Fatalf("10 instances produced %d hits, want 3-8 each", len(bank))
	}

	for i := range bank {
		m, b := momo[i], bank[i]

		lo, hi := b.AlertThreshold*0.7, b.AlertThreshold*0.9
		if b.AmountGHS < lo-0.005 || b.AmountGHS > hi+0.005 {
			t.Errorf("hit %d: amount %v outside [%v, %v]", i, b.AmountGHS, lo, hi)
		}
		if m.AmountGHS != b.AmountGHS {
			t.Errorf("hit %d: cash-out amount differs from bank leg", i)
		}
		if !m.Timestamp.After(b.Timestamp) {
			t.Errorf("hit %d: cash-out not after the bank transfer", i)
		}
		if gap := m.Timestamp.Sub(b.Timestamp); gap > 10*time.Minute {
			t.Errorf("hit %d: cash-out gap %v too wide", i, gap)
		}
		if m.Channel != "agent" || m.AgentID == nil {
			t.Errorf("hit %d: cash-out missing agent channel signature", i)
		}
		if math.Abs(domain.Round2(b.BalanceBeforeGHS-b.AmountGHS)-b.BalanceAfterGHS) > 0.005 {
			t.Errorf("hit %d: balance arithmetic broken", i)
		}
	}
}

func TestStructuredDrainingInstanceShape(t *testing.T) {
	cfg := testConfig()
	for _, seed := range []int64{1, 2, 3} {
		s := rng.New(seed)
		profiles := testProfiles(t, cfg, s)
		_, bank, err := StructuredDraining(s, profiles, 1, cfg)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if len(bank) < 3 || len(bank) > 8 {
			t.Fatalf("seed %d: instance produced %d hits, want 3-8", seed, len(bank))
		}

		// Balances walk down from the opening balance: each hit k satisfies
		// balance_before_k = balance_before_0 - amount_k * k.
		base := bank[0].BalanceBeforeGHS
		for k, b := range bank {
			want := domain.Round2(base - b.AmountGHS*float64(k))
			if math.Abs(b.BalanceBeforeGHS-want) > 0.005 {
				t.Errorf("seed %d hit %d: balance_before %v, want %v", seed, k, b.BalanceBeforeGHS, want)
			}
		}

		// Hits stay under the victim's personal radar individually.
		for k, b := range bank {
			if b.AmountGHS >= b.AlertThreshold {
				t.Errorf("seed %d hit %d: amount %v tripped the personal threshold %v",
					seed, k, b.AmountGHS, b.AlertThreshold)
			}
		}
	}
}

func TestLateralMovement(t *testing.T) {
	cfg := testConfig()
	s := rng.New(cfg.Seed)
	profiles := testProfiles(t, cfg, s)
	momo, bank, err := LateralMovement(s, profiles, 10, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byMomo := profileIndex(profiles)

	// Walk instances: one "send" compromise, then paired "withdraw" legs.
	mi, bi, instances := 0, 0, 0
	for mi < len(momo) {
		stage1 := momo[mi]
		if stage1.Type != "send" {
			t.Fatalf("record %d: expected stage-1 send, got %q", mi, stage1.Type)
		}
		instances++
		mi++

		victim := byMomo[stage1.SenderAccount]
		if victim == nil {
			t.Fatalf("stage 1 sender %s not a real profile", stage1.SenderAccount)
		}

		wantStage1 := domain.Round2(victim.TypicalAmount * 0.8)
		if math.Abs(stage1.AmountGHS-wantStage1) > 0.005 {
			t.Errorf("stage 1 amount %v, want 0.8x typical = %v", stage1.AmountGHS, wantStage1)
		}
		if h := stage1.Timestamp.Hour(); h < 18 || h > 22 {
			t.Errorf("stage 1 hour %d outside evening window", h)
		}
		if !stage1.OTPRequested || !stage1.IsNewDevice {
			t.Errorf("stage 1 missing compromise signature")
		}

		hits := 0
		for mi < len(momo) && momo[mi].Type == "withdraw" {
			m, b := momo[mi], bank[bi]
			hits++

			wantStage2 := domain.Round2(victim.AlertThreshold * 2.5)
			if math.Abs(b.AmountGHS-wantStage2) > 0.005 {
				t.Errorf("stage 2 amount %v, want 2.5x threshold = %v", b.AmountGHS, wantStage2)
			}
			delay := b.Timestamp.Sub(stage1.Timestamp)
			if delay < 24*time.Hour || delay >= 72*time.Hour {
				t.Errorf("stage 2 delay %v outside [24h, 72h)", delay)
			}
			if b.AccountID != *victim.BankAccount || b.LinkedMomoAccount != victim.MomoAccount {
				t.Errorf("stage 2 bank leg references wrong linked accounts")
			}
			if m.ReceiverAccount != stage1.ReceiverAccount {
				t.Errorf("stage 2 cash-out receiver differs from stage 1 attacker")
			}
			gap := m.Timestamp.Sub(b.Timestamp)
			if gap < 2*time.Minute || gap > 15*time.Minute {
				t.Errorf("cash-out gap %v outside [2m, 15m]", gap)
			}
			if !b.IsAfterHours {
				t.Errorf("stage 2 bank leg missing after-hours flag")
			}
			mi++
			bi++
		}
		if hits < 2 || hits > 5 {
			t.Errorf("instance had %d stage-2 hits, want 2-5", hits)
		}
	}
	if instances != 10 {
		t.Errorf("walked %d instances, want 10", instances)
	}
	if bi != len(bank) {
		t.Errorf("unmatched bank legs: consumed %d of %d", bi, len(bank))
	}
}

func TestInsufficientPopulation(t *testing.T) {
	cfg := testConfig()
	s := rng.New(cfg.Seed)
	profiles := profile.Generate(s, cfg)
	for _, p := range profiles {
		p.BankAccount = nil
	}

	t.Run("AccountTakeover", func(t *testing.T) {
		_, _, err := AccountTakeover(s, profiles, 5, cfg)
		if !errors.Is(err, ErrInsufficientPopulation) {
			t.Fatalf("expected ErrInsufficientPopulation, got %v", err)
		}
	})
	t.Run("StructuredDraining", func(t *testing.T) {
		_, _, err := StructuredDraining(s, profiles, 5, cfg)
		if !errors.Is(err, ErrInsufficientPopulation) {
			t.Fatalf("expected ErrInsufficientPopulation, got %v", err)
		}
	})
	t.Run("LateralMovement", func(t *testing.T) {
		_, _, err := LateralMovement(s, profiles, 5, cfg)
		if !errors.Is(err, ErrInsufficientPopulation) {
			t.Fatalf("expected ErrInsufficientPopulation, got %v", err)
		}
	})
	t.Run("SubsetSmallerThanRequested", func(t *testing.T) {
		acct := "BANK-GH-00001"
		profiles[1].BankAccount = &acct
		_, _, err := AccountTakeover(s, profiles, 5, cfg)
		if !errors.Is(err, ErrInsufficientPopulation) {
			t.Fatalf("expected ErrInsufficientPopulation for undersized subset, got %v", err)
		}
	})
	t.Run("OTPPhishingEmptyPool", func(t *testing.T) {
		_, err := OTPPhishing(s, nil, 5, cfg)
		if !errors.Is(err, ErrInsufficientPopulation) {
			t.Fatalf("expected ErrInsufficientPopulation, got %v", err)
		}
	})
}
