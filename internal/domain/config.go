package domain

import (
	"fmt"
	"time"
)

// TierBand is one income tier's amount range and draw weight.
type TierBand struct {
	Tier   IncomeTier
	MinGHS float64
	MaxGHS float64
	Weight float64
}

// TierBands reflects Ghana's socioeconomic distribution: 55% low-income
// (farmers, traders, casual workers), 35% middle (salaried, small business),
// 10% high (professionals, large business).
var TierBands = []TierBand{
	{Tier: TierLow, MinGHS: 300, MaxGHS: 800, Weight: 0.55},
	{Tier: TierMiddle, MinGHS: 800, MaxGHS: 3000, Weight: 0.35},
	{Tier: TierHigh, MinGHS: 3000, MaxGHS: 15000, Weight: 0.10},
}

// BoGReportingThresholdGHS is the Bank of Ghana regulatory AML filing floor.
// Narrative annotation only: generation never compares an amount against it.
const BoGReportingThresholdGHS = 10000

// Config holds the complete generator configuration. All randomness flows
// from Seed through one shared stream, so the same Config reproduces
// byte-identical output tables.
type Config struct {
	// Seed for the shared pseudorandom stream.
	Seed int64 `json:"seed"`

	// Customers is the synthetic population size.
	Customers int `json:"customers"`

	// Legitimate record counts per channel.
	LegitMomo int `json:"legitMomo"`
	LegitBank int `json:"legitBank"`

	// Attacks is the total attack-instance count, split evenly across the
	// four patterns with the remainder going to the earlier patterns.
	Attacks int `json:"attacks"`

	// WindowDays is the trailing window legitimate timestamps fall in.
	// AttackWindowDays is the (shorter) window attack timestamps fall in.
	WindowDays       int `json:"windowDays"`
	AttackWindowDays int `json:"attackWindowDays"`

	// WindowEnd anchors both trailing windows. Part of the configuration:
	// determinism holds for a fixed anchor, not across wall clocks.
	WindowEnd time.Time `json:"windowEnd"`

	// BankAccountRate is the probability a customer owns a bank account.
	BankAccountRate float64 `json:"bankAccountRate"`
}

// DefaultConfig returns the stock corpus configuration.
func DefaultConfig() *Config {
	return &Config{
		Seed:             42,
		Customers:        500,
		LegitMomo:        8000,
		LegitBank:        4000,
		Attacks:          120,
		WindowDays:       90,
		AttackWindowDays: 30,
		WindowEnd:        time.Now().UTC().Truncate(time.Second),
		BankAccountRate:  0.8,
	}
}

// Validate rejects configurations the pipeline cannot honor.
func (c *Config) Validate() error {
	if c.Customers <= 0 {
		return fmt.Errorf("customers must be positive, got %d", c.Customers)
	}
	if c.LegitMomo < 0 || c.LegitBank < 0 || c.Attacks < 0 {
		return fmt.Errorf("record counts must be non-negative")
	}
	if c.WindowDays <= 0 || c.AttackWindowDays <= 0 {
		return fmt.Errorf("window days must be positive")
	}
	if c.AttackWindowDays > c.WindowDays {
		return fmt.Errorf("attack window (%dd) cannot exceed legit window (%dd)",
			c.AttackWindowDays, c.WindowDays)
	}
	if c.WindowEnd.IsZero() {
		return fmt.Errorf("window end anchor is required")
	}
	if c.BankAccountRate < 0 || c.BankAccountRate > 1 {
		return fmt.Errorf("bank account rate must be in [0,1], got %v", c.BankAccountRate)
	}
	return nil
}

// WindowStart returns the start of the legitimate-traffic window.
func (c *Config) WindowStart() time.Time {
	return c.WindowEnd.AddDate(0, 0, -c.WindowDays)
}

// AttackWindowStart returns the start of the attack-traffic window.
func (c *Config) AttackWindowStart() time.Time {
	return c.WindowEnd.AddDate(0, 0, -c.AttackWindowDays)
}
