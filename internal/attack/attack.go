// Package attack injects the four labeled fraud patterns into the corpus.
//
// Every anomalous amount is a function of the victim's own baseline
// (typical amount or the derived personal alert threshold), never of a fixed
// currency floor. A GHS 1,400 hit on a farmer carries the same signature as
// a GHS 28,000 hit on a business owner.
package attack

import (
	"errors"
	"fmt"
	"time"

	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/profile"
	"github.com/moneyguard/momogen/internal/rng"
)

// ErrInsufficientPopulation means a pattern's required victim subset cannot
// cover the requested instance count. The pipeline must abort on it: quietly
// producing fewer instances would corrupt the corpus class balance.
var ErrInsufficientPopulation = errors.New("insufficient victim population")

// victimPool returns the bank-holding victim subset, or a configuration
// failure when it is empty or smaller than the requested instance count.
func victimPool(profiles []*domain.CustomerProfile, n int, pattern domain.AttackType) ([]*domain.CustomerProfile, error) {
	holders := profile.BankHolders(profiles)
	if len(holders) < n {
		return nil, fmt.Errorf("%s needs %d bank-holding victims, have %d: %w",
			pattern, n, len(holders), ErrInsufficientPopulation)
	}
	return holders, nil
}

// amountOverBaseline scales the victim's typical amount. Used when the hit
// is framed relative to normal spending (e.g. 3.5x typical for phishing).
func amountOverBaseline(victim *domain.CustomerProfile, multiplier float64) float64 {
	return domain.Round2(victim.TypicalAmount * multiplier)
}

// amountOverThreshold scales the victim's personal alert threshold itself.
func amountOverThreshold(victim *domain.CustomerProfile, multiplier float64) float64 {
	return domain.Round2(victim.AlertThreshold * multiplier)
}

// amountBelowThreshold draws a structured hit in [0.7, 0.9] of the victim's
// personal threshold: under the radar individually, loud in aggregate.
func amountBelowThreshold(s *rng.Stream, victim *domain.CustomerProfile) float64 {
	return domain.Round2(s.Uniform(victim.AlertThreshold*0.7, victim.AlertThreshold*0.9))
}

// atHour moves a timestamp to the given hour of its day, keeping the minute
// and second draws intact.
func atHour(ts time.Time, hour int) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), hour, ts.Minute(), ts.Second(), 0, ts.Location())
}
