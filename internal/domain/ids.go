package domain

import (
	"fmt"
	"strings"

	"github.com/moneyguard/momogen/internal/rng"
)

// Identifier namespaces. Attacker accounts live under their own prefix so
// they can never collide with a profile's MOMO-GH account space.
const (
	CustomerIDPrefix      = "CUST-GH-"
	MomoAccountPrefix     = "MOMO-GH-"
	BankAccountPrefix     = "BANK-GH-"
	AttackerAccountPrefix = "MOMO-ATK-"
)

// NewMomoTxnID mints a globally unique MoMo transaction ID.
func NewMomoTxnID(s *rng.Stream) string {
	return fmt.Sprintf("MOMO-TXN-%06d", s.UniqueInt(100000, 999999))
}

// NewBankTxnID mints a globally unique bank transaction ID.
func NewBankTxnID(s *rng.Stream) string {
	return fmt.Sprintf("BANK-TXN-%06d", s.UniqueInt(100000, 999999))
}

// NewDeviceID mints a short device fingerprint.
func NewDeviceID(s *rng.Stream) string {
	return "DEV-" + s.Hex(6)
}

// NewAttackerAccount mints a pseudo-attacker MoMo account in the disjoint
// attacker namespace. Drawn fresh per attack instance.
func NewAttackerAccount(s *rng.Stream) string {
	return fmt.Sprintf("%s%05d", AttackerAccountPrefix, s.IntBetween(10000, 99999))
}

// NewAgentID mints a cash-out agent ID scoped to a region.
func NewAgentID(s *rng.Stream, region string) string {
	return fmt.Sprintf("AGT-%s-%04d", strings.ReplaceAll(region, " ", ""), s.IntBetween(1, 99))
}
