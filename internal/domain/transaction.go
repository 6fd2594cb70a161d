package domain

import (
	"time"
)

// AttackType tags a record with the fraud pattern that produced it.
type AttackType string

const (
	AttackNone            AttackType = "none"
	AttackOTPPhishing     AttackType = "otp_phishing"
	AttackAccountTakeover AttackType = "account_takeover"
	AttackStructuredDrain AttackType = "structured_drain"
	AttackLateralMovement AttackType = "lateral_movement"
)

// AttackTypes lists the four injected patterns in injection order.
var AttackTypes = []AttackType{
	AttackOTPPhishing,
	AttackAccountTakeover,
	AttackStructuredDrain,
	AttackLateralMovement,
}

// IncomeTier buckets a customer by socioeconomic band.
type IncomeTier string

const (
	TierLow    IncomeTier = "low"
	TierMiddle IncomeTier = "middle"
	TierHigh   IncomeTier = "high"
)

// Regions are Ghana's administrative regions used for record locations.
var Regions = []string{
	"Greater Accra", "Ashanti", "Western", "Eastern",
	"Central", "Northern", "Volta", "Upper East", "Upper West", "Brong-Ahafo",
}

var (
	MerchantCategories = []string{"food", "utility", "retail", "airtime", "transfer", "unknown"}
	MomoTxTypes        = []string{"send", "receive", "withdraw", "airtime", "bill_payment", "transfer"}
	BankTxTypes        = []string{"transfer", "withdrawal", "deposit", "momo_link"}
	MomoChannels       = []string{"ussd", "app", "agent"}
	BankChannels       = []string{"mobile", "internet", "atm", "branch", "momo"}
)

// CustomerProfile is one synthetic customer with a personal behavioral
// baseline. Profiles are created once at startup and immutable thereafter;
// every downstream generator reads them but never writes.
type CustomerProfile struct {
	CustomerID  string `json:"customerId"`
	MomoAccount string `json:"momoAccount"`

	// BankAccount is nil for un-banked MoMo-only customers.
	BankAccount *string `json:"bankAccount,omitempty"`

	Region     string     `json:"region"`
	IncomeTier IncomeTier `json:"incomeTier"`

	// TypicalAmount is the customer's characteristic transaction size in GHS.
	TypicalAmount float64 `json:"typicalAmountGhs"`

	// AlertThreshold is always 3x TypicalAmount. Derived, never drawn.
	// This is the sole anomaly reference every attack injector scales from.
	AlertThreshold float64 `json:"personalAlertThreshold"`

	// Auxiliary baseline attributes carried for profile realism.
	TypicalChannel string `json:"typicalChannel"`
	TypicalTxHour  int    `json:"typicalTxHour"`
	MonthlyTxCount int    `json:"monthlyTxCount"`
	PIN            string `json:"-"`
}

// HasBank reports whether the customer owns a linked bank account.
func (p *CustomerProfile) HasBank() bool {
	return p.BankAccount != nil
}

// MomoTransaction is one row of the MoMo output table.
type MomoTransaction struct {
	ID              string    `json:"transactionId"`
	Timestamp       time.Time `json:"timestamp"`
	SenderAccount   string    `json:"senderAccount"`
	ReceiverAccount string    `json:"receiverAccount"`
	AmountGHS       float64   `json:"amountGhs"`
	Type            string    `json:"transactionType"`
	Channel         string    `json:"channel"`

	// AgentID is set only when the channel is "agent".
	AgentID *string `json:"agentId,omitempty"`

	MerchantCategory string `json:"merchantCategory"`
	Region           string `json:"locationRegion"`
	DeviceID         string `json:"deviceId"`
	IsNewDevice      bool   `json:"isNewDevice"`
	OTPRequested     bool   `json:"otpRequested"`

	// LinkedBankAccount echoes the sender profile's bank account (nil when
	// the sender is un-banked). Join key for cross-channel correlation.
	LinkedBankAccount *string `json:"linkedBankAccount,omitempty"`

	IncomeTier     IncomeTier `json:"incomeTier"`
	AlertThreshold float64    `json:"personalAlertThreshold"`

	Label      int        `json:"label"`
	AttackType AttackType `json:"attackType"`
}

// BankTransaction is one row of the bank output table.
type BankTransaction struct {
	ID        string    `json:"transactionId"`
	Timestamp time.Time `json:"timestamp"`
	AccountID string    `json:"accountId"`

	// LinkedMomoAccount is the owning profile's MoMo account. Join key for
	// cross-channel correlation.
	LinkedMomoAccount string `json:"linkedMomoAccount"`

	AmountGHS           float64 `json:"amountGhs"`
	Type                string  `json:"transactionType"`
	Channel             string  `json:"channel"`
	CounterpartyAccount string  `json:"counterpartyAccount"`

	// BalanceAfterGHS is always round2(BalanceBeforeGHS - AmountGHS).
	BalanceBeforeGHS float64 `json:"balanceBeforeGhs"`
	BalanceAfterGHS  float64 `json:"balanceAfterGhs"`

	Region       string `json:"locationRegion"`
	IsAfterHours bool   `json:"isAfterHours"`

	IncomeTier     IncomeTier `json:"incomeTier"`
	AlertThreshold float64    `json:"personalAlertThreshold"`

	Label      int        `json:"label"`
	AttackType AttackType `json:"attackType"`
}
