package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/moneyguard/momogen/internal/domain"
)

// Column orders match the record field orders exactly; absent optionals
// serialize as an empty cell, never a dropped column.
var (
	momoHeader = []string{
		"transaction_id", "timestamp", "sender_account", "receiver_account",
		"amount_ghs", "transaction_type", "channel", "agent_id",
		"merchant_category", "location_region", "device_id", "is_new_device",
		"otp_requested", "linked_bank_account", "income_tier",
		"personal_alert_threshold", "label", "attack_type",
	}
	bankHeader = []string{
		"transaction_id", "timestamp", "account_id", "linked_momo_account",
		"amount_ghs", "transaction_type", "channel", "counterparty_account",
		"balance_before_ghs", "balance_after_ghs", "location_region",
		"is_after_hours", "income_tier", "personal_alert_threshold",
		"label", "attack_type",
	}
)

// CSVSink writes momo_transactions.csv and bank_transactions.csv to a
// directory, mirroring the two flat tables the training pipeline consumes.
type CSVSink struct {
	dir string
}

// NewCSVSink creates a CSV sink writing into dir.
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

// Write serializes both tables.
func (c *CSVSink) Write(_ context.Context, momo []*domain.MomoTransaction, bank []*domain.BankTransaction) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeFile(filepath.Join(c.dir, "momo_transactions.csv"), func(w io.Writer) error {
		return EncodeMomoCSV(w, momo)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(c.dir, "bank_transactions.csv"), func(w io.Writer) error {
		return EncodeBankCSV(w, bank)
	})
}

// Close is a no-op for the CSV sink.
func (c *CSVSink) Close() error { return nil }

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// EncodeMomoCSV writes the MoMo table with its header row.
func EncodeMomoCSV(w io.Writer, records []*domain.MomoTransaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(momoHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Timestamp.Format(TimeLayout),
			r.SenderAccount,
			r.ReceiverAccount,
			formatAmount(r.AmountGHS),
			r.Type,
			r.Channel,
			optional(r.AgentID),
			r.MerchantCategory,
			r.Region,
			r.DeviceID,
			strconv.FormatBool(r.IsNewDevice),
			strconv.FormatBool(r.OTPRequested),
			optional(r.LinkedBankAccount),
			string(r.IncomeTier),
			formatAmount(r.AlertThreshold),
			strconv.Itoa(r.Label),
			string(r.AttackType),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeBankCSV writes the bank table with its header row.
func EncodeBankCSV(w io.Writer, records []*domain.BankTransaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bankHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Timestamp.Format(TimeLayout),
			r.AccountID,
			r.LinkedMomoAccount,
			formatAmount(r.AmountGHS),
			r.Type,
			r.Channel,
			r.CounterpartyAccount,
			formatAmount(r.BalanceBeforeGHS),
			formatAmount(r.BalanceAfterGHS),
			r.Region,
			strconv.FormatBool(r.IsAfterHours),
			string(r.IncomeTier),
			formatAmount(r.AlertThreshold),
			strconv.Itoa(r.Label),
			string(r.AttackType),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
