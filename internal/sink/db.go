package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/moneyguard/momogen/internal/domain"
)

// SQLSink loads the corpus into a relational database via database/sql.
// Works with both the sqlite and postgres drivers.
type SQLSink struct {
	db     *sql.DB
	driver string
}

// DB exposes the underlying handle, used by the preview API.
func (s *SQLSink) DB() *sql.DB { return s.db }

// Write creates the schema if needed and loads both tables in one
// transaction, so a failed load leaves no partial corpus behind.
func (s *SQLSink) Write(ctx context.Context, momo []*domain.MomoTransaction, bank []*domain.BankTransaction) error {
	for _, schema := range []string{schemaMomo, schemaBank} {
		if _, err := s.db.ExecContext(ctx, s.bind(schema)); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	momoStmt, err := tx.PrepareContext(ctx, s.bind(insertMomo))
	if err != nil {
		return fmt.Errorf("failed to prepare momo insert: %w", err)
	}
	defer momoStmt.Close()

	for _, r := range momo {
		_, err := momoStmt.ExecContext(ctx,
			r.ID, r.Timestamp.UTC(), r.SenderAccount, r.ReceiverAccount,
			r.AmountGHS, r.Type, r.Channel, r.AgentID, r.MerchantCategory,
			r.Region, r.DeviceID, boolInt(r.IsNewDevice), boolInt(r.OTPRequested),
			r.LinkedBankAccount, string(r.IncomeTier), r.AlertThreshold,
			r.Label, string(r.AttackType),
		)
		if err != nil {
			return fmt.Errorf("failed to insert momo record %s: %w", r.ID, err)
		}
	}

	bankStmt, err := tx.PrepareContext(ctx, s.bind(insertBank))
	if err != nil {
		return fmt.Errorf("failed to prepare bank insert: %w", err)
	}
	defer bankStmt.Close()

	for _, r := range bank {
		_, err := bankStmt.ExecContext(ctx,
			r.ID, r.Timestamp.UTC(), r.AccountID, r.LinkedMomoAccount,
			r.AmountGHS, r.Type, r.Channel, r.CounterpartyAccount,
			r.BalanceBeforeGHS, r.BalanceAfterGHS, r.Region,
			boolInt(r.IsAfterHours), string(r.IncomeTier), r.AlertThreshold,
			r.Label, string(r.AttackType),
		)
		if err != nil {
			return fmt.Errorf("failed to insert bank record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit corpus load: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLSink) Close() error {
	return s.db.Close()
}

// bind rewrites ? placeholders to $n for postgres.
func (s *SQLSink) bind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
