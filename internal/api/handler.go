package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/moneyguard/momogen/internal/sink"
)

const (
	defaultSampleLimit = 50
	maxSampleLimit     = 500
)

// Handler serves read-only views over a loaded corpus database.
type Handler struct {
	db      *sql.DB
	version string
}

// NewHandler creates a new API handler over a corpus database.
func NewHandler(db *sql.DB, version string) *Handler {
	return &Handler{db: db, version: version}
}

// TableSummary is the per-table slice of the summary response.
type TableSummary struct {
	Total   int            `json:"total"`
	Legit   int            `json:"legit"`
	Fraud   int            `json:"fraud"`
	Attacks map[string]int `json:"attacks"`
}

// SummaryResponse is the response for GET /summary.
type SummaryResponse struct {
	Momo TableSummary `json:"momo"`
	Bank TableSummary `json:"bank"`
}

// MomoRow is one MoMo record as served by GET /momo.
type MomoRow struct {
	TransactionID   string  `json:"transactionId"`
	Timestamp       string  `json:"timestamp"`
	SenderAccount   string  `json:"senderAccount"`
	ReceiverAccount string  `json:"receiverAccount"`
	AmountGHS       float64 `json:"amountGhs"`
	Type            string  `json:"transactionType"`
	Channel         string  `json:"channel"`
	AgentID         *string `json:"agentId"`
	Region          string  `json:"locationRegion"`
	IsNewDevice     bool    `json:"isNewDevice"`
	OTPRequested    bool    `json:"otpRequested"`
	IncomeTier      string  `json:"incomeTier"`
	Threshold       float64 `json:"personalAlertThreshold"`
	Label           int     `json:"label"`
	AttackType      string  `json:"attackType"`
}

// BankRow is one bank record as served by GET /bank.
type BankRow struct {
	TransactionID     string  `json:"transactionId"`
	Timestamp         string  `json:"timestamp"`
	AccountID         string  `json:"accountId"`
	LinkedMomoAccount string  `json:"linkedMomoAccount"`
	AmountGHS         float64 `json:"amountGhs"`
	Type              string  `json:"transactionType"`
	Channel           string  `json:"channel"`
	BalanceBeforeGHS  float64 `json:"balanceBeforeGhs"`
	BalanceAfterGHS   float64 `json:"balanceAfterGhs"`
	Region            string  `json:"locationRegion"`
	IsAfterHours      bool    `json:"isAfterHours"`
	IncomeTier        string  `json:"incomeTier"`
	Threshold         float64 `json:"personalAlertThreshold"`
	Label             int     `json:"label"`
	AttackType        string  `json:"attackType"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// Summary handles GET /summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var resp SummaryResponse
	var err error

	if resp.Momo, err = h.tableSummary(ctx, "momo_transactions"); err != nil {
		h.serverError(w, "failed to summarize momo table", err)
		return
	}
	if resp.Bank, err = h.tableSummary(ctx, "bank_transactions"); err != nil {
		h.serverError(w, "failed to summarize bank table", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListMomo handles GET /momo. Supports ?limit= and ?attack_type=.
func (h *Handler) ListMomo(w http.ResponseWriter, r *http.Request) {
	limit := sampleLimit(r)
	query := `
		SELECT transaction_id, timestamp, sender_account, receiver_account,
		       amount_ghs, transaction_type, channel, agent_id,
		       location_region, is_new_device, otp_requested, income_tier,
		       personal_alert_threshold, label, attack_type
		FROM momo_transactions`
	args := []any{}
	if at := r.URL.Query().Get("attack_type"); at != "" {
		query += " WHERE attack_type = ?"
		args = append(args, at)
	}
	query += " ORDER BY timestamp LIMIT ?"
	args = append(args, limit)

	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		h.serverError(w, "failed to query momo table", err)
		return
	}
	defer rows.Close()

	out := []MomoRow{}
	for rows.Next() {
		var row MomoRow
		var ts time.Time
		var agentID sql.NullString
		var newDevice, otp int
		if err := rows.Scan(&row.TransactionID, &ts, &row.SenderAccount,
			&row.ReceiverAccount, &row.AmountGHS, &row.Type, &row.Channel,
			&agentID, &row.Region, &newDevice, &otp, &row.IncomeTier,
			&row.Threshold, &row.Label, &row.AttackType); err != nil {
			h.serverError(w, "failed to scan momo row", err)
			return
		}
		row.Timestamp = ts.UTC().Format(sink.TimeLayout)
		if agentID.Valid {
			row.AgentID = &agentID.String
		}
		row.IsNewDevice = newDevice != 0
		row.OTPRequested = otp != 0
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		h.serverError(w, "failed to iterate momo rows", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListBank handles GET /bank. Supports ?limit= and ?attack_type=.
func (h *Handler) ListBank(w http.ResponseWriter, r *http.Request) {
	limit := sampleLimit(r)
	query := `
		SELECT transaction_id, timestamp, account_id, linked_momo_account,
		       amount_ghs, transaction_type, channel, balance_before_ghs,
		       balance_after_ghs, location_region, is_after_hours,
		       income_tier, personal_alert_threshold, label, attack_type
		FROM bank_transactions`
	args := []any{}
	if at := r.URL.Query().Get("attack_type"); at != "" {
		query += " WHERE attack_type = ?"
		args = append(args, at)
	}
	query += " ORDER BY timestamp LIMIT ?"
	args = append(args, limit)

	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		h.serverError(w, "failed to query bank table", err)
		return
	}
	defer rows.Close()

	out := []BankRow{}
	for rows.Next() {
		var row BankRow
		var ts time.Time
		var afterHours int
		if err := rows.Scan(&row.TransactionID, &ts, &row.AccountID,
			&row.LinkedMomoAccount, &row.AmountGHS, &row.Type, &row.Channel,
			&row.BalanceBeforeGHS, &row.BalanceAfterGHS, &row.Region,
			&afterHours, &row.IncomeTier, &row.Threshold, &row.Label,
			&row.AttackType); err != nil {
			h.serverError(w, "failed to scan bank row", err)
			return
		}
		row.Timestamp = ts.UTC().Format(sink.TimeLayout)
		row.IsAfterHours = afterHours != 0
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		h.serverError(w, "failed to iterate bank rows", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) tableSummary(ctx context.Context, table string) (TableSummary, error) {
	sum := TableSummary{Attacks: map[string]int{}}

	err := h.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(label), 0) FROM `+table).Scan(&sum.Total, &sum.Fraud)
	if err != nil {
		return sum, err
	}
	sum.Legit = sum.Total - sum.Fraud

	rows, err := h.db.QueryContext(ctx,
		`SELECT attack_type, COUNT(*) FROM `+table+` WHERE label = 1 GROUP BY attack_type`)
	if err != nil {
		return sum, err
	}
	defer rows.Close()
	for rows.Next() {
		var attack string
		var count int
		if err := rows.Scan(&attack, &count); err != nil {
			return sum, err
		}
		sum.Attacks[attack] = count
	}
	return sum, rows.Err()
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
}

func sampleLimit(r *http.Request) int {
	limit := defaultSampleLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxSampleLimit {
		limit = maxSampleLimit
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
