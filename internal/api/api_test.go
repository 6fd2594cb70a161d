package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/moneyguard/momogen/internal/corpus"
	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/sink"
)

func testServer(t *testing.T) (*Server, *corpus.Corpus) {
	t.Helper()

	cfg := domain.DefaultConfig()
	cfg.Customers = 80
	cfg.LegitMomo = 200
	cfg.LegitBank = 100
	cfg.Attacks = 12
	cfg.WindowEnd = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	c, err := corpus.Build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	s, err := sink.New(sink.Config{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "corpus.db"),
	})
	if err != nil {
		t.Fatalf("open sink: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Write(context.Background(), c.Momo, c.Bank); err != nil {
		t.Fatalf("load: %v", err)
	}

	return NewServer(":0", s.(*sink.SQLSink).DB(), "test"), c
}

func get(t *testing.T, srv *Server, path string, into any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if into != nil && rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(into); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)

	var body map[string]string
	rec := get(t, srv, "/health", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("unexpected body: %v", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}
}

func TestSummaryMatchesCorpus(t *testing.T) {
	srv, c := testServer(t)

	var resp SummaryResponse
	rec := get(t, srv, "/summary", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	if resp.Momo.Total != c.Summary.Momo.Total || resp.Momo.Fraud != c.Summary.Momo.Fraud {
		t.Errorf("momo summary %+v disagrees with corpus %+v", resp.Momo, c.Summary.Momo)
	}
	if resp.Bank.Total != c.Summary.Bank.Total || resp.Bank.Legit != c.Summary.Bank.Legit {
		t.Errorf("bank summary %+v disagrees with corpus %+v", resp.Bank, c.Summary.Bank)
	}

	var attackTotal int
	for _, n := range resp.Momo.Attacks {
		attackTotal += n
	}
	if attackTotal != resp.Momo.Fraud {
		t.Errorf("attack breakdown sums to %d, fraud total is %d", attackTotal, resp.Momo.Fraud)
	}
	if _, ok := resp.Momo.Attacks[string(domain.AttackNone)]; ok {
		t.Error("attack breakdown includes the none type")
	}
}

func TestListMomoFilter(t *testing.T) {
	srv, _ := testServer(t)

	var rows []MomoRow
	rec := get(t, srv, "/momo?attack_type=otp_phishing&limit=100", &rows)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if len(rows) == 0 {
		t.Fatal("no otp phishing rows returned")
	}
	for _, row := range rows {
		if row.AttackType != string(domain.AttackOTPPhishing) || row.Label != 1 {
			t.Errorf("%s: filter leaked attack_type %q label %d",
				row.TransactionID, row.AttackType, row.Label)
		}
	}
}

func TestListMomoOrderAndLimit(t *testing.T) {
	srv, _ := testServer(t)

	var rows []MomoRow
	if rec := get(t, srv, "/momo?limit=10", &rows); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if len(rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Timestamp < rows[i-1].Timestamp {
			t.Fatalf("rows out of order at %d", i)
		}
	}
}

func TestListBankLimitClamped(t *testing.T) {
	srv, _ := testServer(t)

	var rows []BankRow
	if rec := get(t, srv, "/bank?limit=99999", &rows); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if len(rows) > maxSampleLimit {
		t.Fatalf("limit not clamped: %d rows", len(rows))
	}
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := testServer(t)
	if rec := get(t, srv, "/nope", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}
