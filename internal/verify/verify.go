// Package verify runs the corpus invariants as compiled CEL programs over
// every assembled record. A violation is a programming defect in a
// generator, so the pipeline aborts before any output is written.
package verify

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/moneyguard/momogen/internal/domain"
)

// invariant is one named CEL rule that must hold for every record.
type invariant struct {
	Name string
	Expr string
}

// Shared record-level invariants. Written with an explicit half-cent
// tolerance so cent-rounded arithmetic never false-positives.
var momoInvariants = []invariant{
	{"fraud_label_consistency", `(label == 1) == (attack_type != "none")`},
	{"non_negative_amount", `amount >= 0.0`},
	{"threshold_positive", `threshold > 0.0`},
	{"structured_drain_band", `attack_type != "structured_drain" ||
		(amount >= threshold * 0.7 - 0.005 && amount <= threshold * 0.9 + 0.005)`},
}

var bankInvariants = []invariant{
	{"fraud_label_consistency", `(label == 1) == (attack_type != "none")`},
	{"non_negative_amount", `amount >= 0.0`},
	{"threshold_positive", `threshold > 0.0`},
	{"structured_drain_band", `attack_type != "structured_drain" ||
		(amount >= threshold * 0.7 - 0.005 && amount <= threshold * 0.9 + 0.005)`},
	{"balance_arithmetic", `balance_before - amount - balance_after < 0.005 &&
		balance_before - amount - balance_after > -0.005`},
}

type compiled struct {
	name    string
	program cel.Program
}

// Verifier holds the compiled invariant programs for both tables.
type Verifier struct {
	momo []compiled
	bank []compiled
}

// Violation identifies one failed invariant on one record.
type Violation struct {
	Table string
	Rule  string
	TxnID string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s/%s on %s", v.Table, v.Rule, v.TxnID)
}

// New compiles the invariant set.
func New() (*Verifier, error) {
	env, err := cel.NewEnv(
		cel.Variable("amount", cel.DoubleType),
		cel.Variable("threshold", cel.DoubleType),
		cel.Variable("balance_before", cel.DoubleType),
		cel.Variable("balance_after", cel.DoubleType),
		cel.Variable("label", cel.IntType),
		cel.Variable("attack_type", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	v := &Verifier{}
	if v.momo, err = compileAll(env, momoInvariants); err != nil {
		return nil, err
	}
	if v.bank, err = compileAll(env, bankInvariants); err != nil {
		return nil, err
	}
	return v, nil
}

func compileAll(env *cel.Env, invariants []invariant) ([]compiled, error) {
	out := make([]compiled, 0, len(invariants))
	for _, inv := range invariants {
		ast, iss := env.Compile(inv.Expr)
		if iss != nil && iss.Err() != nil {
			return nil, fmt.Errorf("failed to compile invariant %q: %w", inv.Name, iss.Err())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("failed to build program for %q: %w", inv.Name, err)
		}
		out = append(out, compiled{name: inv.Name, program: prg})
	}
	return out, nil
}

// Check evaluates every invariant against every record and returns the
// violations found. An empty slice means the corpus is coherent.
func (v *Verifier) Check(momo []*domain.MomoTransaction, bank []*domain.BankTransaction) ([]Violation, error) {
	var violations []Violation

	for _, r := range momo {
		activation := map[string]any{
			"amount":         r.AmountGHS,
			"threshold":      r.AlertThreshold,
			"balance_before": 0.0,
			"balance_after":  0.0,
			"label":          int64(r.Label),
			"attack_type":    string(r.AttackType),
		}
		found, err := evalAll(v.momo, activation, "momo", r.ID)
		if err != nil {
			return nil, err
		}
		violations = append(violations, found...)
	}

	for _, r := range bank {
		activation := map[string]any{
			"amount":         r.AmountGHS,
			"threshold":      r.AlertThreshold,
			"balance_before": r.BalanceBeforeGHS,
			"balance_after":  r.BalanceAfterGHS,
			"label":          int64(r.Label),
			"attack_type":    string(r.AttackType),
		}
		found, err := evalAll(v.bank, activation, "bank", r.ID)
		if err != nil {
			return nil, err
		}
		violations = append(violations, found...)
	}

	return violations, nil
}

// CheckAll is Check folded into a single error for pipeline callers.
func (v *Verifier) CheckAll(momo []*domain.MomoTransaction, bank []*domain.BankTransaction) error {
	violations, err := v.Check(momo, bank)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return fmt.Errorf("corpus verification failed: %d violation(s), first: %s",
			len(violations), violations[0])
	}
	return nil
}

func evalAll(programs []compiled, activation map[string]any, table, txnID string) ([]Violation, error) {
	var violations []Violation
	for _, c := range programs {
		out, _, err := c.program.Eval(activation)
		if err != nil {
			return nil, fmt.Errorf("invariant %q evaluation: %w", c.name, err)
		}
		if out != types.True {
			violations = append(violations, Violation{Table: table, Rule: c.name, TxnID: txnID})
		}
	}
	return violations, nil
}
