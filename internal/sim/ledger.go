package sim

import "errors"

// ErrInsufficientBudget is returned by Charge when the deduction would drive
// the balance negative. The replay loop checks CanAfford before charging, so
// hitting this indicates a bug in the win-decision logic, not a normal
// runtime condition.
var ErrInsufficientBudget = errors.New("insufficient budget")

// Ledger owns the budget balance for a single simulation run. The remaining
// balance is always derived as initial - spent from one accumulated spend
// figure, so conservation holds exactly.
//
// A ledger is not safe for concurrent use; each run owns exactly one.
type Ledger struct {
	initial float64
	spent   float64
}

// NewLedger rejects non-positive budgets up front: PaceFactor is undefined at
// zero, and a zero budget should short-circuit to an empty result instead.
func NewLedger(initial float64) (*Ledger, error) {
	if initial <= 0 {
		return nil, errors.New("initial budget must be > 0")
	}
	return &Ledger{initial: initial}, nil
}

// CanAfford reports whether amount fits in the remaining balance.
func (l *Ledger) CanAfford(amount float64) bool {
	return l.Remaining() >= amount
}

// Charge deducts amount from the balance. Callers must check CanAfford first.
func (l *Ledger) Charge(amount float64) error {
	if !l.CanAfford(amount) {
		return ErrInsufficientBudget
	}
	l.spent += amount
	return nil
}

// PaceFactor is remaining/initial, in [0, 1]. It shades bids down as the
// budget depletes, which is what prevents early exhaustion.
func (l *Ledger) PaceFactor() float64 {
	return l.Remaining() / l.initial
}

func (l *Ledger) Initial() float64 { return l.initial }

func (l *Ledger) Spent() float64 { return l.spent }

func (l *Ledger) Remaining() float64 { return l.initial - l.spent }
