package sat

import "fmt"

// Literal is a signed reference to a variable, encoded as a single unsigned
// word (var<<1)|negated. Negation flips the low bit.
type Literal uint32

// InvalidLiteral is the reserved sentinel used to mark empty or poisoned
// slots (tombstoned arena clauses, "no second watch" on a unit clause, ...).
// It is only reachable with 1<<31 or more variables, which this solver
// does not support.
const InvalidLiteral Literal = ^Literal(0)

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v int) Literal {
	return Literal(v) << 1
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v int) Literal {
	return Literal(v)<<1 | 1
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l >> 1)
}

// IsPositive returns true if and only if the literal represents the value of
// its boolean variable (i.e. not its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// IsNegative returns true if and only if the literal is the negation of its
// boolean variable.
func (l Literal) IsNegative() bool {
	return l&1 == 1
}

// Opposite returns the opposite literal.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// IsValid returns false for the reserved InvalidLiteral sentinel.
func (l Literal) IsValid() bool {
	return l != InvalidLiteral
}

// Raw returns the literal's raw encoded value, e.g. for use as a watch-index
// slot or in a total order over literals.
func (l Literal) Raw() uint32 {
	return uint32(l)
}

func (l Literal) String() string {
	if !l.IsValid() {
		return "invalid"
	}
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
