package pyver

import (
	"fmt"
	"strings"
)

// CmpOp is a comparison operator in a version specifier clause.
type CmpOp int

const (
	CmpOpLT CmpOp = iota
	CmpOpGT
	CmpOpLE
	CmpOpGE
	CmpOpEQ
	CmpOpNE
)

func (op CmpOp) String() string {
	switch op {
	case CmpOpLT:
		return "<"
	case CmpOpGT:
		return ">"
	case CmpOpLE:
		return "<="
	case CmpOpGE:
		return ">="
	case CmpOpEQ:
		return "=="
	case CmpOpNE:
		return "!="
	default:
		return fmt.Sprintf("CmpOp(%d)", int(op))
	}
}

// Clause is a single "op version" constraint.
type Clause struct {
	Op      CmpOp
	Version Version
}

// Specifier is a comma-separated list of clauses; all must match.
type Specifier []Clause

// ParseSpecifier parses strings like ">= 3.7" or ">=3.8,<4".
// A clause with no operator means "==".
func ParseSpecifier(s string) (Specifier, error) {
	clauseStrs := strings.FieldsFunc(s, func(r rune) bool { return r == ',' })
	if len(clauseStrs) == 0 {
		return nil, fmt.Errorf("empty version specifier")
	}

	spec := make(Specifier, 0, len(clauseStrs))
	for _, cs := range clauseStrs {
		clause, err := parseClause(cs)
		if err != nil {
			return nil, fmt.Errorf("invalid specifier %q: %w", s, err)
		}
		spec = append(spec, clause)
	}
	return spec, nil
}

func parseClause(s string) (Clause, error) {
	var c Clause
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "<="):
		c.Op, s = CmpOpLE, s[2:]
	case strings.HasPrefix(s, ">="):
		c.Op, s = CmpOpGE, s[2:]
	case strings.HasPrefix(s, "=="):
		c.Op, s = CmpOpEQ, s[2:]
	case strings.HasPrefix(s, "!="):
		c.Op, s = CmpOpNE, s[2:]
	case strings.HasPrefix(s, "<"):
		c.Op, s = CmpOpLT, s[1:]
	case strings.HasPrefix(s, ">"):
		c.Op, s = CmpOpGT, s[1:]
	default:
		c.Op = CmpOpEQ
	}

	v, err := Parse(s)
	if err != nil {
		return c, err
	}
	c.Version = v
	return c, nil
}

// Match reports whether v satisfies the clause.
func (c Clause) Match(v Version) bool {
	cmp := v.Compare(c.Version)
	switch c.Op {
	case CmpOpLT:
		return cmp < 0
	case CmpOpGT:
		return cmp > 0
	case CmpOpLE:
		return cmp <= 0
	case CmpOpGE:
		return cmp >= 0
	case CmpOpEQ:
		return cmp == 0
	case CmpOpNE:
		return cmp != 0
	default:
		return false
	}
}

func (c Clause) String() string {
	return c.Op.String() + c.Version.String()
}

// Match reports whether v satisfies every clause.
func (s Specifier) Match(v Version) bool {
	for _, c := range s {
		if !c.Match(v) {
			return false
		}
	}
	return true
}

func (s Specifier) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
