package repokit

import (
	"fmt"
	"strings"
)

// Predicates accumulates WHERE clauses and their arguments in order
// clauses use ? markers which render to $n placeholders at build time
type Predicates struct {
	clauses []string
	args    []any
}

// Where appends a clause with its arguments
func (p *Predicates) Where(clause string, args ...any) *Predicates {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
	return p
}

// WhereIf appends the clause only when cond is true
func (p *Predicates) WhereIf(cond bool, clause string, args ...any) *Predicates {
	if cond {
		p.Where(clause, args...)
	}
	return p
}

// Empty reports whether any clause was added
func (p *Predicates) Empty() bool { return len(p.clauses) == 0 }

// Args returns the accumulated arguments in placeholder order
func (p *Predicates) Args() []any { return p.args }

// SQL renders the WHERE clause with $n placeholders starting at startIdx
// returns the empty string when no predicates were added
func (p *Predicates) SQL(startIdx int) string {
	if p.Empty() {
		return ""
	}
	n := startIdx
	var b strings.Builder
	b.WriteString(" WHERE ")
	for i, c := range p.clauses {
		if i > 0 {
			b.WriteString(" AND ")
		}
		for {
			idx := strings.IndexByte(c, '?')
			if idx < 0 {
				b.WriteString(c)
				break
			}
			b.WriteString(c[:idx])
			fmt.Fprintf(&b, "$%d", n)
			n++
			c = c[idx+1:]
		}
	}
	return b.String()
}

// Build renders a full statement from base select, predicates, and a tail
// (ORDER BY / LIMIT / OFFSET). Tail ? markers continue the placeholder
// numbering after the predicate arguments
func (p *Predicates) Build(baseSQL, tail string, tailArgs ...any) (string, []any) {
	sql := baseSQL + p.SQL(1)
	n := len(p.args) + 1
	for strings.Contains(tail, "?") {
		tail = strings.Replace(tail, "?", fmt.Sprintf("$%d", n), 1)
		n++
	}
	if tail != "" {
		sql += " " + tail
	}
	args := append(append([]any(nil), p.args...), tailArgs...)
	return sql, args
}

// BuildCount renders the twin count statement sharing the same predicates
func (p *Predicates) BuildCount(countSQL string) (string, []any) {
	return countSQL + p.SQL(1), append([]any(nil), p.args...)
}
