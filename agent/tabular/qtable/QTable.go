// Package qtable implements sparse tables of action values
package qtable

import (
	"github.com/samuelfneumann/slipworld/space"
)

// Row holds the action values of a single state, indexed by action
type Row [space.NumActions]float64

// Slice returns the action values as a slice
func (r *Row) Slice() []float64 {
	return r[:]
}

// QTable maps states to their action values. Rows are created lazily
// and only through GetOrInsert; every other accessor leaves the table
// unchanged. The zero value is not usable, use New instead.
type QTable struct {
	rows map[space.State]*Row
}

// New returns a new, empty QTable
func New() *QTable {
	return &QTable{rows: make(map[space.State]*Row)}
}

// GetOrInsert returns the row of state s, inserting a row of zeros if
// s has not been seen before. The returned row may be modified in
// place.
func (q *QTable) GetOrInsert(s space.State) *Row {
	row, ok := q.rows[s]
	if !ok {
		row = &Row{}
		q.rows[s] = row
	}
	return row
}

// Row returns a copy of the row of state s. Unseen states have all
// action values equal to zero.
func (q *QTable) Row(s space.State) Row {
	if row, ok := q.rows[s]; ok {
		return *row
	}
	return Row{}
}

// Has returns whether the table holds a row for s
func (q *QTable) Has(s space.State) bool {
	_, ok := q.rows[s]
	return ok
}

// Max returns the maximum action value of state s, which is 0 for
// unseen states
func (q *QTable) Max(s space.State) float64 {
	row, ok := q.rows[s]
	if !ok {
		return 0
	}

	max := row[0]
	for _, v := range row[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Len returns the number of states with a row in the table
func (q *QTable) Len() int {
	return len(q.rows)
}

// Values returns the maximum action value of each state in states
func (q *QTable) Values(states []space.State) map[space.State]float64 {
	values := make(map[space.State]float64, len(states))
	for _, s := range states {
		values[s] = q.Max(s)
	}
	return values
}
