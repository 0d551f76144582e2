// Package ledger tracks the global resource counters fed by completed
// activities. The ledger is shared by all characters and never clamps; a
// consumer that subtracts more than is available drives the counter negative.
package ledger

// Resource is one of the six resource types produced by activities.
type Resource string

// The fixed resource enum.
const (
	Creativity  Resource = "creativity"
	Food        Resource = "food"
	Cleanliness Resource = "cleanliness"
	Comfort     Resource = "comfort"
	Connection  Resource = "connection"
	Progress    Resource = "progress"
)

// All lists every valid resource type.
var All = []Resource{Creativity, Food, Cleanliness, Comfort, Connection, Progress}

// Valid reports whether r is a defined resource type.
func (r Resource) Valid() bool {
	for _, v := range All {
		if r == v {
			return true
		}
	}
	return false
}

// Ledger holds the global resource totals. Not safe for concurrent use; all
// mutation happens on the single simulation turn.
type Ledger struct {
	totals map[Resource]float64
}

// New creates a ledger with every resource at zero.
func New() *Ledger {
	l := &Ledger{}
	l.Reset()
	return l
}

// Get returns the current total for r.
func (l *Ledger) Get(r Resource) float64 {
	return l.totals[r]
}

// Add adjusts the total for r by amount. Negative amounts consume; no clamp
// is applied at the ledger level.
func (l *Ledger) Add(r Resource, amount float64) {
	l.totals[r] += amount
}

// Snapshot returns a copy of all totals for read-only consumers.
func (l *Ledger) Snapshot() map[Resource]float64 {
	out := make(map[Resource]float64, len(l.totals))
	for r, v := range l.totals {
		out[r] = v
	}
	return out
}

// Reset zeroes every resource for a new game.
func (l *Ledger) Reset() {
	l.totals = make(map[Resource]float64, len(All))
	for _, r := range All {
		l.totals[r] = 0
	}
}
