package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hmelgaard/beforefall/internal/game/ledger"
)

func TestLedger_AddAndGet(t *testing.T) {
	l := ledger.New()
	assert.Zero(t, l.Get(ledger.Food))

	l.Add(ledger.Food, 12.5)
	l.Add(ledger.Food, 7.5)
	assert.Equal(t, 20.0, l.Get(ledger.Food))
}

func TestLedger_NegativeAllowed(t *testing.T) {
	l := ledger.New()
	l.Add(ledger.Comfort, 5)
	l.Add(ledger.Comfort, -8)
	assert.Equal(t, -3.0, l.Get(ledger.Comfort),
		"the ledger does not clamp; consumers own overdraw policy")
}

func TestLedger_SnapshotIsCopy(t *testing.T) {
	l := ledger.New()
	l.Add(ledger.Creativity, 10)
	snap := l.Snapshot()
	snap[ledger.Creativity] = 999
	assert.Equal(t, 10.0, l.Get(ledger.Creativity), "mutating a snapshot must not touch the ledger")
	assert.Len(t, snap, len(ledger.All))
}

func TestLedger_Reset(t *testing.T) {
	l := ledger.New()
	l.Add(ledger.Connection, 42)
	l.Reset()
	for _, r := range ledger.All {
		assert.Zero(t, l.Get(r))
	}
}
