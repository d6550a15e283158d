package adaptation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2beens/trainingcoach/internal/training/readiness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	rules []Rule
	err   error
}

func (s *countingSource) ListSystemDefaults(context.Context) ([]Rule, error) {
	s.calls++
	return s.rules, s.err
}

func TestRuleStore_CachesSnapshot(t *testing.T) {
	source := &countingSource{rules: []Rule{
		{Level: readiness.LevelRed, Modifiers: Modifiers{0.7, 0.8, 1.3}, Message: "recover"},
		{Level: readiness.LevelGreen, Modifiers: NeutralModifiers()},
	}}
	store := NewRuleStore(source, 1, time.Minute)

	table := store.Table(context.Background())
	require.Len(t, table, 2)
	assert.Equal(t, "recover", table[readiness.LevelRed].Message)

	table = store.Table(context.Background())
	require.Len(t, table, 2)
	assert.Equal(t, 1, source.calls)

	store.Invalidate()
	source.rules = source.rules[:1]
	table = store.Table(context.Background())
	assert.Len(t, table, 1)
	assert.Equal(t, 2, source.calls)
}

func TestRuleStore_SourceErrorDegradesToNeutral(t *testing.T) {
	source := &countingSource{err: errors.New("db gone")}
	store := NewRuleStore(source, 0, time.Minute)

	table := store.Table(context.Background())
	assert.Empty(t, table)
	assert.Equal(t, NeutralRule(), Resolve(table, readiness.LevelRed))

	// failures are not cached
	store.Table(context.Background())
	assert.Equal(t, 2, source.calls)
}

func TestToTable_KeepsFirstDuplicate(t *testing.T) {
	table := toTable([]Rule{
		{Level: readiness.LevelRed, Message: "first"},
		{Level: readiness.LevelRed, Message: "second"},
	})
	assert.Equal(t, "first", table[readiness.LevelRed].Message)
}
