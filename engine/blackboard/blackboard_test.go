package blackboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizij-ai/vizij-go-runtime/engine/path"
	"github.com/vizij-ai/vizij-go-runtime/engine/value"
	"github.com/vizij-ai/vizij-go-runtime/engine/writebatch"
)

func TestApplyThenGet(t *testing.T) {
	b := New()
	p := path.MustParse("robot/a")

	batch := writebatch.New()
	batch.PushValue(p, value.Float32(1.5))
	b.Apply(batch, 1)

	e, ok := b.Get(p)
	require.True(t, ok)
	assert.InDelta(t, 1.5, e.Value.Float, 1e-6)
	assert.Equal(t, uint64(1), e.LastEpoch)
}

func TestApplyLastWriteWinsWithinBatch(t *testing.T) {
	b := New()
	p := path.MustParse("robot/a")

	batch := writebatch.New()
	batch.PushValue(p, value.Float32(1))
	batch.PushValue(p, value.Float32(2))
	b.Apply(batch, 1)

	e, ok := b.Get(p)
	require.True(t, ok)
	assert.InDelta(t, 2.0, e.Value.Float, 1e-6)
}

func TestApplyOverwritesAcrossEpochs(t *testing.T) {
	b := New()
	p := path.MustParse("robot/a")

	first := writebatch.New()
	first.PushValue(p, value.Float32(1))
	b.Apply(first, 1)

	second := writebatch.New()
	second.PushValue(p, value.Float32(9))
	b.Apply(second, 2)

	e, ok := b.Get(p)
	require.True(t, ok)
	assert.InDelta(t, 9.0, e.Value.Float, 1e-6)
	assert.Equal(t, uint64(2), e.LastEpoch)
}

func TestIterChangedFiltersBySinceEpoch(t *testing.T) {
	b := New()
	pa := path.MustParse("robot/a")
	pb := path.MustParse("robot/b")

	batch1 := writebatch.New()
	batch1.PushValue(pa, value.Float32(1))
	b.Apply(batch1, 1)

	batch2 := writebatch.New()
	batch2.PushValue(pb, value.Float32(2))
	b.Apply(batch2, 2)

	changed := b.IterChanged(2)
	require.Len(t, changed, 1)
	assert.Equal(t, "robot/b", changed[0].Format())

	all := b.IterChanged(0)
	assert.Len(t, all, 2)
}

func TestGetMissingPathNotOk(t *testing.T) {
	b := New()
	_, ok := b.Get(path.MustParse("robot/missing"))
	assert.False(t, ok)
}

func TestApplyNilBatchIsNoop(t *testing.T) {
	b := New()
	b.Apply(nil, 1)
	assert.Equal(t, 0, b.Len())
}
