package diagnostics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func init() {
	SetOutputDisabled()
}

func TestAddRecordsEntryAndMirrorsToLogger(t *testing.T) {
	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	defer SetOutputDisabled()
	s := NewSummary()
	s.Addf("anim", "ShapeMismatch", "instance %d track %d", 1, 2)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "anim", s.Entries()[0].Controller)
	assert.Equal(t, "ShapeMismatch", s.Entries()[0].Kind)
	assert.Contains(t, buf.String(), "anim: ShapeMismatch: instance 1 track 2")
}

func TestAddOnOrchestratorLevelDiagnosticUsesOrchestratorLabel(t *testing.T) {
	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	defer SetOutputDisabled()
	s := NewSummary()
	s.Add(Diagnostic{Kind: "Cycle", Message: "nodes a,b"})
	assert.Equal(t, "", s.Entries()[0].Controller)
	assert.Contains(t, buf.String(), "orchestrator: Cycle: nodes a,b")
}

func TestMergeConcatenatesInOrder(t *testing.T) {
	a := NewSummary()
	a.Addf("a", "K1", "first")
	b := NewSummary()
	b.Addf("b", "K2", "second")
	a.Merge(b)
	assert.Len(t, a.Entries(), 2)
	assert.Equal(t, "K2", a.Entries()[1].Kind)
}
