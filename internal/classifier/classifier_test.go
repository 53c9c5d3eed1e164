package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/adgenie/internal/domain"
)

type fakeExternal struct {
	result ExternalResult
	calls  int
}

func (f *fakeExternal) Classify(context.Context, string) ExternalResult {
	f.calls++
	return f.result
}

func TestClassifyUsesExternalOnSuccess(t *testing.T) {
	ext := &fakeExternal{result: externalSucceeded("Sube la puja.", domain.ContextMarketingOptimization)}
	c := New(ext, newTestFallback(t))

	got := c.Classify(context.Background(), "hola")

	assert.Equal(t, 1, ext.calls)
	assert.Equal(t, Result{
		Reply:   "Sube la puja.",
		Context: domain.ContextMarketingOptimization,
		Source:  SourceExternal,
	}, got)
}

func TestClassifyKeepsUnknownExternalLabel(t *testing.T) {
	ext := &fakeExternal{result: externalSucceeded("ok", "SOMETHING_NEW")}
	c := New(ext, newTestFallback(t))

	got := c.Classify(context.Background(), "python")

	assert.Equal(t, SourceExternal, got.Source)
	assert.Equal(t, "SOMETHING_NEW", got.Context)
}

func TestClassifyFallsBackOnFailure(t *testing.T) {
	ext := &fakeExternal{result: externalFailed(errors.New("connection refused"))}
	c := New(ext, newTestFallback(t))

	got := c.Classify(context.Background(), "¿Cómo mejoro el CTR?")

	assert.Equal(t, 1, ext.calls, "external path is attempted once")
	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, domain.ContextMarketingOptimization, got.Context)
	assert.Equal(t, MarketingReply, got.Reply)
	assert.Equal(t, "connection refused", got.Reason)
}

func TestClassifyUnconfigured(t *testing.T) {
	c := New(nil, newTestFallback(t))

	got := c.Classify(context.Background(), "Hola")

	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, domain.ContextDefaultProcessing, got.Context)
	assert.Equal(t, ErrNotConfigured.Error(), got.Reason)
}

func TestUnconfiguredAlwaysFails(t *testing.T) {
	res := Unconfigured{}.Classify(context.Background(), "python")

	require.False(t, res.Succeeded())
	assert.ErrorIs(t, res.Reason, ErrNotConfigured)
}
