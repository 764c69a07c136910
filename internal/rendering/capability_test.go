package rendering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapability_StartsLoading(t *testing.T) {
	c := NewCapability(func() error { return nil })

	assert.Equal(t, StateLoading, c.State())
	assert.False(t, c.Ready())
	assert.Equal(t, CapabilityStatus{State: "loading"}, c.Status())
}

func TestCapability_InitReady(t *testing.T) {
	c := NewCapability(func() error { return nil })

	require.NoError(t, c.Init())
	assert.True(t, c.Ready())
	assert.Equal(t, CapabilityStatus{State: "ready", Ready: true}, c.Status())
}

func TestCapability_InitFailed(t *testing.T) {
	c := NewCapability(func() error { return errors.New("no fonts") })

	err := c.Init()
	require.Error(t, err)
	assert.Equal(t, StateFailed, c.State())
	assert.False(t, c.Ready())
	assert.Equal(t, "no fonts", c.Status().Error)
}

func TestCapability_ProbeRunsOnce(t *testing.T) {
	calls := 0
	c := NewCapability(func() error {
		calls++
		return nil
	})

	require.NoError(t, c.Init())
	require.NoError(t, c.Init())
	assert.Equal(t, 1, calls)
}

func TestCapability_ProbePanicIsFailure(t *testing.T) {
	c := NewCapability(func() error { panic("boom") })

	err := c.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, StateFailed, c.State())
}

func TestCapability_StartEventuallyReady(t *testing.T) {
	done := make(chan struct{})
	c := NewCapability(func() error {
		defer close(done)
		return nil
	})

	c.Start()
	<-done
	// Init blocks until the in-flight probe has stored its outcome
	require.NoError(t, c.Init())
	assert.True(t, c.Ready())
}

func TestProbePDF(t *testing.T) {
	assert.NoError(t, ProbePDF())
}

func TestRenderError_Detail(t *testing.T) {
	assert.Equal(t, "boom", (&RenderError{Message: "x", Cause: errors.New("boom")}).Detail())
	assert.Equal(t, "x", (&RenderError{Message: "x"}).Detail())
	assert.Equal(t, "render error: x: boom", (&RenderError{Message: "x", Cause: errors.New("boom")}).Error())
}
