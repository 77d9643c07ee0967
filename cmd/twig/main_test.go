package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/4thel00z/twig/internal"
	"github.com/stretchr/testify/assert"
)

type recordingCloser struct {
	closed int
}

func (c *recordingCloser) Close() error {
	c.closed++
	return nil
}

func preloadedApp() (*app, *recordingCloser) {
	a := newApp()
	a.cfg = internal.DefaultConfig()
	a.cfg.Output.Color = "never"
	closer := &recordingCloser{}
	a.closer = closer
	a.stderr = &bytes.Buffer{}
	return a, closer
}

func TestRunClosesAppOnFailure(t *testing.T) {
	a, closer := preloadedApp()

	code := run(context.Background(), a, []string{"commit"})

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, closer.closed)
}

func TestRunClosesAppOnSuccess(t *testing.T) {
	a, closer := preloadedApp()

	code := run(context.Background(), a, []string{"branch"})

	assert.Equal(t, 0, code)
	assert.Equal(t, 1, closer.closed)
}

func TestTryExternalCommandSkipsBuiltins(t *testing.T) {
	a, _ := preloadedApp()
	for _, args := range [][]string{nil, {"commit"}, {"--debug"}, {"no-such-external-command"}} {
		handled, err := tryExternalCommand(context.Background(), a, args)
		assert.False(t, handled, "args %v", args)
		assert.NoError(t, err)
	}
}
