package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGlobals(t *testing.T) {
	rest, g, err := splitGlobals([]string{"--debug", "-m", "hello", "world", "--config=/tmp/x.yaml", "--no-color"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-m", "hello", "world"}, rest)
	assert.True(t, g.debug)
	assert.True(t, g.noColor)
	assert.Equal(t, "/tmp/x.yaml", g.configPath)

	rest, g, err = splitGlobals([]string{"--config", "/tmp/y.yaml", "testing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"testing"}, rest)
	assert.Equal(t, "/tmp/y.yaml", g.configPath)

	_, _, err = splitGlobals([]string{"--config"})
	assert.Error(t, err)
}
