package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l := New()
	require.NotNil(t, l.Log, "logger must be usable before Init")
}

func TestInit(t *testing.T) {
	l := New()
	require.NoError(t, l.Init("info"))
	assert.NotNil(t, l.Log)
}

func TestInit_BadLevel(t *testing.T) {
	l := New()
	assert.Error(t, l.Init("loud"))
}
