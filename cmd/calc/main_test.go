package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunPrintsHistoryAndDisplayPerLine(t *testing.T) {
	in := strings.NewReader("7 + 3\n* 2 =\n")
	var out bytes.Buffer

	require.NoError(t, run(in, &out, zap.NewNop(), false))

	assert.Equal(t, "7 +\n3\n7 + 3 = 10 * 2 = 20\n20\n", out.String())
}

func TestRunQuietSkipsBlankAndBadLines(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	in := strings.NewReader("5/0=\n\n5 ? 2\nC 1.5*2=\n")
	var out bytes.Buffer

	require.NoError(t, run(in, &out, zap.New(core), true))

	assert.Equal(t, "Infinity\n3\n", out.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "ignoring line", logs.All()[0].Message)
}
