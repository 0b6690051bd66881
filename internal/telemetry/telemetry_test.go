package telemetry

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewSetsLevelByVerbosity(t *testing.T) {
	var buf bytes.Buffer

	require.Equal(t, logrus.WarnLevel, New(&buf, Quiet).GetLevel())
	require.Equal(t, logrus.InfoLevel, New(&buf, Verbose).GetLevel())
	require.Equal(t, logrus.DebugLevel, New(&buf, Debug).GetLevel())
}

func TestStatWritesAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Verbose)

	l.Stat("lex", logrus.Fields{"tokens": 12})

	out := buf.String()
	require.Contains(t, out, "stage complete")
	require.Contains(t, out, "lex")
	require.Contains(t, out, "tokens=12")
}

func TestStatSuppressedWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Quiet)

	l.Stat("lex", logrus.Fields{"tokens": 12})

	require.Empty(t, buf.String())
}
