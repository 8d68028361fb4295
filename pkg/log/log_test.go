package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCliLogger(t *testing.T) {
	req := require.New(t)
	var stdout, stderr bytes.Buffer

	logger := NewCliLogger(&stdout, &stderr, false)
	logger.Debug("hidden")
	logger.Infof("PROCESSING: %s", "a.py")
	logger.Warn("careful")
	logger.Error("broken")
	req.NoError(logger.Sync())

	req.Equal("PROCESSING: a.py\n", stdout.String())
	req.Equal("WARN careful\nERROR broken\n", stderr.String())
}

func TestNewCliLogger_verbose(t *testing.T) {
	req := require.New(t)
	var stdout, stderr bytes.Buffer

	logger := NewCliLogger(&stdout, &stderr, true)
	logger.Debugf("source root %s", "/src")
	logger.Info("done")

	req.Equal("source root /src\ndone\n", stdout.String())
	req.Empty(stderr.String())
}

func TestNewNopLogger(t *testing.T) {
	req := require.New(t)
	req.NotPanics(func() {
		NewNopLogger().Info("nothing")
	})
}
