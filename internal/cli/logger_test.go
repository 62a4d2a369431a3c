package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/vaultsign/internal/constants"
	"github.com/mrz1836/vaultsign/internal/logging"
)

func TestInitLogger_LogLevelPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verbose       bool
		quiet         bool
		expectedLevel zerolog.Level
	}{
		{
			name:          "default is info level",
			expectedLevel: zerolog.InfoLevel,
		},
		{
			name:          "verbose enables debug level",
			verbose:       true,
			expectedLevel: zerolog.DebugLevel,
		},
		{
			name:          "quiet enables warn level",
			quiet:         true,
			expectedLevel: zerolog.WarnLevel,
		},
		{
			name:          "verbose takes precedence over quiet",
			verbose:       true,
			quiet:         true,
			expectedLevel: zerolog.DebugLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := InitLoggerWithWriter(tc.verbose, tc.quiet, &buf)
			assert.Equal(t, tc.expectedLevel, logger.GetLevel())
			assert.Equal(t, tc.expectedLevel, selectLevel(tc.verbose, tc.quiet))
		})
	}
}

func TestSelectOutput_NonTTY(t *testing.T) {
	// Tests run without a terminal, so JSON goes to stderr.
	t.Setenv("NO_COLOR", "1")

	output := selectOutput()
	assert.Equal(t, os.Stderr, output)
}

func TestLogEntryStructure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)

	logger.Info().
		Str("component", "transit").
		Str("op", "sign").
		Str("key", "radu-key-ed25519").
		Int("input_bytes", 13).
		Msg("transit round trip")

	output := buf.String()
	assert.Contains(t, output, `"ts":`)
	assert.Contains(t, output, `"level":"info"`)
	assert.Contains(t, output, `"event":"transit round trip"`)
	assert.Contains(t, output, `"app":"vaultsign"`)
	assert.Contains(t, output, `"key":"radu-key-ed25519"`)
	assert.Contains(t, output, `"input_bytes":13`)
}

func TestInitLoggerWithWriter_FlagsSensitiveMessages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(true, false, &buf)

	logger.Debug().Msg("using token hvs.CAESIJ0mTm2Vxs5kdVVzQQ2zbt3y")
	assert.Contains(t, buf.String(), `"contains_filtered_data":true`)

	buf.Reset()
	logger.Debug().Msg("authentication check")
	assert.NotContains(t, buf.String(), "contains_filtered_data")
}

func TestInitLogger_AttachedToContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(true, false, &buf)
	ctx := logger.WithContext(context.Background())

	zerolog.Ctx(ctx).Debug().Str("component", "config").Msg("configuration loaded")
	assert.Contains(t, buf.String(), "configuration loaded")
}

func TestConfigureZerologGlobals_Idempotent(t *testing.T) {
	t.Parallel()

	configureZerologGlobals()
	configureZerologGlobals()

	assert.Equal(t, "ts", zerolog.TimestampFieldName)
	assert.Equal(t, "event", zerolog.MessageFieldName)
}

func TestLogFilePath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(constants.HomeEnvVar, tmpDir)

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName), path)
}

func TestLogFilePath_DefaultsToUserHome(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, "")

	path, err := LogFilePath()
	require.NoError(t, err)

	userHome, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userHome, constants.AppHome, constants.LogsDir, constants.CLILogFileName), path)
}

func TestCreateLogFileWriter_CreatesLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(constants.HomeEnvVar, tmpDir)

	writer, err := createLogFileWriter()
	require.NoError(t, err)

	_, err = writer.Write([]byte(`{"level":"info","event":"test"}`))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	info, err := os.Stat(filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestCreateLogFileWriter_FailsOnInvalidPath(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "not_a_directory")
	require.NoError(t, os.WriteFile(filePath, []byte("test"), 0o600))
	t.Setenv(constants.HomeEnvVar, filePath)

	writer, err := createLogFileWriter()
	require.Error(t, err)
	assert.Nil(t, writer)
}

func TestInitLogger_WritesRedactedFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(constants.HomeEnvVar, tmpDir)
	logFileWriter = nil

	logger := InitLogger(false, false)
	logger.Info().Str("key", "radu-key-ed25519").Msg("lookup with X-Vault-Token: hvs.CAESIJ0mTm2Vxs5kdVVzQQ2zbt3y")
	CloseLogFile()

	data, err := os.ReadFile(filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)) //#nosec G304 -- test temp dir
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "radu-key-ed25519")
	assert.Contains(t, content, "lookup with")
	assert.NotContains(t, content, "hvs.CAESIJ0mTm2Vxs5kdVVzQQ2zbt3y")
	assert.Contains(t, content, logging.RedactedValue)
}

func TestInitLogger_HandlesFileCreationFailure(t *testing.T) {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "blocked")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o600))
	t.Setenv(constants.HomeEnvVar, filePath)
	logFileWriter = nil

	logger := InitLogger(false, true)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	assert.Nil(t, logFileWriter)
}

func TestCloseLogFile_NoOpWhenNil(_ *testing.T) {
	logFileWriter = nil
	CloseLogFile()
}

func TestFilteringWriteCloser(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fwc := &filteringWriteCloser{
		filter: logging.NewFilteringWriter(&buf),
		closer: io.NopCloser(&buf),
	}

	n, err := fwc.Write([]byte("token=hvs.CAESIJ0mTm2Vxs5kdVVzQQ2zbt3y"))
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.NotContains(t, buf.String(), "CAESIJ0mTm2Vxs5kdVVzQQ2zbt3y")
	require.NoError(t, fwc.Close())
}
