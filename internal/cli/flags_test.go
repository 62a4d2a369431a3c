package cli

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/vaultsign/internal/errors"
)

func TestAddGlobalFlags_Config(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	cmd := &cobra.Command{Use: "test", RunE: func(_ *cobra.Command, _ []string) error { return nil }}
	AddGlobalFlags(cmd, flags)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Empty(t, configFlag.DefValue)

	cmd.SetArgs([]string{"--config", "/etc/vaultsign/ci.yaml"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/etc/vaultsign/ci.yaml", flags.ConfigFile)
}

func TestBindGlobalFlags_Environment(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		args     []string
		expected GlobalFlags
	}{
		{
			name:     "no environment keeps defaults",
			expected: GlobalFlags{Output: OutputText},
		},
		{
			name:     "environment sets every flag",
			env:      map[string]string{"VAULTSIGN_OUTPUT": "json", "VAULTSIGN_QUIET": "true", "VAULTSIGN_CONFIG": "/etc/vaultsign/config.yaml"},
			expected: GlobalFlags{Output: OutputJSON, Quiet: true, ConfigFile: "/etc/vaultsign/config.yaml"},
		},
		{
			name:     "explicit flags win over environment",
			env:      map[string]string{"VAULTSIGN_OUTPUT": "json", "VAULTSIGN_CONFIG": "/etc/vaultsign/config.yaml"},
			args:     []string{"-o", "text", "--config", "local.yaml"},
			expected: GlobalFlags{Output: OutputText, ConfigFile: "local.yaml"},
		},
		{
			name:     "verbose flag overrides quiet environment",
			env:      map[string]string{"VAULTSIGN_QUIET": "true"},
			args:     []string{"-v"},
			expected: GlobalFlags{Output: OutputText, Verbose: true},
		},
		{
			name:     "verbose environment wins over quiet environment",
			env:      map[string]string{"VAULTSIGN_VERBOSE": "true", "VAULTSIGN_QUIET": "true"},
			expected: GlobalFlags{Output: OutputText, Verbose: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, name := range []string{"VAULTSIGN_OUTPUT", "VAULTSIGN_VERBOSE", "VAULTSIGN_QUIET", "VAULTSIGN_CONFIG"} {
				t.Setenv(name, tc.env[name])
			}

			flags := &GlobalFlags{}
			cmd := &cobra.Command{Use: "test"}
			AddGlobalFlags(cmd, flags)
			require.NoError(t, cmd.PersistentFlags().Parse(tc.args))

			require.NoError(t, BindGlobalFlags(viper.New(), cmd, flags))
			assert.Equal(t, tc.expected, *flags)
		})
	}
}

//nolint:err113 // Test cases intentionally use dynamic errors to simulate Vault and Cobra failures
func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"nil error returns success", nil, ExitSuccess},
		{"malformed argument", errors.NewExitCode2Error(errors.Wrap(errors.ErrDecode, "signature")), ExitInvalidInput},
		{"missing key name", fmt.Errorf("sign: %w", errors.ErrKeyNameRequired), ExitInvalidInput},
		{"bad action file", fmt.Errorf("load: %w", errors.ErrActionFile), ExitInvalidInput},
		{"malformed action", fmt.Errorf("action 2: %w", errors.ErrInvalidAction), ExitInvalidInput},
		{"invalid vault config", fmt.Errorf("load configuration: %w", errors.ErrConfigInvalidVault), ExitInvalidInput},
		{"invalid run config", fmt.Errorf("load configuration: %w", errors.ErrConfigInvalidRun), ExitInvalidInput},
		{"unknown signature format", fmt.Errorf("%w: --signature-format", errors.ErrInvalidArgument), ExitInvalidInput},
		{"signing failure carrying decode cause", errors.WrapWith(errors.ErrSigning, errors.ErrDecode, "transit sign"), ExitError},
		{"verification failure", errors.WrapWith(errors.ErrVerification, stderrors.New("502 Bad Gateway"), "transit verify"), ExitError},
		{"rejected token", errors.WrapWith(errors.ErrAuthentication, stderrors.New("permission denied"), "token lookup"), ExitError},
		{"missing token", errors.ErrCredentialMissing, ExitError},
		{"cancellation", errors.ErrOperationCanceled, ExitError},
		{"cobra argument count", stderrors.New("accepts 2 arg(s), received 1"), ExitInvalidInput},
		{"cobra minimum arguments", stderrors.New("requires at least 1 arg(s), only received 0"), ExitInvalidInput},
		{"cobra unknown flag", stderrors.New("unknown flag: --keyname"), ExitInvalidInput},
		{"generic error", stderrors.New("something went wrong"), ExitError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expectedCode, ExitCodeForError(tc.err))
		})
	}
}
