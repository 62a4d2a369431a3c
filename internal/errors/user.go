package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Order matters for wrapped errors: the first entry matched by errors.Is wins,
// so round-trip categories come before the causes they usually wrap.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Session & round trips
	// ===================
	{
		err: ErrAuthentication,
		info: ErrorInfo{
			Message: "Could not authenticate with Vault.",
			Action:  "Check vault.address and that the token is valid and not expired.",
		},
	},
	{
		err: ErrCredentialMissing,
		info: ErrorInfo{
			Message: "No Vault token was provided.",
			Action:  "Export the variable named by vault.token_env_var (VAULT_TOKEN by default) or set vault.token_file.",
		},
	},
	{
		err: ErrSigning,
		info: ErrorInfo{
			Message: "Vault could not sign the message.",
			Action:  "Check that the transit key exists and the token policy allows <mount>/sign/<key>.",
		},
	},
	{
		err: ErrVerification,
		info: ErrorInfo{
			Message: "Vault could not verify the message.",
			Action:  "Check that the transit key exists and the token policy allows <mount>/verify/<key>.",
		},
	},
	{
		err: ErrDecode,
		info: ErrorInfo{
			Message: "Malformed encoded input.",
			Action:  "Signatures must be hex, standard base64 or a vault:v1:<base64> envelope.",
		},
	},
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Processing was interrupted.",
		},
	},

	// ===================
	// Actions
	// ===================
	{
		err: ErrActionFile,
		info: ErrorInfo{
			Message: "The action file could not be loaded.",
			Action:  "Check the YAML syntax and that every entry has an action of sign or verify.",
		},
	},
	{
		err: ErrInvalidActionRef,
		info: ErrorInfo{
			Message: "A verify action references a signature that was not produced.",
			Action:  "signature_ref must point at an earlier sign action in the same file.",
		},
	},
	{
		err: ErrInvalidAction,
		info: ErrorInfo{
			Message: "An action is malformed.",
			Action:  "Sign actions take a message; verify actions take a message and a signature.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrKeyNameRequired,
		info: ErrorInfo{
			Message: "No transit key name configured.",
			Action:  "Pass --key or set signing.key_name in your config.",
		},
	},
	{
		err: ErrConfigInvalidVault,
		info: ErrorInfo{
			Message: "Invalid Vault configuration.",
			Action:  "Review the vault section of your config file.",
		},
	},
	{
		err: ErrConfigInvalidSigning,
		info: ErrorInfo{
			Message: "Invalid signing configuration.",
			Action:  "Review the signing section of your config file.",
		},
	},
	{
		err: ErrConfigInvalidRun,
		info: ErrorInfo{
			Message: "Invalid run configuration.",
			Action:  "run.on_error must be abort or continue.",
		},
	},
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration was not loaded.",
		},
	},

	// ===================
	// CLI input
	// ===================
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
	{
		err: ErrPromptUnavailable,
		info: ErrorInfo{
			Message: "A token prompt was needed but no terminal is attached.",
			Action:  "Provide the token through the environment or vault.token_file.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries a direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
