package tui

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	vserrors "github.com/mrz1836/vaultsign/internal/errors"
)

// VaultsignTheme returns the huh theme for prompts, using the colors from styles.go.
func VaultsignTheme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorPrimary)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	return t
}

// stdinIsTerminal is replaced in tests.
//
//nolint:gochecknoglobals // test seam
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptToken asks for a Vault token with masked input. It refuses with
// errors.ErrPromptUnavailable when stdin is not a terminal, so scripts and
// tests never block on it.
func PromptToken(ctx context.Context) (string, error) {
	if !stdinIsTerminal() {
		return "", vserrors.ErrPromptUnavailable
	}

	var token string
	field := huh.NewInput().
		Title("Vault token").
		Description("Input is hidden. Set VAULT_TOKEN to skip this prompt.").
		EchoMode(huh.EchoModePassword).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return vserrors.ErrCredentialMissing
			}
			return nil
		}).
		Value(&token)

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(VaultsignTheme()).
		WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", vserrors.Wrap(vserrors.ErrOperationCanceled, "token prompt")
		}
		return "", vserrors.Wrap(err, "token prompt")
	}
	return strings.TrimSpace(token), nil
}
