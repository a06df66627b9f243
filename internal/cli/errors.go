package cli

import (
	"errors"
	"fmt"

	"github.com/jrsteele09/go-mall-client/api"
	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/internal/output"
)

func errLoginRequired() error {
	return &output.CLIError{
		Summary:    "login required",
		Suggestion: "run `mallctl login` first",
		ExitCode:   output.ExitAuthRequired,
		Err:        mallerrors.ErrNotAuthenticated,
	}
}

func errUsage(format string, args ...any) error {
	return &output.CLIError{Summary: fmt.Sprintf(format, args...), ExitCode: output.ExitUsageError}
}

// apiFailure turns an API error into a CLIError for the failed action
func apiFailure(action string, err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return &output.CLIError{
			Summary:    "session expired",
			Detail:     api.Message(err),
			Suggestion: "run `mallctl login` again",
			ExitCode:   output.ExitAuthRequired,
			Err:        err,
		}
	case errors.Is(err, api.ErrNoCredential):
		return errLoginRequired()
	case errors.Is(err, mallerrors.ErrForbidden):
		return &output.CLIError{Summary: action, Detail: api.Message(err), ExitCode: output.ExitForbidden, Err: err}
	case errors.Is(err, api.ErrTransport):
		return &output.CLIError{
			Summary:    "cannot reach the mall API",
			Detail:     err.Error(),
			Suggestion: "check api.base_url or start a local API with `mallctl serve`",
			ExitCode:   output.ExitServerError,
			Err:        err,
		}
	default:
		return &output.CLIError{Summary: action, Detail: api.Message(err), ExitCode: output.ExitGeneral, Err: err}
	}
}

// cartFailure reports a failed cart operation from the store's last error.
// The store has already cleared the session when the credential was rejected.
func (a *App) cartFailure(action string) *output.CLIError {
	if !a.Session.IsAuthenticated() {
		return &output.CLIError{
			Summary:    "session expired",
			Detail:     a.Cart.LastError(),
			Suggestion: "run `mallctl login` again",
			ExitCode:   output.ExitAuthRequired,
		}
	}
	return &output.CLIError{Summary: action, Detail: a.Cart.LastError(), ExitCode: output.ExitGeneral}
}
