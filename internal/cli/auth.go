package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jrsteele09/go-mall-client/api"
	"github.com/jrsteele09/go-mall-client/internal/output"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/navigation"
	"github.com/jrsteele09/go-mall-client/users"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *App) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Long: `Log in to the mall API. The session is kept in the configured session
backend until logout or until the API rejects the credential.

Examples:
  mallctl login -u alice            # Prompts for the password on stdin
  mallctl login -u admin -p secret`,
		Annotations: routeOf(navigation.RouteLogin),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.redirect != "" {
				s := a.Session.Snapshot()
				a.Printer.Info("already logged in as %s, continue at %s", s.DisplayName, pagePath(a.redirect))
				return nil
			}

			in := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				username = prompt(a, in, "Username: ")
			}
			if password == "" {
				password = prompt(a, in, "Password: ")
			}
			if strings.TrimSpace(username) == "" || password == "" {
				return errUsage("username and password are required")
			}

			resp, err := a.Client.Login(cmd.Context(), strings.TrimSpace(username), password)
			if err != nil {
				return apiFailure("login failed", err)
			}
			session, err := a.Session.Login(resp)
			if err != nil {
				return &output.CLIError{Summary: "could not store the session", Detail: err.Error(), Err: err}
			}

			a.Printer.Success("logged in as %s", session.DisplayName)
			if decision, err := a.Guard.Resolve(navigation.RouteLogin); err == nil && !decision.Allow {
				a.Printer.Info("continue at %s", pagePath(decision.Redirect))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func prompt(a *App, in *bufio.Reader, label string) string {
	fmt.Fprint(a.opts.err, label)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

func newLogoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Forget the current session",
		Annotations: needsSession(),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Session.Credential() != "" {
				if err := a.Client.Logout(cmd.Context()); err != nil {
					a.Printer.Warning("the server did not revoke the session: %s", api.Message(err))
				}
			}
			if err := a.Session.Logout(); err != nil {
				return &output.CLIError{Summary: "could not clear the session", Detail: err.Error(), Err: err}
			}
			a.Printer.Success("logged out")
			return nil
		},
	}
}

func newRegisterCmd(a *App) *cobra.Command {
	var req mallmodel.RegisterRequest
	cmd := &cobra.Command{
		Use:         "register",
		Short:       "Create a customer account",
		Annotations: routeOf(navigation.RouteRegister),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := users.ValidateRegistration(req); err != nil {
				return errUsage("%v", err)
			}
			msg, err := a.Client.Register(cmd.Context(), req)
			if err != nil {
				return apiFailure("registration failed", err)
			}
			if msg == "" {
				msg = "account created"
			}
			a.Printer.Success("%s", msg)
			a.Printer.Info("log in with `mallctl login -u %s`", req.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username (required)")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password: 8+ characters with upper, lower and a digit (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newWhoamiCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:         "whoami",
		Short:       "Show the current session",
		Annotations: needsSession(),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.Session.Snapshot()
			if !s.IsAuthenticated() {
				a.Printer.Info("not logged in")
				return nil
			}

			role := "customer"
			if s.IsAdmin {
				role = "administrator"
			}
			a.Printer.Print("%s (id %d, %s)", a.Printer.Bold(s.DisplayName), s.UserIDValue(), role)

			claims, err := a.Session.CredentialClaims()
			if err != nil {
				a.Printer.Warning("credential cannot be decoded: %v", err)
				return nil
			}
			if !claims.ExpiresAt.IsZero() {
				if claims.Expired(time.Now()) {
					a.Printer.Warning("credential expired at %s", claims.ExpiresAt.Format(time.RFC1123))
				} else {
					a.Printer.Print("credential expires %s", a.Printer.Dim(claims.ExpiresAt.Format(time.RFC1123)))
				}
			}
			return nil
		},
	}
}
