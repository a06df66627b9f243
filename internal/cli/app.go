// Package cli implements the mallctl command tree
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jrsteele09/go-mall-client/api"
	"github.com/jrsteele09/go-mall-client/cart"
	"github.com/jrsteele09/go-mall-client/internal/config"
	"github.com/jrsteele09/go-mall-client/internal/output"
	"github.com/jrsteele09/go-mall-client/navigation"
	"github.com/jrsteele09/go-mall-client/sessions"
	filesessionrepo "github.com/jrsteele09/go-mall-client/sessions/filerepo"
	redissessionrepo "github.com/jrsteele09/go-mall-client/sessions/redisrepo"
	fakesessionrepo "github.com/jrsteele09/go-mall-client/sessions/repofakes"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Command annotations
const (
	// annotationRoute names the navigation route a command stands for
	annotationRoute = "route"
	// annotationSession marks unguarded commands that still need the session
	annotationSession = "session"
)

// App holds everything a command needs. It is populated by the root
// command's PersistentPreRunE.
type App struct {
	Config  config.Config
	Printer *output.Printer
	Session *sessions.Store
	Client  *api.Client
	Cart    *cart.Store
	Guard   *navigation.Guard

	// redirect is set when the guard turned the login page into a landing page
	redirect navigation.RouteName

	opts    options
	closers []func() error
}

type options struct {
	out         io.Writer
	err         io.Writer
	sessionRepo sessions.Repo
	cfgFile     string
	verbose     bool
	quiet       bool
	color       string
}

// Option customises the root command, mainly for tests
type Option func(*options)

// WithOutput redirects standard and error output
func WithOutput(out, err io.Writer) Option {
	return func(o *options) {
		o.out = out
		o.err = err
	}
}

// WithSessionRepo overrides the configured session backend
func WithSessionRepo(repo sessions.Repo) Option {
	return func(o *options) {
		o.sessionRepo = repo
	}
}

func routeOf(name navigation.RouteName) map[string]string {
	return map[string]string{annotationRoute: string(name)}
}

func needsSession() map[string]string {
	return map[string]string{annotationSession: "true"}
}

// NewRootCmd builds the mallctl command tree
func NewRootCmd(opts ...Option) (*cobra.Command, *App) {
	app := &App{opts: options{out: os.Stdout, err: os.Stderr}}
	for _, opt := range opts {
		opt(&app.opts)
	}

	root := &cobra.Command{
		Use:   "mallctl",
		Short: "Command line storefront for the mall API",
		Long: `mallctl is a terminal client for the mall e-commerce API.

It keeps a login session between runs, manages the shopping cart, places
orders and exposes the administrator catalog, order and statistics pages.

Example usage:
  mallctl login -u alice        # Log in (prompts for the password)
  mallctl products              # Browse the catalog
  mallctl cart add 3 --qty 2    # Add two of product 3 to the cart
  mallctl cart checkout --address "1 Main St"
  mallctl admin stats overview  # Sales dashboard (administrators)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}
	root.SetOut(app.opts.out)
	root.SetErr(app.opts.err)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &output.CLIError{
			Summary:    err.Error(),
			Suggestion: fmt.Sprintf("see `%s --help`", cmd.CommandPath()),
			ExitCode:   output.ExitUsageError,
			Err:        err,
		}
	})

	root.PersistentFlags().StringVar(&app.opts.cfgFile, "config", "", "config file (default is .mallctl.yaml)")
	root.PersistentFlags().BoolVarP(&app.opts.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().BoolVarP(&app.opts.quiet, "quiet", "q", false, "only print errors")
	root.PersistentFlags().StringVar(&app.opts.color, "color", "auto", "color output: auto, always or never")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newRegisterCmd(app),
		newWhoamiCmd(app),
		newProfileCmd(app),
		newProductsCmd(app),
		newCartCmd(app),
		newOrdersCmd(app),
		newAdminCmd(app),
		newServeCmd(app),
		newVersionCmd(),
	)
	return root, app
}

// Run executes mallctl with args and returns the process exit code
func Run(args []string, opts ...Option) int {
	root, app := NewRootCmd(opts...)
	root.SetArgs(args)
	err := root.Execute()
	if cerr := app.close(); cerr != nil {
		log.Warn().Err(cerr).Msg("failed to release session storage")
	}
	if err == nil {
		return output.ExitSuccess
	}

	printer := app.Printer
	if printer == nil {
		printer = output.NewPrinter(app.opts.out, app.opts.err, false, false)
	}
	printer.FormatError(err)
	return output.ExitCodeOf(err)
}

// setup loads configuration and, for commands that need it, the session
// stack. Guarded commands are then checked against the navigation rules.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.cfgFile)
	if err != nil {
		return &output.CLIError{Summary: "loading config", Detail: err.Error(), ExitCode: output.ExitConfigError, Err: err}
	}
	a.Config = cfg

	mode, err := output.ParseColorMode(a.opts.color)
	if err != nil {
		return &output.CLIError{Summary: err.Error(), ExitCode: output.ExitUsageError, Err: err}
	}
	a.Printer = output.NewPrinter(a.opts.out, a.opts.err, output.ResolveColors(mode), a.opts.quiet)
	a.setupLogging()

	route := navigation.RouteName(cmd.Annotations[annotationRoute])
	if route == "" && cmd.Annotations[annotationSession] == "" {
		return nil
	}
	if err := a.setupSession(); err != nil {
		return err
	}
	if route == "" {
		return nil
	}
	return a.guard(route)
}

func (a *App) setupLogging() {
	level, err := zerolog.ParseLevel(a.Config.GetLogLevel())
	if err != nil || a.Config.GetLogLevel() == "" {
		level = zerolog.WarnLevel
	}
	if a.opts.verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: a.opts.err, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

func (a *App) setupSession() error {
	repo, err := a.sessionRepo()
	if err != nil {
		return &output.CLIError{
			Summary:    "opening session storage",
			Detail:     err.Error(),
			Suggestion: "check the session.backend settings in .mallctl.yaml",
			ExitCode:   output.ExitConfigError,
			Err:        err,
		}
	}

	a.Session, err = sessions.NewStore(repo)
	if err != nil {
		return &output.CLIError{Summary: "loading session", Detail: err.Error(), ExitCode: output.ExitConfigError, Err: err}
	}

	a.Client, err = api.New(a.Config.GetBaseURL(), a.Session,
		api.WithTimeout(a.Config.GetRequestTimeout()),
		api.WithTracing(a.Config.GetTracingEnabled()),
	)
	if err != nil {
		return &output.CLIError{Summary: "invalid API base URL", Detail: err.Error(), ExitCode: output.ExitConfigError, Err: err}
	}

	a.Cart = cart.NewStore(a.Client)
	a.Guard = navigation.NewGuard(navigation.MustDefaultTable(), a.Session)
	return nil
}

func (a *App) sessionRepo() (sessions.Repo, error) {
	if a.opts.sessionRepo != nil {
		return a.opts.sessionRepo, nil
	}

	switch a.Config.GetSessionBackend() {
	case config.SessionBackendMemory:
		return fakesessionrepo.NewFakeSessionRepo(), nil
	case config.SessionBackendRedis:
		repo, err := redissessionrepo.NewRedisSessionRepo(a.Config.GetRedisURL(), a.Config.GetRedisKeyPrefix())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		return repo, nil
	default:
		return filesessionrepo.NewFileSessionRepo(a.Config.GetSessionFile())
	}
}

// guard applies the navigation rules for route. A login while already
// authenticated is not an error: the landing page is remembered instead.
func (a *App) guard(route navigation.RouteName) error {
	decision, err := a.Guard.Resolve(route)
	if err != nil {
		return fmt.Errorf("resolving route %q: %w", route, err)
	}
	if decision.Allow {
		return nil
	}

	log.Debug().Str("route", string(route)).Str("redirect", string(decision.Redirect)).Msg("navigation redirected")

	switch {
	case route == navigation.RouteLogin:
		a.redirect = decision.Redirect
		return nil
	case decision.Redirect == navigation.RouteLogin:
		return errLoginRequired()
	default:
		return &output.CLIError{
			Summary:    "administrator privileges required",
			Detail:     fmt.Sprintf("%s is restricted to administrators", route),
			Suggestion: "log in with an administrator account",
			ExitCode:   output.ExitForbidden,
		}
	}
}

func (a *App) close() error {
	var errs []string
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("closing: %s", strings.Join(errs, "; "))
	}
	return nil
}

// pagePath renders a route name as its storefront path
func pagePath(name navigation.RouteName) string {
	r, err := navigation.MustDefaultTable().Lookup(name)
	if err != nil {
		return string(name)
	}
	return r.Path
}
