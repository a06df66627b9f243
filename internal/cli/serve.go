package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-mall-client/internal/output"
	"github.com/jrsteele09/go-mall-client/server"
	"github.com/jrsteele09/go-mall-client/server/shoprepo"
	fakeuserrepo "github.com/jrsteele09/go-mall-client/users/repofake"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *App) *cobra.Command {
	var addr string
	var noBanner bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory mall API for local development",
		Long: `Run an in-memory implementation of the mall API. Data lives only as long
as the process. An administrator account is created at startup; when
server.admin_password is not configured a random password is generated
and logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.Config.GetListenAddr()
			}
			if !noBanner && !a.Printer.IsQuiet() {
				displayAppname(cmd, a.Config.GetAppName())
			}

			handler, err := server.New(a.Config, fakeuserrepo.NewFakeUserRepo(), shoprepo.NewInMemoryShopRepo())
			if err != nil {
				return &output.CLIError{Summary: "starting server", Detail: err.Error(), ExitCode: output.ExitServerError, Err: err}
			}

			stopped, stop := waitForStopSignal(cmd.Context())
			defer stop()

			srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
			failed := make(chan error, 1)
			go func() {
				failed <- listenAndServe(srv)
			}()

			select {
			case err := <-failed:
				if err != nil {
					return &output.CLIError{Summary: "server stopped", Detail: err.Error(), ExitCode: output.ExitServerError, Err: err}
				}
				return nil
			case <-stopped.Done():
			}

			if err := shutdown(srv); err != nil {
				return err
			}
			log.Info().Msg("Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.listen_addr)")
	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "do not print the startup banner")
	return cmd
}

func listenAndServe(srv *http.Server) error {
	log.Info().Str("addr", srv.Addr).Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

// waitForStopSignal returns a context that ends on SIGINT, SIGTERM or when ctx ends
func waitForStopSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(cmd *cobra.Command, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(cmd.OutOrStdout(), myFigure.String())
}
