package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/pathfinder/config"
	"github.com/pdrpinto/pathfinder/httpapi"
	"github.com/pdrpinto/pathfinder/kb"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and /metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", a.cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", a.cfg.Server.Addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "serving on http://%s\n", listener.Addr())
			return a.serve(ctx, listener)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().Int("max-goals", config.DefaultMaxGoals, "largest goal count accepted by /v1/solve; 0 for no limit")
	a.viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	a.viper.BindPFlag("server.max_goals", cmd.Flags().Lookup("max-goals"))
	return cmd
}

// serve runs the API on listener until ctx is done, then drains in-flight
// requests.
func (a *app) serve(ctx context.Context, listener net.Listener) error {
	options, err := a.knowledgeBaseOptions()
	if err != nil {
		return err
	}
	if !a.logger.Enabled(ctx, slog.LevelDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers := httpapi.NewHandlers(kb.New(options...),
		httpapi.WithMazeOptions(a.cfg.TerrainOptions()...),
		httpapi.WithSearchOptions(a.searchOptions()...),
		httpapi.WithMaxGoals(a.cfg.Server.MaxGoals),
		httpapi.WithLogger(a.logger))
	server := &http.Server{
		Handler:           httpapi.NewRouter(handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		a.logger.Info("Server starting", "addr", listener.Addr().String())
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		a.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
