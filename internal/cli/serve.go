package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-roster/internal/config"
	"github.com/aanand-mishra/student-roster/internal/editor"
	"github.com/aanand-mishra/student-roster/internal/http/handlers/student"
	"github.com/aanand-mishra/student-roster/internal/http/middleware"
)

// NewServeCommand creates the serve command: the roster over HTTP.
//
// STARTUP SEQUENCE:
//  1. Load configuration, initialise the logger
//  2. Open the slot and hydrate the roster
//  3. Register the HTTP routes
//  4. Start the HTTP server in a separate goroutine
//  5. Block until an OS signal (Ctrl+C / kill) arrives
//  6. Gracefully shut down, flush the roster, close the slot
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the roster JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A server without a valid config exits here, before any
			// listener is opened.
			cfg := config.MustLoad(opts.ConfigPath)

			// An HTTP DELETE is its own confirmation.
			a, err := openApp(opts, appOptions{
				cfg:     cfg,
				logTo:   cmd.OutOrStdout(),
				confirm: editor.AlwaysConfirm,
			})
			if err != nil {
				return err
			}
			defer a.Close()

			a.log.Info("starting roster server",
				slog.String("env", a.cfg.Env),
				slog.String("version", "1.0.0"),
			)

			done := make(chan os.Signal, 1)
			signal.Notify(done, os.Interrupt, syscall.SIGTERM)

			return serve(a, done)
		},
	}
}

// newRouter maps the API onto the roster.
//
// Route table:
//
//	POST   /api/students           → add a student
//	GET    /api/students           → list rows
//	GET    /api/students/{index}   → get one row's form values
//	PUT    /api/students/{index}   → replace a row
//	DELETE /api/students/{index}   → delete a row
func newRouter(roster student.Roster, log *slog.Logger) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.New(roster))
	router.HandleFunc("GET /api/students", student.GetList(roster))
	router.HandleFunc("GET /api/students/{index}", student.GetByIndex(roster))
	router.HandleFunc("PUT /api/students/{index}", student.Update(roster))
	router.HandleFunc("DELETE /api/students/{index}", student.Delete(roster))

	return middleware.WithRequestID(middleware.Logger(log)(router))
}

// serve runs the server until done fires, then shuts it down and flushes
// the roster.
func serve(a *app, done <-chan os.Signal) error {
	server := &http.Server{
		Addr:    a.cfg.HTTPServer.Addr,
		Handler: newRouter(a.editor, a.log),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ListenAndServe blocks until Shutdown, so it gets its own goroutine.
	serveErr := make(chan error, 1)
	go func() {
		a.log.Info("server started", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-done:
		a.log.Info("shutdown signal received, stopping server...")
	case err, ok := <-serveErr:
		if ok {
			a.log.Error("server encountered an error", slog.String("error", err.Error()))
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		a.log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		return err
	}

	if err := a.editor.Flush(); err != nil {
		a.log.Error("failed to flush roster", slog.String("error", err.Error()))
		return err
	}

	a.log.Info("server stopped gracefully")
	return nil
}
