package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/achilleasa/bvhviz/visualizer/server"
	"github.com/urfave/cli"
)

// Serve the session over the JSON inspection API until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	session, err := buildSession(ctx)
	if err != nil {
		logger.Error(err)
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(session, ctx.Int("fps"))
	if err = srv.Run(runCtx, ctx.String("addr")); err != nil {
		logger.Error(err)
		return err
	}

	logger.Notice("server stopped")
	return nil
}
