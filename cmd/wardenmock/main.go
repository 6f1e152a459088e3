// wardenmock is a development stand-in for the warden engine: it
// serves the control protocol on a unix socket with canned engine
// state, so wardenctl can be exercised without a running engine.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/danmuck/wardenctl/internal/observability"
	"github.com/danmuck/wardenctl/internal/warden"
)

func main() {
	var (
		socket  string
		verbose bool
	)
	fs := pflag.NewFlagSet("wardenmock", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVarP(&socket, "socket", "s", "warden.sock", "unix socket path to serve on")
	fs.BoolVarP(&verbose, "verbose", "v", false, "log command traffic at debug level")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	observability.InitConsoleLogger("wardenmock", false, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := warden.NewServer(warden.Config{SocketPath: socket})
	if err := srv.Listen(); err != nil {
		log.Fatal().Err(err).Str("socket", socket).Msg("listen failed")
	}
	err := srv.Serve(ctx)
	_ = os.Remove(socket)
	if err != nil {
		log.Fatal().Err(err).Msg("wardenmock stopped")
	}
	log.Info().Msg("wardenmock stopped")
}
