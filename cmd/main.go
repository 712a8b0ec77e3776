package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/minio-ops/minio-operator/cli"
)

var version = "0.1.0" // override by ldflags

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	root := &cobra.Command{
		Use:     "minio-operator",
		Short:   "MinIO workload operator",
		Version: version,
	}
	cli.RegisterCommands(root)

	if err := root.ExecuteContext(ctrl.SetupSignalHandler()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
