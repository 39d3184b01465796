package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"photohive/pkg/config"
	"photohive/pkg/logger"
)

var (
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "photohive",
	Short: "Photo sharing backend",
	Long: "Photohive stores uploaded photos with a generated thumbnail in a blob store\n" +
		"and keeps their metadata in a document store.\n\n" +
		"Running without a subcommand starts the HTTP server.",
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
	RunE:               runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reconcileCmd)
}

func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return err
	}

	logCloser = logger.Setup(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.Environment == "production",
	})
	return nil
}

func shutdownApp(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}
