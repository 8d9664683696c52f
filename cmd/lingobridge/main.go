package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/lingobridge/internal/app"
	"codeberg.org/snonux/lingobridge/internal/cli"
	"codeberg.org/snonux/lingobridge/internal/logging"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create command tree
	cmds := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile, flags.EnvFile)
	})

	// The root command serves, like the serve subcommand
	cmds.Root.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, flags)
	}
	cmds.Serve.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, flags)
	}
	cmds.Translate.RunE = func(cmd *cobra.Command, args []string) error {
		return runTranslate(cmd, args, flags)
	}
	cmds.Languages.RunE = func(cmd *cobra.Command, args []string) error {
		return app.Languages(cmd.OutOrStdout())
	}
	cmds.Models.RunE = func(cmd *cobra.Command, args []string) error {
		return app.Models(cmd.Context(), cli.GetOpenAIKey(), cmd.OutOrStdout())
	}
	cmds.Archive.RunE = func(cmd *cobra.Command, args []string) error {
		cfg := cli.LoadConfig()
		return app.Archive(app.ArchiveTarget{
			HistoryPath: cfg.HistoryPath,
			CacheDir:    cfg.TTSCacheDir,
			Cache:       flags.ArchiveCache,
		}, cmd.OutOrStdout())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := cmds.Root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func setup(ctx context.Context, cmd *cobra.Command, flags *cli.Flags) (*app.App, *zap.SugaredLogger, error) {
	cfg := cli.LoadConfig()
	if cmd.Flags().Changed("addr") {
		cfg.ServerAddr = flags.Addr
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return a, logger, nil
}

func runServe(cmd *cobra.Command, flags *cli.Flags) error {
	a, logger, err := setup(cmd.Context(), cmd, flags)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
		_ = logger.Sync()
	}()

	return a.Serve(cmd.Context())
}

func runTranslate(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	a, logger, err := setup(cmd.Context(), cmd, flags)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
		_ = logger.Sync()
	}()

	return a.Translate(cmd.Context(), app.TranslateOptions{
		From:      flags.From,
		To:        flags.To,
		Speaker:   flags.Speaker,
		Voice:     flags.Voice,
		BatchFile: flags.BatchFile,
		OutputDir: flags.AudioDir,
		Phonetic:  flags.Phonetic,
	}, args, cmd.OutOrStdout())
}
