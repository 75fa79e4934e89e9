package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/tokenscrub/packages/core/config"
	"github.com/abdul-hamid-achik/tokenscrub/packages/output"
	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	inPlaceFlag bool
	dryRunFlag  bool
	watchFlag   bool
)

func init() {
	rootCmd.Flags().BoolVar(&inPlaceFlag, "in-place", false, "Overwrite the document before validating it (no temporary file)")
	rootCmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "Validate the rewritten document without writing it")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-run whenever the document changes")
	rootCmd.MarkFlagsMutuallyExclusive("dry-run", "watch")
}

func redactCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.GetVerbose())
	formatter := output.New(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.GetVerbose(), cfg.GetNoColor())

	r, err := newRedactor(cfg, logger,
		redact.WithDryRun(dryRunFlag),
		redact.WithSkipUnchanged(watchFlag),
	)
	if err != nil {
		return err
	}

	logger.Debug("redacting document", "path", cfg.DocumentPath, "transactional", cfg.GetTransactional(), "dryRun", dryRunFlag)
	result, err := r.Redact(commandContext(cmd), cfg.DocumentPath)
	if err != nil {
		return err
	}
	formatter.FormatRedaction(result)
	if err := formatter.Flush(); err != nil {
		return redact.IOError("write report", "", err)
	}

	if !watchFlag {
		return nil
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchDocument(ctx, cmd, r, cfg.DocumentPath, formatter, logger)
}

// newRedactor compiles the configured rules and builds a Redactor.
func newRedactor(cfg *config.Config, logger *log.Logger, opts ...redact.Option) (*redact.Redactor, error) {
	rules, err := redact.Compile(cfg.EffectiveRules())
	if err != nil {
		return nil, err
	}

	// Custom rules carry their own replacements; there is no single
	// placeholder to report.
	placeholder := cfg.Placeholder
	if len(cfg.Rules) > 0 {
		placeholder = ""
	}

	base := []redact.Option{
		redact.WithPlaceholder(placeholder),
		redact.WithTransactional(cfg.GetTransactional()),
		redact.WithSchema(cfg.SchemaPath),
		redact.WithLogger(logger),
	}
	return redact.New(rules, append(base, opts...)...), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
