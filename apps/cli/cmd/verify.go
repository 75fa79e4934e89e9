package cmd

import (
	"github.com/abdul-hamid-achik/tokenscrub/packages/output"
	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [collection.json]",
	Short: "Check a collection is valid JSON without rewriting it",
	Long: `Check a collection export is valid JSON without rewriting it.

With --schema the document is also validated against a JSON Schema file,
such as the Postman collection v2.1 schema.

Examples:
  tokenscrub verify
  tokenscrub verify collection.json
  tokenscrub verify collection.json --schema collection.v2.1.schema.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: verifyCommand,
}

func verifyCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.GetVerbose())
	formatter := output.New(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.GetVerbose(), cfg.GetNoColor())

	r, err := newRedactor(cfg, logger)
	if err != nil {
		return err
	}

	result, err := r.Verify(commandContext(cmd), cfg.DocumentPath)
	if err != nil {
		return err
	}
	formatter.FormatVerification(result)
	if err := formatter.Flush(); err != nil {
		return redact.IOError("write report", "", err)
	}
	return nil
}
