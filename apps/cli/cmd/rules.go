package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/abdul-hamid-achik/tokenscrub/packages/core/config"
	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the substitution rules that would be applied",
	Long: `Print the substitution rules in the order they are applied.

Rules come from the config file when it defines any, otherwise the two
default rules for the configured placeholder are used.

Examples:
  tokenscrub rules
  tokenscrub rules --placeholder api_token
  tokenscrub rules -o json`,
	Args: cobra.NoArgs,
	RunE: rulesCommand,
}

func rulesCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	rules, err := redact.Compile(cfg.EffectiveRules())
	if err != nil {
		return err
	}

	if cfg.Output == config.OutputJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(rules.Rules())
	}

	if cfg.GetNoColor() {
		color.NoColor = true
	}
	bold := color.New(color.Bold).SprintFunc()
	for i, r := range rules.Rules() {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, bold(r.Name))
		fmt.Fprintf(cmd.OutOrStdout(), "   pattern:     %s\n", r.Pattern)
		fmt.Fprintf(cmd.OutOrStdout(), "   replacement: %q\n", r.Replacement)
	}
	return nil
}
