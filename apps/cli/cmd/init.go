package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/tokenscrub/packages/core/config"
	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a tokenscrub config file",
	Long: `Write a .tokenscrub.yaml file in the current directory with the default
document path, placeholder and substitution rules spelled out, ready to edit.

Examples:
  tokenscrub init
  tokenscrub init --force`,
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return redact.IOError("getwd", "", err)
	}

	configFile := filepath.Join(cwd, ".tokenscrub.yaml")
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", configFile)
		}
	}

	cfg := config.DefaultConfig()
	cfg.Rules = cfg.EffectiveRules()
	if err := cfg.SaveConfig(configFile); err != nil {
		return redact.IOError("write config", configFile, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'tokenscrub' to rewrite %q.\n", cfg.DocumentPath)
	return nil
}
