package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/tokenscrub/packages/core/config"
	"github.com/abdul-hamid-achik/tokenscrub/packages/redact"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag      string
	placeholderFlag string
	schemaFlag      string
	outputFlag      string
	noColorFlag     bool
	verboseFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "tokenscrub [collection.json]",
	Short: "Replace hardcoded bearer tokens in a Postman collection",
	Long: `tokenscrub rewrites a Postman collection export so that hardcoded
bearer tokens become a {{admin_token}} template variable, then checks the
rewritten file is still valid JSON.

Only tokens starting with "eyJ" are replaced. Formatting outside the
replaced values is left exactly as it was.

Examples:
  tokenscrub
  tokenscrub "postman/collections/Integration Testing.postman_collection.json"
  tokenscrub collection.json --placeholder api_token
  tokenscrub collection.json --dry-run -v
  tokenscrub collection.json --watch`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          redactCommand,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(exitCode(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFlag, "config", "c", "", "Config file (default: .tokenscrub.json or .tokenscrub.yaml in the current directory)")
	pf.StringVarP(&placeholderFlag, "placeholder", "p", "", "Template variable that replaces tokens (default \"admin_token\")")
	pf.StringVar(&schemaFlag, "schema", "", "Also validate the document against this JSON Schema file")
	pf.StringVarP(&outputFlag, "output", "o", "", "Output format: console, json")
	pf.BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Print per-rule counts and debug logs")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the effective configuration: defaults, then the
// config file, then flags that were set explicitly, then the path argument.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, redact.ConfigError("load config", configFlag, err)
	}

	overrides := &config.Config{}
	flags := cmd.Flags()
	if flags.Changed("placeholder") {
		overrides.Placeholder = placeholderFlag
	}
	if flags.Changed("schema") {
		overrides.SchemaPath = schemaFlag
	}
	if flags.Changed("output") {
		overrides.Output = outputFlag
	}
	if flags.Changed("no-color") {
		overrides.NoColor = config.BoolPtr(noColorFlag)
	}
	if flags.Changed("verbose") {
		overrides.Verbose = config.BoolPtr(verboseFlag)
	}
	if flags.Lookup("in-place") != nil && flags.Changed("in-place") {
		overrides.Transactional = config.BoolPtr(!inPlaceFlag)
	}
	if len(args) > 0 {
		overrides.DocumentPath = args[0]
	}
	cfg = cfg.Merge(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, redact.ConfigError("load config", configFlag, err)
	}
	return cfg, nil
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(w, "%s %v\n", red("Error:"), err)
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, redact.ErrParse):
		return ExitParseError
	case errors.Is(err, redact.ErrConfig):
		return ExitConfigError
	case errors.Is(err, redact.ErrIO):
		return ExitIOError
	default:
		return ExitUsageError
	}
}
