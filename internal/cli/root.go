package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/composer2rpm/pkg/buildinfo"
	"github.com/matzehuels/composer2rpm/pkg/errors"
	"github.com/matzehuels/composer2rpm/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level, plus cache and HTTP events
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "composer2rpm <vendor/project>",
		Short: "Generate an RPM spec and autoloader for a Composer package",
		Long: `composer2rpm fetches a package's metadata from Packagist and writes two files
into the current directory:

  autoload.php                 registers the package namespace with the Fedora autoloader
  php-<vendor>-<project>.spec  RPM recipe building the package from its upstream sources

Registry documents are cached on first use and never refreshed;
run "composer2rpm cache clear" to fetch them again.`,
		Example:       "  composer2rpm psr/http-message",
		Version:       buildinfo.Version,
		Args:          packageArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
				hooks := &logHooks{logger: c.Logger}
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.generate(cmd.Context(), args[0])
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// packageArg requires exactly one positional package name.
func packageArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New(errors.ErrCodeInvalidArgument, "expected exactly one package name (vendor/project), got %d arguments", len(args))
	}
	return nil
}
