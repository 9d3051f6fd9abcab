// Package main provides the sufx CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/nuclio/logger"
	nucliozap "github.com/nuclio/zap"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/viniciusth/suffixlcp"
	"github.com/viniciusth/suffixlcp/internal/config"
)

type rootOptions struct {
	settings config.Settings
	logger   logger.Logger

	// flag values, applied over the environment when set
	strategy  string
	rangeMin  string
	cacheSize int
	foldCase  bool
	normalize bool
	logLevel  string
	fromFile  bool
}

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	ro := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "sufx",
		Short: "Suffix array, LCP and range-minimum queries over a text",
		Long: `Builds a suffix array index over a text and answers queries on it.

TEXT arguments are literal strings, or file paths when --file is given.
Defaults come from SUFX_* environment variables and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ro.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ro.strategy, "strategy", "", "Suffix sorting strategy (sais, doubling, naive)")
	flags.StringVar(&ro.rangeMin, "rmq", "", "Range-minimum structure (sparse, hybrid)")
	flags.IntVar(&ro.cacheSize, "cache-size", 0, "Number of memoized search results")
	flags.BoolVar(&ro.foldCase, "fold-case", false, "Fold case before indexing")
	flags.BoolVar(&ro.normalize, "normalize", false, "Normalize the text with NFC before indexing")
	flags.StringVar(&ro.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVarP(&ro.fromFile, "file", "f", false, "Read TEXT arguments from files")

	rootCmd.AddCommand(
		newSearchCommand(ro),
		newLCPCommand(ro),
		newLRSCommand(ro),
		newLCSCommand(ro),
		newDistinctCommand(ro),
		newDumpCommand(ro),
		newBenchCommand(ro),
	)
	return rootCmd
}

// load reads the environment settings, applies explicitly set flags and
// creates the logger.
func (ro *rootOptions) load(cmd *cobra.Command) error {
	settings, err := config.New()
	if err != nil {
		return errors.Wrap(err, "Failed to load settings")
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		settings.Index.Strategy = ro.strategy
	}
	if flags.Changed("rmq") {
		settings.Index.RangeMin = ro.rangeMin
	}
	if flags.Changed("cache-size") {
		settings.Index.CacheSize = ro.cacheSize
	}
	if flags.Changed("fold-case") {
		settings.Index.FoldCase = ro.foldCase
	}
	if flags.Changed("normalize") {
		settings.Index.Normalize = ro.normalize
	}
	if flags.Changed("log-level") {
		settings.Log.Level = ro.logLevel
	}
	ro.settings = settings

	ro.logger, err = nucliozap.NewNuclioZapCmd("sufx", nucliozap.GetLevelByName(settings.Log.Level))
	if err != nil {
		return errors.Wrap(err, "Failed to create logger")
	}
	return nil
}

func (ro *rootOptions) options() (suffixlcp.Options, error) {
	opts, err := ro.settings.Options()
	if err != nil {
		return suffixlcp.Options{}, err
	}
	opts.Logger = ro.logger
	return opts, nil
}

func (ro *rootOptions) loadText(arg string) ([]byte, error) {
	if !ro.fromFile {
		return []byte(arg), nil
	}
	text, err := os.ReadFile(arg)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read %s", arg)
	}
	return text, nil
}

func (ro *rootOptions) buildIndex(arg string) (*suffixlcp.Index, error) {
	text, err := ro.loadText(arg)
	if err != nil {
		return nil, err
	}
	opts, err := ro.options()
	if err != nil {
		return nil, err
	}
	idx, err := suffixlcp.NewBuilder(text).WithOptions(opts).Build()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build index")
	}
	return idx, nil
}
