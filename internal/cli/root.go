package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rohmanhakim/rudolf/internal/build"
	"github.com/rohmanhakim/rudolf/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	dbPath      string
	cookieFile  string
	urlTemplate string
	userAgent   string
	timeout     time.Duration
	baseDelay   time.Duration
	jitter      time.Duration
	randomSeed  int64
	logLevel    string
	logJSON     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rudolf",
	Short: "Fetch-or-cache accessor for Advent of Code puzzle inputs.",
	Long: `rudolf returns the puzzle input for a year and day.

The first request for an input downloads it from adventofcode.com using the
session cookie in the cookie file and stores it in a local SQLite file.
Every later request is answered from that file without touching the network.`,
	Version:       build.Summary(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := ExecuteWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the command tree against explicit streams.
// Errors are printed to stderr and returned.
func ExecuteWithArgs(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, JSON or YAML (e.g., ~/.config/rudolf/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "SQLite file caching fetched inputs (default \"rudolf.db\")")
	rootCmd.PersistentFlags().StringVar(&cookieFile, "cookie-file", "", "file holding the adventofcode.com session cookie (default \"cookie.txt\")")
	rootCmd.PersistentFlags().StringVar(&urlTemplate, "url-template", "", "input URL with {year} and {day} placeholders")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for a single HTTP request (default 30s)")
	rootCmd.PersistentFlags().DurationVar(&baseDelay, "base-delay", 0, "minimum delay between two requests to the same host (default 1s)")
	rootCmd.PersistentFlags().DurationVar(&jitter, "jitter", 0, "random jitter added to the base delay")
	rootCmd.PersistentFlags().Int64Var(&randomSeed, "random-seed", 0, "seed for jitter (0 for current time)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, disabled (default \"warn\")")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs to stderr as JSON lines")

	rootCmd.AddCommand(inputCmd, prefetchCmd, listCmd, splitCmd)
}

// InitConfigWithError builds the effective config, returning any errors.
// Precedence from lowest to highest: defaults, config file, RUDOLF_* environment, flags.
func InitConfigWithError() (config.Config, error) {
	configBuilder := config.WithDefault()

	if cfgFile != "" {
		fileBuilder, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		configBuilder = fileBuilder
	}

	configBuilder, err := configBuilder.WithEnv()
	if err != nil {
		return config.Config{}, fmt.Errorf("error initializing config from environment: %w", err)
	}

	// Override with CLI flag values where provided
	if dbPath != "" {
		configBuilder = configBuilder.WithDBPath(dbPath)
	}

	if cookieFile != "" {
		configBuilder = configBuilder.WithCookieFile(cookieFile)
	}

	if urlTemplate != "" {
		configBuilder = configBuilder.WithURLTemplate(urlTemplate)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if baseDelay > 0 {
		configBuilder = configBuilder.WithBaseDelay(baseDelay)
	}

	if jitter > 0 {
		configBuilder = configBuilder.WithJitter(jitter)
	}

	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	if logJSON {
		configBuilder = configBuilder.WithLogJSON(logJSON)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	dbPath = ""
	cookieFile = ""
	urlTemplate = ""
	userAgent = ""
	timeout = 0
	baseDelay = 0
	jitter = 0
	randomSeed = 0
	logLevel = ""
	logJSON = false
	resetPrefetchFlags()
	resetListFlags()
	resetSplitFlags()

	// --version is owned by cobra and keeps its parsed value between executions
	if versionFlag := rootCmd.Flags().Lookup("version"); versionFlag != nil {
		_ = versionFlag.Value.Set("false")
		versionFlag.Changed = false
	}
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetDBPathForTest(path string) {
	dbPath = path
}

func SetCookieFileForTest(path string) {
	cookieFile = path
}

func SetURLTemplateForTest(template string) {
	urlTemplate = template
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetBaseDelayForTest(delay time.Duration) {
	baseDelay = delay
}

func SetLogLevelForTest(level string) {
	logLevel = level
}
