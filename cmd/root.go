package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"typelint/internal/config"
	"typelint/internal/diag"
	"typelint/internal/report"
	"typelint/internal/runner"
)

// Version is overridden during build with -ldflags "-X main.Version=x.x.x"
// and passed down from main.
var Version = "dev"

// GitCommit is the git commit hash
var GitCommit = "unknown"

// BuildTime is the build timestamp
var BuildTime = "unknown"

var rootCmd = &cobra.Command{
	Use:   "typelint",
	Short: "Type annotation presence linter for Python source",
	Long:  "A CLI tool that parses Python files and reports function arguments and return values that are missing type annotations",
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check Python files or directories for missing type annotations",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, &cfg)

		paths := args
		if len(paths) == 0 {
			paths = []string{"."}
		}

		jobs, _ := cmd.Flags().GetInt("jobs")
		if jobs <= 0 {
			jobs = runtime.NumCPU()
		}

		r := runner.New(cfg, jobs)
		results, err := r.Run(context.Background(), paths)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		noColor, _ := cmd.Flags().GetBool("no-color")

		var summary report.Summary
		switch format {
		case "json":
			summary, err = report.JSON(os.Stdout, results)
			if err != nil {
				return err
			}
		case "text":
			summary = report.Text(os.Stdout, results, !noColor)
		default:
			return fmt.Errorf("unknown output format: %s", format)
		}

		if summary.Failed() {
			os.Exit(1)
		}
		return nil
	},
}

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List all diagnostic codes with their message templates",
	Run: func(cmd *cobra.Command, args []string) {
		for _, code := range diag.All() {
			fmt.Printf("%s  %s\n", code, code.Template())
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("typelint %s\n", Version)
		fmt.Printf("  commit: %s\n", GitCommit)
		fmt.Printf("  built:  %s\n", BuildTime)
	},
}

// applyFlagOverrides copies any flag the user actually set over the values
// loaded from the config file, so the precedence is flags > file > defaults.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("suppress-none-returning") {
		cfg.SuppressNoneReturning, _ = flags.GetBool("suppress-none-returning")
	}
	if flags.Changed("suppress-dummy-args") {
		cfg.SuppressDummyArgs, _ = flags.GetBool("suppress-dummy-args")
	}
	if flags.Changed("allow-untyped-defs") {
		cfg.AllowUntypedDefs, _ = flags.GetBool("allow-untyped-defs")
	}
	if flags.Changed("allow-untyped-nested") {
		cfg.AllowUntypedNested, _ = flags.GetBool("allow-untyped-nested")
	}
	if flags.Changed("mypy-init-return") {
		cfg.MypyInitReturn, _ = flags.GetBool("mypy-init-return")
	}
	if flags.Changed("dispatch-decorators") {
		names, _ := flags.GetStringSlice("dispatch-decorators")
		cfg.DispatchDecorators = config.NameSet(names)
	}
	if flags.Changed("overload-decorators") {
		names, _ := flags.GetStringSlice("overload-decorators")
		cfg.OverloadDecorators = config.NameSet(names)
	}
}

func init() {
	checkCmd.Flags().Bool("suppress-none-returning", false, "Skip return checks for functions that only ever return None")
	checkCmd.Flags().Bool("suppress-dummy-args", false, "Skip checks for arguments named '_'")
	checkCmd.Flags().Bool("allow-untyped-defs", false, "Skip functions that have no annotations at all")
	checkCmd.Flags().Bool("allow-untyped-nested", false, "Skip unannotated functions nested inside other functions")
	checkCmd.Flags().Bool("mypy-init-return", false, "Allow __init__ to omit its return annotation when any argument is annotated")
	checkCmd.Flags().StringSlice("dispatch-decorators", nil, "Decorator names that mark dispatch functions to skip entirely")
	checkCmd.Flags().StringSlice("overload-decorators", nil, "Decorator names that mark typing overloads")
	checkCmd.Flags().String("format", "text", "Output format: text or json")
	checkCmd.Flags().Int("jobs", 0, "Number of files to check in parallel (0 = number of CPUs)")
	checkCmd.Flags().Bool("no-color", false, "Disable colorized output")
	checkCmd.Flags().String("config", "", "Path to a typelint.toml config file")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(codesCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
