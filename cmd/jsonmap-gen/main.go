// Command jsonmap-gen writes JSONProperties methods for types whose
// accessor methods are annotated with //jsonmap:property comments.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/hengadev/errsx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hengadev/jsonmap"
	"github.com/hengadev/jsonmap/internal/monitoring"
)

const defaultConfigPath = "jsonmap.yaml"

var (
	okMark   = color.GreenString("✓")
	failMark = color.RedString("✗")
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	switch command {
	case "generate":
		return generateCommand(args[1:], stdout, stderr)
	case "validate":
		return validateCommand(args[1:], stdout, stderr)
	case "init":
		return initCommand(args[1:], stdout, stderr)
	case "version":
		return versionCommand(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: jsonmap-gen <command> [options]\n")
	fmt.Fprintf(w, "\nCommands:\n")
	fmt.Fprintf(w, "  generate  Generate JSONProperties methods for annotated types\n")
	fmt.Fprintf(w, "  validate  Validate configuration, struct tags and accessor comments\n")
	fmt.Fprintf(w, "  init      Initialize configuration file\n")
	fmt.Fprintf(w, "  version   Show version information\n")
	fmt.Fprintf(w, "\nRun 'jsonmap-gen <command> -h' for help on a specific command.\n")
}

func generateCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfigPath, "Path to configuration file")
	outputDir := fs.String("output", "", "Override output directory")
	verbose := fs.Bool("v", false, "Verbose output")
	dryRun := fs.Bool("dry-run", false, "Show what would be generated without writing files")
	logLevel := fs.String("log-level", "warn", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	packages := fs.Args()
	if len(packages) == 0 {
		packages = []string{"."} // Current directory
	}

	logger, err := newLogger(*logLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	config, err := loadGeneratorConfig(*configPath, logger)
	if err != nil {
		fmt.Fprintf(stderr, "%s Configuration validation failed: %v\n", failMark, err)
		return 1
	}

	generator := NewGenerator(config, GeneratorOptions{
		TagKey:    envTagKey(logger),
		OutputDir: *outputDir,
		Verbose:   *verbose,
		Version:   jsonmap.Version,
		Out:       stdout,
		Logger:    logger,
	})

	files, err := generator.Generate(packages, *dryRun)
	if err != nil {
		fmt.Fprintf(stderr, "%s Generation failed: %v\n", failMark, err)
		printProblems(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "%s Code generation complete! (%d files)\n", okMark, len(files))
	return 0
}

func validateCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfigPath, "Path to configuration file")
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	packages := fs.Args()
	if len(packages) == 0 {
		packages = []string{"."} // Current directory
	}

	logger := zap.NewNop()
	fmt.Fprintf(stdout, "Validating configuration at %s...\n", *configPath)

	config, err := loadGeneratorConfig(*configPath, logger)
	if err != nil {
		fmt.Fprintf(stderr, "%s Configuration validation failed: %v\n", failMark, err)
		return 1
	}
	if *verbose {
		fmt.Fprintf(stdout, "%s Configuration is valid\n", okMark)
	}

	generator := NewGenerator(config, GeneratorOptions{TagKey: envTagKey(logger), Out: stdout, Logger: logger})

	hasErrors := false
	for _, pkg := range packages {
		if *verbose {
			fmt.Fprintf(stdout, "Validating package: %s\n", pkg)
		}

		types, err := generator.Discover(pkg)
		var problems errsx.Map
		if err != nil && !errors.As(err, &problems) {
			fmt.Fprintf(stderr, "Failed to discover types in %s: %v\n", pkg, err)
			hasErrors = true
			continue
		}

		if len(types) == 0 {
			if *verbose {
				fmt.Fprintf(stdout, "  No types with jsonmap directives found in %s\n", pkg)
			}
			continue
		}

		fmt.Fprintf(stdout, "Found %d types with jsonmap directives in %s:\n", len(types), pkg)
		for _, info := range types {
			fmt.Fprintf(stdout, "  %s (%s)\n", info.TypeName, info.SourceFile)

			typeErr, failed := problems[info.TypeName]
			if !failed {
				fmt.Fprintf(stdout, "    %s %d fields, %d accessors valid\n", okMark, len(info.Fields), len(info.Properties))
				continue
			}
			hasErrors = true
			printProblems(stdout, typeErr)
		}
	}

	if hasErrors {
		fmt.Fprintf(stderr, "\nValidation failed with errors.\n")
		return 1
	}

	fmt.Fprintf(stdout, "\n%s All validations passed!\n", okMark)
	return 0
}

func initCommand(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "Overwrite existing configuration file")
	configPath := fs.String("config", defaultConfigPath, "Path of the configuration file to create")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !*force {
		if _, err := os.Stat(*configPath); err == nil {
			fmt.Fprintf(stderr, "Configuration file %s already exists. Use -force to overwrite.\n", *configPath)
			return 1
		}
	}

	fmt.Fprintf(stdout, "Creating configuration file at %s...\n", *configPath)

	if err := SaveConfig(DefaultConfig(), *configPath); err != nil {
		fmt.Fprintf(stderr, "Failed to create config file: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "%s Configuration file created!\n", okMark)
	return 0
}

func versionCommand(stdout io.Writer) int {
	fmt.Fprintf(stdout, "jsonmap-gen (%s)\n", jsonmap.VersionInfo())
	if details := jsonmap.FullVersionInfo(); details.BuildUser != "" {
		fmt.Fprintf(stdout, "Built by %s\n", details.BuildUser)
	}
	fmt.Fprintln(stdout, "Code generator for jsonmap accessor declarations")
	fmt.Fprintln(stdout, "")
	fmt.Fprintf(stdout, "Accessor comment: //jsonmap:property [%s=<name>] [%s]\n", jsonmap.TagRename, jsonmap.TagIgnore)
	fmt.Fprintf(stdout, "Field directives:  %s, %s, %s=<name>\n", jsonmap.TagIgnore, jsonmap.TagIgnoreShort, jsonmap.TagRename)
	return 0
}

// loadGeneratorConfig reads the YAML file at path, or uses the defaults
// when it does not exist.
func loadGeneratorConfig(path string, logger *zap.Logger) (*Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			return nil, err
		}
		logger.Info("configuration file not found, using defaults", zap.String("path", path))
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// envTagKey returns the tag key set through JSONMAP_TAG_KEY, or "" when the
// environment does not hold a usable configuration.
func envTagKey(logger *zap.Logger) string {
	cfg, err := jsonmap.LoadConfigFromEnvironment()
	if err != nil {
		logger.Warn("ignoring environment configuration", zap.Error(err))
		return ""
	}
	return cfg.TagKey
}

func newLogger(level string, output io.Writer) (*zap.Logger, error) {
	logLevel, err := monitoring.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return monitoring.NewLogger(monitoring.LoggerConfig{
		Level:     logLevel,
		Format:    monitoring.FormatConsole,
		Output:    output,
		Component: "jsonmap-gen",
	}), nil
}

// printProblems lists keyed validation problems, one per line.
func printProblems(w io.Writer, err error) {
	var problems errsx.Map
	if !errors.As(err, &problems) {
		return
	}
	for _, key := range slices.Sorted(maps.Keys(problems)) {
		var nested errsx.Map
		if errors.As(problems[key], &nested) {
			printProblems(w, nested)
			continue
		}
		fmt.Fprintf(w, "    %s %s: %v\n", failMark, key, problems[key])
	}
}
