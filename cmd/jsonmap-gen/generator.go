package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hengadev/errsx"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/hengadev/jsonmap/internal/codegen"
)

// Generator handles the code generation process
type Generator struct {
	config    *Config
	tagKey    string
	outputDir string
	verbose   bool
	version   string
	out       io.Writer
	logger    *zap.Logger
}

// GeneratorOptions holds the command line settings of a Generator
type GeneratorOptions struct {
	// TagKey is the struct tag key read for field directives.
	TagKey string
	// OutputDir overrides the directory generated files are written to.
	OutputDir string
	Verbose   bool
	// Version is written in the generated file header.
	Version string
	Out     io.Writer
	Logger  *zap.Logger
}

// NewGenerator creates a new Generator instance
func NewGenerator(config *Config, opts GeneratorOptions) *Generator {
	if config == nil {
		config = DefaultConfig()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	tagKey := config.Generation.TagKey
	if tagKey == "" {
		tagKey = opts.TagKey
	}

	return &Generator{
		config:    config,
		tagKey:    tagKey,
		outputDir: opts.OutputDir,
		verbose:   opts.Verbose,
		version:   opts.Version,
		out:       opts.Out,
		logger:    opts.Logger,
	}
}

// Discover finds the annotated types of a package and validates them.
// Validation problems are returned keyed by type name.
func (g *Generator) Discover(packagePath string) ([]codegen.TypeInfo, error) {
	types, err := codegen.DiscoverTypes(packagePath, &codegen.DiscoveryConfig{
		TagKey:          g.tagKey,
		GeneratedSuffix: g.config.Generation.OutputSuffix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover types in package %s: %w", packagePath, err)
	}

	validator := codegen.NewTagValidator()
	errs := errsx.Map{}
	for _, info := range types {
		if err := validator.ValidateType(info); err != nil {
			errs.Set(info.TypeName, err)
		}
	}
	if err := errs.AsError(); err != nil {
		return types, err
	}

	return types, nil
}

// Generate performs code generation for the specified packages and returns
// the paths of the generated files.
func (g *Generator) Generate(packages []string, dryRun bool) ([]string, error) {
	g.logger.Debug("starting code generation", zap.Strings("packages", packages), zap.Bool("dry_run", dryRun))

	templateEngine, err := codegen.NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to create template engine: %w", err)
	}

	var generated []string
	for _, packagePath := range packages {
		if pkgConfig, exists := g.config.Packages[packagePath]; exists && pkgConfig.Skip {
			g.logger.Info("skipping package", zap.String("package", packagePath))
			continue
		}

		types, err := g.Discover(packagePath)
		if err != nil {
			return generated, fmt.Errorf("package %s: %w", packagePath, err)
		}
		g.logger.Debug("discovered types", zap.String("package", packagePath), zap.Int("count", len(types)))

		codegenConfig := g.config.ToCodegenConfig(packagePath, g.version)
		sourceFiles := lo.Uniq(lo.Map(types, func(info codegen.TypeInfo, _ int) string { return info.SourceFile }))
		byFile := lo.GroupBy(types, func(info codegen.TypeInfo) string { return info.SourceFile })

		for _, sourceFile := range sourceFiles {
			templateData, err := codegen.BuildTemplateData(byFile[sourceFile], codegenConfig)
			if err != nil {
				return generated, fmt.Errorf("failed to build template data for %s: %w", sourceFile, err)
			}
			if len(templateData.Types) == 0 {
				continue
			}

			code, err := templateEngine.GenerateCode(templateData)
			if err != nil {
				return generated, fmt.Errorf("failed to generate code for %s: %w", sourceFile, err)
			}

			outputFile := filepath.Join(g.outputDirFor(packagePath), g.outputFileName(sourceFile))
			if dryRun {
				fmt.Fprintf(g.out, "Would generate: %s\n", outputFile)
				if g.verbose {
					fmt.Fprintf(g.out, "Generated code:\n%s\n", code)
				}
				generated = append(generated, outputFile)
				continue
			}

			if err := os.WriteFile(outputFile, code, 0644); err != nil {
				return generated, fmt.Errorf("failed to write generated file %s: %w", outputFile, err)
			}
			g.logger.Info("generated file", zap.String("source", sourceFile), zap.String("output", outputFile))
			if g.verbose {
				fmt.Fprintf(g.out, "Generated: %s\n", outputFile)
			}
			generated = append(generated, outputFile)
		}
	}

	return generated, nil
}

// outputDirFor picks the package override, then the -output flag, then the
// package directory itself.
func (g *Generator) outputDirFor(packagePath string) string {
	if pkgConfig, ok := g.config.Packages[packagePath]; ok && pkgConfig.OutputDir != "" {
		return pkgConfig.OutputDir
	}
	if g.outputDir != "" {
		return g.outputDir
	}
	return packagePath
}

func (g *Generator) outputFileName(sourceFile string) string {
	base := strings.TrimSuffix(filepath.Base(sourceFile), ".go")
	return base + g.config.Generation.OutputSuffix + ".go"
}
