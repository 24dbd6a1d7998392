// Package main provides the CLI entrypoint for fromgen.
//
// fromgen is a go:generate codegen tool that:
//   - Parses Go packages (AST + go/types) to find annotated union declarations
//   - Validates that every variant wraps exactly one embedded payload
//   - Generates one conversion constructor per variant, in declaration order
//
// Typical use:
//
//	//go:generate go run fromgen/cmd/fromgen .
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"

	"fromgen/internal/analyze"
	"fromgen/internal/config"
	"fromgen/internal/gen"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("fromgen", flag.ExitOnError)

	var (
		configPath = fs.String("config", "", "YAML run configuration (default fromgen.yaml if present)")
		output     = fs.String("output", "", "generated file name (default "+config.DefaultOutputName+")")
		dryRun     = fs.Bool("dry-run", false, "print generated files to stdout instead of writing")
		debug      = fs.Bool("debug", false, "dump the scanned union model to stderr")
	)

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: fromgen [flags] [packages]")
		fs.PrintDefaults()
	}

	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fromgen:", err)
		return 1
	}

	// Flags take precedence over the config file.
	if *output != "" {
		cfg.Output = *output
	}

	patterns := fs.Args()
	if len(patterns) == 0 {
		patterns = cfg.Packages
	}

	analyzer := analyze.NewAnalyzer()

	pkgs, diags, err := analyzer.LoadPackages(patterns...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fromgen:", err)
		return 1
	}

	if *debug {
		spew.Fdump(os.Stderr, pkgs)
	}

	for _, w := range diags.Warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}

	// Malformed shapes fail the run before anything is written.
	if diags.HasErrors() {
		for _, e := range diags.Errors {
			fmt.Fprintln(os.Stderr, e.String())
		}

		return 1
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{OutputName: cfg.Output})

	files, err := generator.Generate(pkgs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fromgen:", err)
		return 1
	}

	if *dryRun {
		for _, f := range files {
			fmt.Printf("// -- %s --\n%s", filepath.Join(f.Dir, f.Filename), f.Content)
		}

		return 0
	}

	if err := gen.WriteFiles(files); err != nil {
		fmt.Fprintln(os.Stderr, "fromgen:", err)
		return 1
	}

	return 0
}

// loadConfig resolves the run configuration: an explicit -config path, the
// default fromgen.yaml if present, or built-in defaults.
func loadConfig(path string) (*config.File, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	if _, err := os.Stat(config.DefaultFileName); err == nil {
		return config.LoadFile(config.DefaultFileName)
	}

	return config.Default(), nil
}
