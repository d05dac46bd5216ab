package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	ci "github.com/thelilylang/cic"
)

// defaultWritePermission matches what a generated translation unit is
// written with; it carries no executable bit since the output is
// always C source, never a binary.
const defaultWritePermission = 0644

type driverFlags struct {
	configPath   *string
	standard     *string
	compiler     *string
	clangVersion *int
	outputDir    *string
	dumpScanner  *bool
	verbose      *bool
}

func main() {
	flags := &driverFlags{}
	root := &cobra.Command{
		Use:   "cic [files...]",
		Short: "cic compiles generic-monomorphizing C sources to ISO C",
		Long: "cic runs the full lex/preparse/parse/resolve/typecheck/monomorphize/emit\n" +
			"pipeline over one or more translation units and writes a plain ISO-C\n" +
			"file for each one.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, args)
		},
	}

	pf := root.Flags()
	flags.configPath = pf.StringP("config", "c", "", "path to a TOML project config file")
	flags.standard = pf.String("standard", "", "C standard to target (c89, c95, c99, c11, c17, c23); overrides the config file")
	flags.compiler = pf.String("compiler", "", "target compiler quirks table (gcc, clang, other); overrides the config file")
	flags.clangVersion = pf.Int("clang-version", 0, "Clang version, only meaningful with --compiler clang")
	flags.outputDir = pf.StringP("output-dir", "o", "", "directory generated .c files are written to; overrides the config file")
	flags.dumpScanner = pf.Bool("dump-scanner", false, "log every token the scanner produces")
	flags.verbose = pf.BoolP("verbose", "v", false, "write stage logs as human-readable console output instead of JSON lines")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cic:", err)
		os.Exit(1)
	}
}

func run(flags *driverFlags, paths []string) error {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}
	if !*flags.verbose {
		ci.SetLogOutput(os.Stderr)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir %q: %w", cfg.OutputDir, err)
	}

	registry := ci.NewRegistry()
	builtins := ci.NewBuiltinTable()

	type unit struct {
		path string
		file *ci.ResultFile
		sink *ci.Sink
	}
	units := make([]unit, 0, len(paths))

	fatal := false
	for _, path := range paths {
		sink := ci.NewSink()
		file, err := frontend(path, cfg, builtins, sink)
		reportDiagnostics(path, sink)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cic: %s: %s\n", path, err)
			fatal = true
			continue
		}
		if err := registry.Put(path, file); err != nil {
			fmt.Fprintf(os.Stderr, "cic: %s: %s\n", path, err)
			fatal = true
			continue
		}
		units = append(units, unit{path: path, file: file, sink: sink})
	}
	if fatal {
		os.Exit(1)
	}

	for _, u := range units {
		tc := ci.NewTypechecker(u.file, registry, u.sink, builtins)
		tc.Check()
		reportDiagnostics(u.path, u.sink)
		if u.sink.HasErrors() {
			fatal = true
		}
	}
	if fatal {
		os.Exit(1)
	}

	for _, u := range units {
		emitter := ci.NewEmitter(u.file, registry, u.sink, builtins, cfg)
		out, err := emitter.Generate()
		reportDiagnostics(u.path, u.sink)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cic: %s: %s\n", u.path, err)
			fatal = true
			continue
		}
		dest := outputPathFor(cfg, u.path)
		if err := os.WriteFile(dest, []byte(out), defaultWritePermission); err != nil {
			fmt.Fprintf(os.Stderr, "cic: %s: %s\n", dest, err)
			fatal = true
		}
	}
	if fatal {
		os.Exit(1)
	}
	return nil
}

// frontend runs the lex/preparse/parse stages for a single translation
// unit, logging each stage the way the rest of the core reports its
// progress (§6: scan -> preparse -> parse -> ResultFile).
func frontend(path string, cfg *ci.PipelineConfig, builtins *ci.BuiltinTable, sink *ci.Sink) (*ci.ResultFile, error) {
	src, err := ci.LoadSource(path)
	if err != nil {
		return nil, err
	}

	log := ci.Log.With().Str("file", path).Logger()

	log.Debug().Msg("scanning")
	scanner := ci.NewScanner(src, sink, cfg.Standard)
	tokens := scanner.Scan()
	if cfg.DumpScanner {
		for _, t := range tokens {
			log.Debug().Str("stage", "scanner").Msg(t.String())
		}
	}

	log.Debug().Msg("preparsing")
	pp := ci.NewPreparser(tokens, sink)
	tokens = pp.Run()

	macros := ci.NewMacroTable()
	stack := ci.NewTokenStack(tokens, macros, sink)

	file := ci.NewResultFile(path, src, sink)
	log.Debug().Msg("parsing")
	parser := ci.NewParser(stack, file, sink, cfg.Standard, builtins)
	parser.ParseTranslationUnit()

	return file, nil
}

func outputPathFor(cfg *ci.PipelineConfig, srcPath string) string {
	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	return filepath.Join(cfg.OutputDir, base+".c")
}

func reportDiagnostics(path string, sink *ci.Sink) {
	for _, d := range sink.All() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, d.String())
	}
}

// resolveConfig merges an optional TOML project config with the flags
// explicitly passed on the command line; a flag always wins over the
// file, and the file always wins over the conventional default.
func resolveConfig(flags *driverFlags) (*ci.PipelineConfig, error) {
	cfg := ci.NewPipelineConfig()

	if *flags.configPath != "" {
		pc, err := ci.LoadProjectConfig(*flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg, err = pc.ToPipelineConfig()
		if err != nil {
			return nil, err
		}
	}

	if *flags.standard != "" {
		std, err := ci.ParseStandard(*flags.standard)
		if err != nil {
			return nil, err
		}
		cfg.Standard = std
	}
	if *flags.compiler != "" {
		comp, err := ci.ParseCompiler(*flags.compiler)
		if err != nil {
			return nil, err
		}
		cfg.Compiler = comp
	}
	if *flags.clangVersion != 0 {
		cfg.ClangVersion = *flags.clangVersion
	}
	if *flags.outputDir != "" {
		cfg.OutputDir = *flags.outputDir
	}
	if *flags.dumpScanner {
		cfg.DumpScanner = true
	}
	return cfg, nil
}
