package ci

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Standard enumerates the C dialects the core understands, per
// explicit Non-goal ("C dialects beyond the configured
// standard set").
type Standard int

const (
	StandardC89 Standard = iota
	StandardC95
	StandardC99
	StandardC11
	StandardC17
	StandardC23
)

func ParseStandard(s string) (Standard, error) {
	switch s {
	case "c89":
		return StandardC89, nil
	case "c95":
		return StandardC95, nil
	case "c99":
		return StandardC99, nil
	case "c11":
		return StandardC11, nil
	case "c17":
		return StandardC17, nil
	case "c23":
		return StandardC23, nil
	default:
		return 0, errors.Errorf("unknown C standard %q", s)
	}
}

func (s Standard) String() string {
	return [...]string{"c89", "c95", "c99", "c11", "c17", "c23"}[s]
}

func (s Standard) AtLeast(other Standard) bool { return s >= other }

// Compiler selects the emitter quirks table
// mechanism 8 (the nullptr_t/typeof(nullptr) Clang compatibility
// quirk).
type Compiler int

const (
	CompilerGCC Compiler = iota
	CompilerClang
	CompilerOther
)

func ParseCompiler(s string) (Compiler, error) {
	switch s {
	case "gcc":
		return CompilerGCC, nil
	case "clang":
		return CompilerClang, nil
	case "other":
		return CompilerOther, nil
	default:
		return 0, errors.Errorf("unknown compiler %q", s)
	}
}

func (c Compiler) String() string {
	return [...]string{"gcc", "clang", "other"}[c]
}

// PipelineConfig is the config value threaded through every stage of
// the core pipeline (§6: `parse(file, config) -> ResultFile`).
type PipelineConfig struct {
	Standard     Standard
	Compiler     Compiler
	ClangVersion int // only meaningful when Compiler == CompilerClang
	DumpScanner  bool
	OutputDir    string
}

// NewPipelineConfig returns the conventional default config: the
// newest supported standard, gcc-compatible emission, no scanner dump.
func NewPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		Standard:  StandardC23,
		Compiler:  CompilerGCC,
		OutputDir: ".",
	}
}

// ProjectConfig is the on-disk project file the driver loads before
// building a PipelineConfig, analogous to how a real C build loads a
// project manifest. Its shape is intentionally small: it is a thin
// collaborator around the core, not part of the core itself.
type ProjectConfig struct {
	Standard     string `toml:"standard"`
	Compiler     string `toml:"compiler"`
	ClangVersion int    `toml:"clang_version"`
	OutputDir    string `toml:"output_dir"`
	DumpScanner  bool   `toml:"dump_scanner"`
}

// LoadProjectConfig parses a TOML project file into a ProjectConfig.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	var pc ProjectConfig
	if _, err := toml.DecodeFile(path, &pc); err != nil {
		return nil, errors.Wrapf(err, "cannot load project config %q", path)
	}
	return &pc, nil
}

// ToPipelineConfig resolves the on-disk project config into the
// typed PipelineConfig the pipeline actually consumes.
func (pc *ProjectConfig) ToPipelineConfig() (*PipelineConfig, error) {
	cfg := NewPipelineConfig()

	if pc.Standard != "" {
		std, err := ParseStandard(pc.Standard)
		if err != nil {
			return nil, err
		}
		cfg.Standard = std
	}
	if pc.Compiler != "" {
		comp, err := ParseCompiler(pc.Compiler)
		if err != nil {
			return nil, err
		}
		cfg.Compiler = comp
	}
	cfg.ClangVersion = pc.ClangVersion
	cfg.DumpScanner = pc.DumpScanner
	if pc.OutputDir != "" {
		cfg.OutputDir = pc.OutputDir
	}
	return cfg, nil
}
