package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"buildcfg.dev/cli/internal/core/layer"
	"buildcfg.dev/cli/internal/core/ports"
	"buildcfg.dev/cli/internal/core/target"
)

// Config file names probed in the workspace directory, first hit wins.
var discoveryNames = []string{
	"buildcfg.yaml",
	"buildcfg.yml",
	"buildcfg.jsonc",
	"buildcfg.json",
}

// Document is the structured form of a config file. The schema is fixed and
// small: one unconditioned build block, an ordered list of target-conditioned
// blocks, and lint allows with rationale.
type Document struct {
	Build   BuildBlock    `yaml:"build" json:"build"`
	Targets []TargetBlock `yaml:"targets" json:"targets"`
	Lints   LintBlock     `yaml:"lints" json:"lints"`
}

// BuildBlock is the workspace-wide default flag list.
type BuildBlock struct {
	Flags []string `yaml:"flags" json:"flags"`
}

// TargetBlock conditions flags and lint allows on a cfg() selector.
type TargetBlock struct {
	Cfg   string    `yaml:"cfg" json:"cfg"`
	Flags []string  `yaml:"flags" json:"flags"`
	Lints LintBlock `yaml:"lints" json:"lints"`
}

// LintBlock lists lint identifiers to allow.
type LintBlock struct {
	Allow []AllowEntry `yaml:"allow" json:"allow"`
}

// AllowEntry is one lint identifier with an optional rationale.
type AllowEntry struct {
	ID     string `yaml:"id" json:"id"`
	Reason string `yaml:"reason" json:"reason"`
}

// FileLoader reads the workspace config file and turns it into layers: the
// build block lands in the file-default slot under the universal selector,
// each target block lands in the file-target slot in order of appearance.
// YAML and JSONC/JSON syntaxes carry the identical schema.
type FileLoader struct {
	workDir  string
	path     string
	registry *target.Registry
}

// NewFileLoader creates a loader that discovers the config file in workDir.
// A non-empty explicit path skips discovery.
func NewFileLoader(workDir, path string, registry *target.Registry) *FileLoader {
	return &FileLoader{workDir: workDir, path: path, registry: registry}
}

func (l *FileLoader) Name() string { return "file" }

// ConfigPath returns the config file path in effect and whether one exists.
func (l *FileLoader) ConfigPath() (string, bool) {
	if l.path != "" {
		_, err := os.Stat(l.path)
		return l.path, err == nil
	}
	for _, name := range discoveryNames {
		candidate := filepath.Join(l.workDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// Load parses the config file into placed layers. A missing file contributes
// nothing; a present but malformed file is a load-time error.
func (l *FileLoader) Load(ctx context.Context) ([]layer.Placed, error) {
	path, ok := l.ConfigPath()
	if !ok {
		if l.path != "" {
			return nil, fmt.Errorf("config file %s: %w", l.path, os.ErrNotExist)
		}
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	document, err := parseDocument(path, data)
	if err != nil {
		return nil, err
	}
	return l.buildLayers(path, document)
}

func parseDocument(path string, data []byte) (*Document, error) {
	document := &Document{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, document); err != nil {
			return nil, &SyntaxError{Input: path, Msg: err.Error()}
		}
	case ".jsonc", ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), document); err != nil {
			return nil, &SyntaxError{Input: path, Msg: err.Error()}
		}
	default:
		return nil, &SyntaxError{Input: path, Msg: "unsupported config file extension"}
	}
	return document, nil
}

func (l *FileLoader) buildLayers(path string, document *Document) ([]layer.Placed, error) {
	var placed []layer.Placed
	origin := layer.Origin{Source: "file", SourcePath: path}

	defaultSuppressions, err := toSuppressions(document.Lints)
	if err != nil {
		return nil, err
	}
	if len(document.Build.Flags) > 0 || len(defaultSuppressions) > 0 {
		if err := ValidateFlagTokens(document.Build.Flags); err != nil {
			return nil, err
		}
		defaultLayer := layer.New(origin, layer.Append,
			[]layer.Rule{{Selector: target.Universal{}, Flags: layer.FlagEntry(document.Build.Flags)}},
			defaultSuppressions,
		)
		placed = append(placed, layer.Placed{Slot: layer.SlotFileDefault, Layer: defaultLayer})
	}

	for _, block := range document.Targets {
		selector, err := ParseSelector(block.Cfg)
		if err != nil {
			return nil, err
		}
		if err := selector.Validate(l.registry); err != nil {
			return nil, err
		}
		if err := ValidateFlagTokens(block.Flags); err != nil {
			return nil, err
		}
		suppressions, err := toSuppressions(block.Lints)
		if err != nil {
			return nil, err
		}

		targetLayer := layer.New(origin, layer.Append,
			[]layer.Rule{{Selector: selector, Flags: layer.FlagEntry(block.Flags)}},
			suppressions,
		)
		placed = append(placed, layer.Placed{Slot: layer.SlotFileTarget, Layer: targetLayer})
	}

	return placed, nil
}

func toSuppressions(block LintBlock) ([]layer.Suppression, error) {
	suppressions := make([]layer.Suppression, 0, len(block.Allow))
	for _, entry := range block.Allow {
		if err := ValidateLintID(entry.ID); err != nil {
			return nil, err
		}
		suppressions = append(suppressions, layer.Suppression{ID: entry.ID, Reason: entry.Reason})
	}
	return suppressions, nil
}

var _ ports.LayerSource = (*FileLoader)(nil)
