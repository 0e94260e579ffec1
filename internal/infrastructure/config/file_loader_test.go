package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildcfg.dev/cli/internal/core/layer"
	"buildcfg.dev/cli/internal/core/target"
)

// Local test helpers

func writeConfig(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

const yamlFixture = `build:
  flags: ["--cfg=web_sys_unstable_apis", "-C", "link-arg=-s"]
targets:
  - cfg: 'cfg(platform = "web")'
    flags: ["-C", "target-feature=+bulk-memory"]
    lints:
      allow:
        - id: dead_code
          reason: wasm externs look unused
  - cfg: 'cfg(all(platform = "native", os = "linux"))'
    flags: ["-C", "link-arg=-fuse-ld=lld"]
lints:
  allow:
    - id: clippy::assigning_clones
      reason: suggested form is less readable
    - id: unused_imports
`

const jsoncFixture = `{
  // Workspace defaults; comments are allowed in this syntax.
  "build": {"flags": ["--cfg=web_sys_unstable_apis"]},
  "targets": [
    {"cfg": "cfg(platform = \"web\")", "flags": ["-C", "target-feature=+bulk-memory"]}
  ],
  "lints": {"allow": [{"id": "dead_code", "reason": "generated bindings"}]}
}
`

// TestFileLoader_YAMLDocument tests layer construction from the YAML syntax
func TestFileLoader_YAMLDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "buildcfg.yaml", yamlFixture)

	loader := NewFileLoader(dir, "", target.DefaultRegistry())
	placed, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, placed, 3, "One default layer plus two target blocks")

	assert.Equal(t, layer.SlotFileDefault, placed[0].Slot)
	assert.Equal(t, layer.Origin{Source: "file", SourcePath: path}, placed[0].Layer.Origin())
	assert.Equal(t, layer.Append, placed[0].Layer.Mode())

	defaultRules := placed[0].Layer.Rules()
	require.Len(t, defaultRules, 1)
	assert.Equal(t, target.Universal{}, defaultRules[0].Selector)
	assert.Equal(t, layer.FlagEntry{"--cfg=web_sys_unstable_apis", "-C", "link-arg=-s"}, defaultRules[0].Flags)
	assert.Equal(t, []layer.Suppression{
		{ID: "clippy::assigning_clones", Reason: "suggested form is less readable"},
		{ID: "unused_imports"},
	}, placed[0].Layer.Suppressions())

	assert.Equal(t, layer.SlotFileTarget, placed[1].Slot)
	webRules := placed[1].Layer.Rules()
	require.Len(t, webRules, 1)
	assert.Equal(t, target.AttributeEquals{Name: "platform", Value: "web"}, webRules[0].Selector)
	assert.Equal(t, []layer.Suppression{{ID: "dead_code", Reason: "wasm externs look unused"}},
		placed[1].Layer.Suppressions())

	assert.Equal(t, layer.SlotFileTarget, placed[2].Slot, "Target blocks keep order of appearance")
}

// TestFileLoader_JSONCDocument tests that the JSONC syntax yields the same
// layer shapes as YAML
func TestFileLoader_JSONCDocument(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "buildcfg.jsonc", jsoncFixture)

	loader := NewFileLoader(dir, "", target.DefaultRegistry())
	placed, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, placed, 2)

	assert.Equal(t, layer.SlotFileDefault, placed[0].Slot)
	assert.Equal(t, []layer.Suppression{{ID: "dead_code", Reason: "generated bindings"}},
		placed[0].Layer.Suppressions())
	assert.Equal(t, layer.SlotFileTarget, placed[1].Slot)
}

// TestFileLoader_MissingFileContributesNothing tests silent absence
func TestFileLoader_MissingFileContributesNothing(t *testing.T) {
	loader := NewFileLoader(t.TempDir(), "", target.DefaultRegistry())
	placed, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, placed)
}

// TestFileLoader_ExplicitPathMustExist tests that a user-supplied path is
// not silently skipped
func TestFileLoader_ExplicitPathMustExist(t *testing.T) {
	loader := NewFileLoader(t.TempDir(), "/nonexistent/buildcfg.yaml", target.DefaultRegistry())
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestFileLoader_LoadTimeErrors tests that every malformation is reported
// before resolution can run
func TestFileLoader_LoadTimeErrors(t *testing.T) {
	tests := []struct {
		name       string
		fileName   string
		contents   string
		wantSyntax bool
	}{
		{
			name:       "MalformedYAML",
			fileName:   "buildcfg.yaml",
			contents:   "build: [\n",
			wantSyntax: true,
		},
		{
			name:       "MalformedSelector",
			fileName:   "buildcfg.yaml",
			contents:   "targets:\n  - cfg: 'platform = \"web\"'\n    flags: [\"-A\"]\n",
			wantSyntax: true,
		},
		{
			name:       "EmptyFlagToken",
			fileName:   "buildcfg.yaml",
			contents:   "build:\n  flags: [\"\"]\n",
			wantSyntax: true,
		},
		{
			name:       "WhitespaceLintID",
			fileName:   "buildcfg.yaml",
			contents:   "lints:\n  allow:\n    - id: \"dead code\"\n",
			wantSyntax: true,
		},
		{
			name:     "UnknownSelectorAttribute",
			fileName: "buildcfg.yaml",
			contents: "targets:\n  - cfg: 'cfg(toolchain = \"nightly\")'\n    flags: [\"-A\"]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.fileName, tt.contents)

			loader := NewFileLoader(dir, "", target.DefaultRegistry())
			_, err := loader.Load(context.Background())
			require.Error(t, err)

			if tt.wantSyntax {
				var syntaxErr *SyntaxError
				assert.ErrorAs(t, err, &syntaxErr)
			} else {
				var unknownErr *target.UnknownAttributeError
				assert.ErrorAs(t, err, &unknownErr)
			}
		})
	}
}

// TestFileLoader_DiscoveryOrder tests that YAML wins over JSON when both are
// present
func TestFileLoader_DiscoveryOrder(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeConfig(t, dir, "buildcfg.yaml", "build:\n  flags: [\"-A\"]\n")
	writeConfig(t, dir, "buildcfg.json", `{"build": {"flags": ["-B"]}}`)

	loader := NewFileLoader(dir, "", target.DefaultRegistry())
	path, ok := loader.ConfigPath()
	require.True(t, ok)
	assert.Equal(t, yamlPath, path)
}
