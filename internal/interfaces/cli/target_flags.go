package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"buildcfg.dev/cli/internal/core/target"
)

// TargetFlags binds the target-descriptor flags shared by every command that
// resolves configuration for a concrete target.
type TargetFlags struct {
	Platform string
	Arch     string
	OS       string
	Family   string
	Attrs    []string
}

// Register adds the target flags to a flag set.
func (f *TargetFlags) Register(flags *pflag.FlagSet) {
	flags.StringVar(&f.Platform, "platform", "native", "Target platform attribute (e.g. native, web)")
	flags.StringVar(&f.Arch, "arch", "", "Target architecture attribute (e.g. x86_64, wasm32)")
	flags.StringVar(&f.OS, "os", "", "Target operating system attribute")
	flags.StringVar(&f.Family, "family", "", "Target family attribute")
	flags.StringArrayVar(&f.Attrs, "attr", nil, "Extra target attribute as key=value (repeatable)")
}

// Target builds the concrete target descriptor. Extra attribute names are
// registered so selectors referencing them validate.
func (f *TargetFlags) Target(registry *target.Registry) (target.Target, error) {
	attrs := make(map[string]string)
	for name, value := range map[string]string{
		"platform": f.Platform,
		"arch":     f.Arch,
		"os":       f.OS,
		"family":   f.Family,
	} {
		if value != "" {
			attrs[name] = value
		}
	}

	for _, raw := range f.Attrs {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return target.Target{}, fmt.Errorf("invalid --attr %q: expected key=value", raw)
		}
		registry.Register(name)
		attrs[name] = value
	}

	return target.New(attrs), nil
}
