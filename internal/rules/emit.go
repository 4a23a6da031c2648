package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kernelmeta/gencontrol/internal/control"
)

// RulesReal is the static makefile the generated recipes delegate to.
const RulesReal = "debian/rules.real"

// FlavourTarget returns the per-variant rule name.
func FlavourTarget(arch, featureset, flavour string) string {
	return strings.Join([]string{"binary-arch", arch, featureset, flavour, "real"}, "_")
}

// VariantChain returns the dependency chain that reaches a variant's real
// rule from binary-arch: binary-arch -> _<arch> -> _<fs> -> _<flavour> -> _real.
func VariantChain(arch, featureset, flavour string) []Rule {
	levels := []string{"binary-arch", arch, featureset, flavour, "real"}
	chain := make([]Rule, 0, len(levels)-1)
	for i := 1; i < len(levels); i++ {
		name := strings.Join(levels[:i], "_")
		dep := strings.Join(levels[:i+1], "_")
		chain = append(chain, Rule{Name: name, Deps: []string{dep}})
	}
	return chain
}

// Invoke returns a recipe line calling target in rules.real with flags.
func Invoke(target string, flags MakeFlags) (string, error) {
	rendered, err := flags.Render()
	if err != nil {
		return "", err
	}
	cmd := "$(MAKE) -f " + RulesReal + " " + target
	if rendered != "" {
		cmd += " " + rendered
	}
	return cmd, nil
}

// EmitFlavourRules builds the real rule of one variant: links of the flavour
// kinds (NEWS by default) for every package built by the variant, then the
// install-flavour call.
func EmitFlavourRules(linker *Linker, target string, packages []*control.Package, flags MakeFlags) (Rule, error) {
	var cmds []string
	for _, pkg := range packages {
		links, err := linker.LinkCommands(pkg, linker.FlavourKinds)
		if err != nil {
			return Rule{}, fmt.Errorf("link commands for %s: %w", pkg.Name(), err)
		}
		cmds = append(cmds, links...)
	}

	install, err := Invoke("install-flavour", flags)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Name: target, Cmds: append(cmds, install)}, nil
}

// ExtraTarget returns the top-level target extras of arch hang off.
func ExtraTarget(arch string) string {
	if arch == control.ArchAll {
		return "binary-indep"
	}
	return "binary-arch_" + arch
}

// EmitExtraRules groups extras by architecture and emits, per group in
// sorted order, `<target>: <target>_extra` and the `<target>_extra` recipe
// that links maintainer files and installs each dummy package.
func EmitExtraRules(linker *Linker, extras []*control.Package, packageVersion string) ([]Rule, error) {
	groups := make(map[string][]*control.Package)
	for _, pkg := range extras {
		for _, arch := range pkg.Architectures() {
			groups[arch] = append(groups[arch], pkg)
		}
	}
	arches := make([]string, 0, len(groups))
	for arch := range groups {
		arches = append(arches, arch)
	}
	sort.Strings(arches)

	var out []Rule
	for _, arch := range arches {
		target := ExtraTarget(arch)

		var cmds []string
		for _, pkg := range groups[arch] {
			links, err := linker.LinkCommands(pkg, linker.ExtraKinds)
			if err != nil {
				return nil, fmt.Errorf("link commands for %s: %w", pkg.Name(), err)
			}
			cmds = append(cmds, links...)

			version := "-v" + packageVersion
			if pkg.Has(control.FieldVersionOverwriteEpoch) {
				version = "-v1:" + packageVersion
			}
			flags := MakeFlags{
				"DH_OPTIONS":      "-p" + pkg.Name(),
				"GENCONTROL_ARGS": version,
			}
			if arch != control.ArchAll {
				flags["ARCH"] = arch
			}
			install, err := Invoke("install-dummy", flags)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, install)
		}

		out = append(out,
			Rule{Name: target, Deps: []string{target + "_extra"}},
			Rule{Name: target + "_extra", Cmds: cmds},
		)
	}
	return out, nil
}
