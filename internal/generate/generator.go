// Package generate drives a generation run: one setup pass, one pass per
// declared variant, and one pass for the extra packages. Each pass feeds the
// manifest, the make rules and the side-file accumulator.
package generate

import (
	"fmt"

	"github.com/kernelmeta/gencontrol/internal/control"
	"github.com/kernelmeta/gencontrol/internal/defines"
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
	"github.com/kernelmeta/gencontrol/internal/output"
	"github.com/kernelmeta/gencontrol/internal/rules"
	"github.com/kernelmeta/gencontrol/internal/templates"
	"github.com/kernelmeta/gencontrol/internal/vars"
	"github.com/kernelmeta/gencontrol/internal/version"
)

// SourceLintianOverrides collects one override per debug image package.
const SourceLintianOverrides = "source.lintian-overrides"

// Catalog supplies control and text templates by name.
type Catalog interface {
	Entries(name string) ([]*control.Entry, error)
	Text(name string) (string, error)
}

// Options tune a run.
type Options struct {
	// Strict fails on packages that differ between architectures instead
	// of keeping the first-seen fields.
	Strict bool
}

// Generator sequences the passes of one run. It is single use.
type Generator struct {
	store     *defines.Store
	catalog   Catalog
	linker    *rules.Linker
	changelog version.Changelog
	opts      Options

	phase Phase
	err   error

	linux          version.Linux
	abiname        string
	packageVersion string
	vars           vars.Context
	flags          rules.MakeFlags

	manifest *control.Manifest
	makefile *rules.Makefile
	files    *SideFiles
	variants []Variant
}

// New creates a generator.
func New(store *defines.Store, catalog Catalog, linker *rules.Linker, changelog version.Changelog, opts Options) *Generator {
	return &Generator{
		store:     store,
		catalog:   catalog,
		linker:    linker,
		changelog: changelog,
		opts:      opts,
		makefile:  rules.NewMakefile(),
		files:     NewSideFiles(),
	}
}

// Phase returns the phase the generator is in.
func (g *Generator) Phase() Phase {
	return g.phase
}

// Run executes every pass and returns the result. A failing pass aborts the
// run; nothing is written.
func (g *Generator) Run() (*Result, error) {
	if err := g.Setup(); err != nil {
		return nil, err
	}

	variants, err := Variants(g.store)
	if err != nil {
		g.err = err
		return nil, err
	}
	for _, v := range variants {
		if err := g.Variant(v); err != nil {
			return nil, err
		}
	}

	if err := g.Extra(); err != nil {
		return nil, err
	}
	return g.Finish()
}

// enter moves to phase to, refusing illegal transitions and runs that
// already failed.
func (g *Generator) enter(to Phase) error {
	if g.err != nil {
		return fmt.Errorf("generation aborted: %w", g.err)
	}
	if !CanTransition(g.phase, to) {
		return transitionError(g.phase, to)
	}
	g.phase = to
	return nil
}

// fail records err so later passes refuse to run.
func (g *Generator) fail(err error) error {
	g.err = err
	return err
}

// Setup reads the version, resets the side files and emits the source
// stanza, the main packages and the indep rules.
func (g *Generator) Setup() error {
	if err := g.enter(PhaseSetup); err != nil {
		return err
	}
	if err := g.setup(); err != nil {
		return g.fail(fmt.Errorf("setup: %w", err))
	}
	return nil
}

func (g *Generator) setup() error {
	log := output.PhaseLogger(PhaseSetup.String())

	versionSection := g.store.Section("version", defines.Dims{})
	source, err := versionSection.Require("version", "source")
	if err != nil {
		return err
	}
	g.abiname, err = versionSection.Require("version", "abiname")
	if err != nil {
		return err
	}
	g.linux, err = version.ParseLinux(source)
	if err != nil {
		return err
	}
	if g.changelog.Version == "" {
		return gerrors.NewValidationError("changelog version is empty", "", "", "")
	}
	g.packageVersion = version.PackageVersion(g.linux, g.changelog.Version)
	log.Debug("resolved versions", "source", source, "abiname", g.abiname, "package", g.packageVersion)

	g.vars = vars.Context{
		"upstreamversion": g.linux.LinuxUpstream,
		"version":         g.linux.Version,
		"source_upstream": g.linux.Upstream,
		"abiname":         g.abiname,
	}
	g.flags = rules.MakeFlags{"GENCONTROL_ARGS": "-v" + g.packageVersion}

	g.manifest = control.NewManifest(
		control.WithStrict(g.opts.Strict),
		control.WithConflictHook(func(c control.Conflict) {
			output.Warn("package differs between architectures, keeping first value",
				"package", c.Package, "field", c.Field, "arch", c.Arch)
		}),
	)

	g.files.Reset(SourceLintianOverrides)

	for _, target := range []string{"build-indep", "binary-indep"} {
		cmd, err := rules.Invoke(target, g.flags)
		if err != nil {
			return err
		}
		g.makefile.Add(target, nil, []string{cmd})
	}

	src, err := g.sourceStanza()
	if err != nil {
		return err
	}
	g.manifest.SetSource(src)

	for _, name := range []string{templates.SourceLatest, templates.DocLatest, templates.ToolsLatest} {
		pkgs, err := g.expandAll(name, g.vars)
		if err != nil {
			return err
		}
		g.manifest.Extend(pkgs...)
	}
	log.Debug("main packages", "count", g.manifest.Len())
	return nil
}

func (g *Generator) sourceStanza() (*control.Entry, error) {
	entries, err := g.catalog.Entries(templates.Source)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, gerrors.NewValidationError("source template has no entry", templates.Source, "", "")
	}
	src, err := control.Expand(templates.RoleOf(templates.Source), entries[0], g.vars)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", templates.Source, err)
	}
	if g.changelog.Source != "" {
		src.Set(control.FieldSource, control.String(g.changelog.Source))
	}

	extra := []string{
		"linux-support-" + g.abiname,
		// Keeps linux-latest behind linux after an ABI bump.
		"linux-headers-" + g.abiname + "-all",
	}
	deps, ok := src.Get(control.FieldBuildDepends)
	switch {
	case !ok:
		src.Set(control.FieldBuildDepends, control.List(extra...))
	case deps.Kind == control.KindList:
		src.Set(control.FieldBuildDepends, control.List(append(deps.List, extra...)...))
	default:
		return nil, gerrors.NewValidationError("Build-Depends must be a list", templates.Source, control.FieldBuildDepends, "")
	}
	return src.Entry, nil
}

// expandAll expands every entry of a control template.
func (g *Generator) expandAll(name string, ctx vars.Context) ([]*control.Package, error) {
	entries, err := g.catalog.Entries(name)
	if err != nil {
		return nil, err
	}
	role := templates.RoleOf(name)
	pkgs := make([]*control.Package, 0, len(entries))
	for _, e := range entries {
		pkg, err := control.Expand(role, e, ctx)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", name, err)
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// Variant runs the pass of one variant.
func (g *Generator) Variant(v Variant) error {
	if err := g.enter(PhaseVariant); err != nil {
		return err
	}
	if err := g.variant(v); err != nil {
		return g.fail(fmt.Errorf("variant %s: %w", v, err))
	}
	g.variants = append(g.variants, v)
	return nil
}

type roleEntry struct {
	role  string
	entry *control.Entry
}

func (g *Generator) variant(v Variant) error {
	log := output.VariantLogger(v.Arch, v.Featureset, v.Flavour)
	dims := v.Dims()

	ctx := g.vars.With("arch", v.Arch, "featureset", v.Featureset, "localversion", v.LocalVersion())
	flags := g.flags.Clone().
		Set("ARCH", v.Arch).
		Set("FEATURESET", v.Featureset).
		Set("FLAVOUR", v.Flavour).
		Set("LOCALVERSION", v.LocalVersion())

	// The per-arch abiname is the full ABI name, like version.abiname, and is
	// used verbatim. Templates append @localversion@ directly, so no dash is
	// inserted here.
	if !g.linux.HasModifier() {
		abiname := g.abiname
		if abi, ok := g.store.Lookup(defines.Key{Section: "abi", Arch: v.Arch}); ok {
			if s := abi.String("abiname"); s != "" {
				abiname = s
			}
		}
		ctx["abiname"] = abiname
		flags["ABINAME"] = abiname
	}

	description := g.store.Section("description", dims)
	class, err := description.Require("description", "hardware")
	if err != nil {
		return err
	}
	longclass := description.String("hardware-long")
	if longclass == "" {
		longclass = class
	}
	ctx["flavour"] = ctx["localversion"][1:]
	ctx["class"] = class
	ctx["longclass"] = longclass

	var tmpl []roleEntry
	for _, name := range []string{templates.ImageLatest, templates.HeadersLatest} {
		if err := g.collect(&tmpl, name); err != nil {
			return err
		}
	}

	if g.store.ResolveFlag("build", dims, "debug-info", false) {
		flags["DEBUG"] = "True"
		if err := g.collect(&tmpl, templates.ImageDbgLatest); err != nil {
			return err
		}
		r := templates.NewRenderer(g.catalog, ctx)
		dbgsym, err := r.Render(templates.LintianImageDbg)
		if err != nil {
			return err
		}
		g.files.Write("linux-image-"+ctx["flavour"]+"-dbgsym.lintian-overrides", dbgsym)
		src, err := r.Render(templates.LintianSource)
		if err != nil {
			return err
		}
		g.files.Append(SourceLintianOverrides, src)
	}

	parts, err := g.store.ResolveMerged("description", dims, "parts")
	if err != nil {
		return err
	}
	desc, err := control.ComposeDescription(parts, description)
	if err != nil {
		return err
	}
	if len(parts) > 0 && g.store.HasSection("xen", dims) {
		flags["XEN"] = "True"
		if err := g.collect(&tmpl, templates.XenLatest); err != nil {
			return err
		}
	}
	if len(tmpl) == 0 {
		return gerrors.NewValidationError("image template has no entry", templates.ImageLatest, "", "")
	}

	overlay := control.NewEntry(control.Field{Name: control.FieldDescription, Value: control.Desc(desc)})
	image, err := control.ExpandMerge(tmpl[0].role, tmpl[0].entry, overlay, ctx)
	if err != nil {
		return fmt.Errorf("expanding %s: %w", templates.ImageLatest, err)
	}
	pkgs := []*control.Package{image}
	for _, t := range tmpl[1:] {
		pkg, err := control.Expand(t.role, t.entry, ctx)
		if err != nil {
			return fmt.Errorf("expanding %s package: %w", t.role, err)
		}
		pkgs = append(pkgs, pkg)
	}

	for _, pkg := range pkgs {
		if err := g.manifest.Add(pkg, v.Arch); err != nil {
			return err
		}
	}

	target := rules.FlavourTarget(v.Arch, v.Featureset, v.Flavour)
	rule, err := rules.EmitFlavourRules(g.linker, target, pkgs, flags)
	if err != nil {
		return err
	}
	for _, r := range rules.VariantChain(v.Arch, v.Featureset, v.Flavour) {
		g.makefile.AddRule(r)
	}
	g.makefile.AddRule(rule)

	// The image meta-package points bug reporters at the real image.
	presubj, err := templates.NewRenderer(g.catalog, ctx).Render(templates.BugPresubjImage)
	if err != nil {
		return err
	}
	g.files.Write(image.Name()+".bug-presubj", presubj)

	log.Debug("variant done", "packages", len(pkgs), "rule", target)
	return nil
}

func (g *Generator) collect(dst *[]roleEntry, name string) error {
	entries, err := g.catalog.Entries(name)
	if err != nil {
		return err
	}
	role := templates.RoleOf(name)
	for _, e := range entries {
		*dst = append(*dst, roleEntry{role: role, entry: e})
	}
	return nil
}

// Extra appends the extra packages and emits their rules.
func (g *Generator) Extra() error {
	if err := g.enter(PhaseExtra); err != nil {
		return err
	}
	if err := g.extra(); err != nil {
		return g.fail(fmt.Errorf("extra: %w", err))
	}
	return nil
}

func (g *Generator) extra() error {
	pkgs, err := g.expandAll(templates.Extra, vars.Context{})
	if err != nil {
		return err
	}
	g.manifest.Extend(pkgs...)

	extraRules, err := rules.EmitExtraRules(g.linker, pkgs, g.packageVersion)
	if err != nil {
		return err
	}
	for _, r := range extraRules {
		g.makefile.AddRule(r)
	}
	output.PhaseLogger(PhaseExtra.String()).Debug("extra packages", "count", len(pkgs))
	return nil
}

// Finish closes the run and returns its result.
func (g *Generator) Finish() (*Result, error) {
	if err := g.enter(PhaseDone); err != nil {
		return nil, err
	}
	return &Result{
		Manifest:       g.manifest,
		Makefile:       g.makefile,
		Files:          g.files,
		Variants:       g.variants,
		PackageVersion: g.packageVersion,
	}, nil
}
