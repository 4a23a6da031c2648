package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kernelmeta/gencontrol/internal/config"
	"github.com/kernelmeta/gencontrol/internal/defines"
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
	"github.com/kernelmeta/gencontrol/internal/generate"
	"github.com/kernelmeta/gencontrol/internal/output"
	"github.com/kernelmeta/gencontrol/internal/rules"
	"github.com/kernelmeta/gencontrol/internal/templates"
	"github.com/kernelmeta/gencontrol/internal/version"
)

// RunOpts holds the inputs for Generate.
type RunOpts struct {
	// Args from the cobra command (first arg is the source tree).
	Args []string
	// Flags are the source flags of the command.
	Flags SourceFlags
	// Command is used to tell set flags from defaults. May be nil.
	Command *cobra.Command
	// Config holds the root flags.
	Config *GlobalConfig
}

// RunResult is a finished generation together with the settings it used.
type RunResult struct {
	// Root is the source tree.
	Root string
	// OutputDir is the packaging directory files are written to.
	OutputDir string
	// Config is the loaded tool configuration with defaults applied.
	Config *config.Config
	// Result is the generation outcome.
	Result *generate.Result
}

// Generate executes the preamble shared by generate, list and diff: it
// loads and resolves the tool configuration, reads the defines, templates
// and changelog, and runs the generator.
//
// On failure it returns an *ExitError with the appropriate exit code and
// Printed set.
func Generate(opts RunOpts) (*RunResult, error) {
	if opts.Config == nil {
		return nil, &gerrors.ExitError{Code: gerrors.ExitGeneralError, Err: fmt.Errorf("configuration not loaded")}
	}
	root := ResolveRoot(opts.Args)

	res, err := generateIn(root, opts)
	if err != nil {
		PrintError("generation failed", err)
		return nil, &gerrors.ExitError{Code: gerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}
	return res, nil
}

func generateIn(root string, opts RunOpts) (*RunResult, error) {
	cfgPath := config.ResolveConfigPath(root, opts.Config.ConfigFlag)
	loader := config.NewLoader()
	cfg, err := loader.LoadWithDefaults(cfgPath.Value)
	if err != nil {
		return nil, gerrors.NewValidationError(err.Error(), cfgPath.Value, "", "")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	flags := opts.Flags.flagValues(opts.Command)
	resolved := []config.ResolvedValue{cfgPath}
	settings := make(map[string]string)
	for _, key := range []string{"defines", "templates", "changelog", "strict", "output"} {
		fv := flags[key]
		rv := loader.Resolve(key, fv.value, fv.set)
		resolved = append(resolved, rv)
		settings[key] = rv.Value
	}
	config.LogResolvedValues(resolved)

	strict, err := strconv.ParseBool(settings["strict"])
	if err != nil {
		return nil, gerrors.NewValidationError(fmt.Sprintf("strict must be a boolean, got %q", settings["strict"]),
			cfgPath.Value, "strict", "")
	}

	paths := make(map[string]string)
	for _, key := range []string{"defines", "templates", "changelog", "output"} {
		p, err := config.InRoot(root, settings[key])
		if err != nil {
			return nil, fmt.Errorf("resolving %s path: %w", key, err)
		}
		paths[key] = p
	}

	store, err := defines.Load(paths["defines"])
	if err != nil {
		return nil, err
	}

	catalog, err := templates.Open(paths["templates"])
	if err != nil {
		return nil, err
	}
	if err := templates.ValidationError(templates.Validate(catalog)); err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	changelog, err := readChangelog(paths["changelog"])
	if err != nil {
		return nil, err
	}

	linker := rules.NewLinker(afero.NewBasePathFs(afero.NewOsFs(), root))
	linker.Prefixes = cfg.Prefixes(rules.DefaultPrefixes())
	linker.FlavourKinds = cfg.Links.Flavour
	linker.ExtraKinds = cfg.Links.Extra
	if out := settings["output"]; out != "" && !filepath.IsAbs(out) {
		linker.BaseDir = filepath.Clean(out)
	}

	output.Debug("generating",
		"root", root,
		"defines", paths["defines"],
		"changelog", changelog.Version,
		"strict", strict,
	)
	result, err := generate.New(store, catalog, linker, changelog, generate.Options{Strict: strict}).Run()
	if err != nil {
		return nil, err
	}

	return &RunResult{
		Root:      root,
		OutputDir: paths["output"],
		Config:    cfg,
		Result:    result,
	}, nil
}

func readChangelog(path string) (version.Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return version.Changelog{}, gerrors.NewNotFoundError("changelog does not exist", path,
				"pass --changelog or set changelog in gencontrol.yaml")
		}
		return version.Changelog{}, fmt.Errorf("opening changelog: %w", err)
	}
	defer f.Close()

	c, err := version.ParseChangelog(f)
	if err != nil {
		return version.Changelog{}, fmt.Errorf("changelog %s: %w", path, err)
	}
	return c, nil
}
