package core

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"pnc-buildconfig/internal/ports"
	"pnc-buildconfig/internal/shared"
	"pnc-buildconfig/internal/store"
	"pnc-buildconfig/internal/types"
)

// ConfigReader turns the sections of a build configuration into per
// artifact build specifications. It is fully validated on construction
// and immutable afterwards.
type ConfigReader struct {
	path           string
	dir            string
	defaults       types.ConfigDefaults
	store          *store.Store
	commits        ports.CommitResolverPort
	pomManipulator types.PomManipulatorConfig
	packages       map[string]types.ArtifactSpec
	order          []string
}

// NewConfigReader reads every artifact section of st, which was loaded from
// path. commits is only consulted for artifacts that ask for the config
// file commit and may be nil otherwise.
func NewConfigReader(ctx context.Context, path string, st *store.Store, defaults types.ConfigDefaults, commits ports.CommitResolverPort) (*ConfigReader, error) {
	r := &ConfigReader{
		path:     path,
		dir:      configDir(path),
		defaults: defaults,
		store:    st,
		commits:  commits,
		pomManipulator: types.PomManipulatorConfig{
			Values: map[types.PomOverride]string{},
		},
		packages: map[string]types.ArtifactSpec{},
	}
	if err := r.read(ctx); err != nil {
		return nil, err
	}
	if err := r.check(ctx); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Int("artifacts", len(r.order)).Msg("build configuration read")
	return r, nil
}

func (r *ConfigReader) read(ctx context.Context) error {
	if pomManipulatorConfigured(r.defaults.PomManipulatorExt) {
		cfg, err := ParsePomManipulator(ctx, r.store, strings.TrimSpace(r.defaults.PomManipulatorExt))
		if err != nil {
			return err
		}
		r.pomManipulator = cfg
	}

	log.Ctx(ctx).Info().Str("file", filepath.Base(r.path)).Str("path", r.dir).Msg("reading build configuration")

	for _, section := range r.store.Sections() {
		if r.pomManipulator.Section != "" && section == r.pomManipulator.Section {
			continue
		}
		sectionType, err := r.sectionType(section)
		if err != nil {
			return err
		}
		if sectionType == types.SectionTypeWrapper {
			log.Ctx(ctx).Warn().Str("section", section).Msg("skipping section, wrappers are unsupported")
			continue
		}
		spec, err := r.readSection(ctx, section, sectionType)
		if err != nil {
			return err
		}
		r.packages[section] = spec
		r.order = append(r.order, section)
	}
	return nil
}

// check resolves every artifact once so that deferred errors surface at
// construction rather than on first use.
func (r *ConfigReader) check(ctx context.Context) error {
	tasks := r.Tasks()
	for _, task := range tasks.All() {
		cfg, err := r.Config(task.Name)
		if err != nil {
			return err
		}
		assert.NotEmpty(ctx, cfg.ScmURL, "scm url must be resolved for "+task.Name)
		if _, err := task.OrderedDependencies(); err != nil {
			return err
		}
	}
	return nil
}

func (r *ConfigReader) sectionType(section string) (types.SectionType, error) {
	if !r.store.HasSection(section) {
		return types.SectionTypeMaven, nil
	}
	value, ok, err := r.store.Lookup(section, "type")
	if err != nil {
		return "", err
	}
	if !ok {
		return types.SectionTypeMaven, nil
	}
	return types.SectionType(value), nil
}

func (r *ConfigReader) readSection(ctx context.Context, section string, sectionType types.SectionType) (types.ArtifactSpec, error) {
	if !strings.Contains(section, "-") {
		return types.ArtifactSpec{}, types.NewConfigError(types.ErrInvalidArtifactName, section, "",
			"no group id separator '-' in section name")
	}
	spec := types.ArtifactSpec{Artifact: section, Type: sectionType}

	if raw, ok, err := r.store.Lookup(section, "buildrequires"); err != nil {
		return types.ArtifactSpec{}, err
	} else if ok {
		for _, dep := range splitOrderedSet(raw) {
			depType, err := r.sectionType(dep)
			if err != nil {
				return types.ArtifactSpec{}, err
			}
			if depType == types.SectionTypeWrapper {
				continue
			}
			spec.BuildRequires = append(spec.BuildRequires, dep)
		}
	}

	scmURL, ok, err := r.store.Lookup(section, "scmurl")
	if err != nil {
		return types.ArtifactSpec{}, err
	}
	if !ok || strings.TrimSpace(scmURL) == "" {
		return types.ArtifactSpec{}, types.NewConfigError(types.ErrMissingRequiredOption, section, "scmurl",
			"every artifact needs a source location")
	}
	spec.ScmURL = scmURL

	for _, field := range []optionalString{
		{option: "pnc.buildScript", target: &spec.PncBuildScript},
		{option: "pnc.projectName", target: &spec.PncProjectName},
		{option: "skiptests", target: &spec.SkipTests},
		{option: "downstreamjobs", target: &spec.DownstreamJobs},
	} {
		if err := readOptional(r.store, section, field); err != nil {
			return types.ArtifactSpec{}, err
		}
	}

	options, err := r.readOptions(ctx, section)
	if err != nil {
		return types.ArtifactSpec{}, err
	}
	spec.Options = options
	return spec, nil
}

func (r *ConfigReader) readOptions(ctx context.Context, section string) (types.BuildOptions, error) {
	var options types.BuildOptions
	get := func(option string) (string, bool, error) {
		return r.store.Lookup(section, option)
	}

	if raw, ok, err := get("envs"); err != nil {
		return options, err
	} else if ok {
		options.Envs = quoteValues(parseKeyValues(ctx, section, "envs", raw))
	}
	options.Scratch = r.store.HasOption(section, "scratch")
	options.Errors = r.store.HasOption(section, "errors")

	for _, field := range []listOption{
		{option: "packages", target: &options.Packages},
		{option: "goals", target: &options.Goals},
		{option: "jvm_options", target: &options.JVMOptions},
		{option: "maven_options", target: &options.MavenOptions},
		{option: "profiles", target: &options.Profiles},
	} {
		raw, ok, err := get(field.option)
		if err != nil {
			return options, err
		}
		if ok {
			if fields := splitFields(raw); len(fields) > 0 {
				*field.target = fields
			}
		}
	}
	if r.store.HasOption(section, "debug") || r.defaults.DebugBuild {
		options.MavenOptions = append(options.MavenOptions, "--debug")
	}

	for _, field := range []optionalString{
		{option: "patches", target: &options.Patches},
		{option: "defaultRepoGroup", target: &options.DefaultRepoGroup},
	} {
		if err := readOptional(r.store, section, field); err != nil {
			return options, err
		}
	}

	if raw, ok, err := get("properties"); err != nil {
		return options, err
	} else if ok {
		properties := parseKeyValues(ctx, section, "properties", raw)
		if sha, present := properties[types.PropertyConfigSHA]; present && sha == "" {
			commit, err := r.resolveConfigCommit(ctx)
			if err != nil {
				return options, err
			}
			log.Ctx(ctx).Debug().Str("section", section).Str("sha", commit).Msg("ip.config.sha updated")
			properties[types.PropertyConfigSHA] = commit
		}
		options.Properties = quoteValues(properties)
	}
	return options, nil
}

type optionalString struct {
	option string
	target **string
}

type listOption struct {
	option string
	target *[]string
}

func readOptional(st *store.Store, section string, field optionalString) error {
	value, ok, err := st.Lookup(section, field.option)
	if err != nil {
		return err
	}
	if ok {
		*field.target = shared.StringPtr(value)
	}
	return nil
}

func (r *ConfigReader) resolveConfigCommit(ctx context.Context) (string, error) {
	if r.commits == nil {
		return "", types.NewConfigError(types.ErrMissingRequiredOption, "", types.PropertyConfigSHA,
			"no source control resolver configured")
	}
	return r.commits.ResolveCommitID(ctx, r.dir, filepath.Base(r.path))
}

// Config returns the merged configuration of artifact. With an empty name
// only the global pom manipulator overrides and process defaults are
// returned.
func (r *ConfigReader) Config(artifact string) (types.ResolvedConfig, error) {
	var spec types.ArtifactSpec
	if artifact != "" {
		found, ok := r.packages[artifact]
		if !ok {
			return types.ResolvedConfig{}, types.NewConfigError(types.ErrUnknownArtifact, artifact, "",
				"artifact is not configured")
		}
		spec = found.Clone()
	}

	cfg := types.ResolvedConfig{
		ArtifactSpec: spec,
		Overrides:    maps.Clone(r.pomManipulator.Values),
	}
	if cfg.Overrides == nil {
		cfg.Overrides = map[types.PomOverride]string{}
	}
	applyDefaults(&cfg, r.defaults)
	if artifact == "" {
		return cfg, nil
	}
	mirrorOverrides(&cfg)
	return cfg, nil
}

// applyDefaults overlays the process defaults. It only ever switches
// flags on.
func applyDefaults(cfg *types.ResolvedConfig, defaults types.ConfigDefaults) {
	if defaults.Force {
		cfg.Force = true
	}
	if pomManipulatorConfigured(defaults.PomManipulatorExt) {
		cfg.PomManipulatorExt = strings.TrimSpace(defaults.PomManipulatorExt)
	}
	if cfg.Artifact == "" {
		return
	}
	if defaults.Scratch {
		cfg.Options.Scratch = true
	}
	if defaults.DebugBuild {
		cfg.Options.Debug = true
	}
	if defaults.ErrorsBuild {
		cfg.Options.Errors = true
	}
}

// mirrorOverrides keeps the pom manipulator overrides and their artifact
// property counterparts in sync: a property replaces the global value, and
// every override ends up as a property. Artifacts that set
// manipulation.disable are left untouched.
func mirrorOverrides(cfg *types.ResolvedConfig) {
	if cfg.Options.Properties == nil {
		cfg.Options.Properties = map[string]string{}
	}
	properties := cfg.Options.Properties
	if _, disabled := properties[types.PropertyDisableManipulation]; disabled {
		return
	}
	for _, key := range types.PomOverrides {
		if value, ok := properties[key.PropertyName()]; ok {
			cfg.Overrides[key] = unquote(value)
		}
	}
	for _, key := range types.PomOverrides {
		if value, ok := cfg.Overrides[key]; ok {
			properties[key.PropertyName()] = shared.Quote(value)
		}
	}
}

// Configs resolves several artifacts at once.
func (r *ConfigReader) Configs(artifacts []string) (map[string]types.ResolvedConfig, error) {
	out := make(map[string]types.ResolvedConfig, len(artifacts))
	for _, artifact := range artifacts {
		cfg, err := r.Config(artifact)
		if err != nil {
			return nil, err
		}
		out[artifact] = cfg
	}
	return out, nil
}

// Artifacts lists the configured artifacts in file order.
func (r *ConfigReader) Artifacts() []string {
	return append([]string(nil), r.order...)
}

// PackagesAndDependencies maps every artifact to its direct build
// requirements.
func (r *ConfigReader) PackagesAndDependencies() map[string][]string {
	out := make(map[string][]string, len(r.order))
	for _, name := range r.order {
		out[name] = append([]string{}, r.packages[name].BuildRequires...)
	}
	return out
}

// Tasks builds the dependency graph of the configured artifacts.
func (r *ConfigReader) Tasks() *Tasks {
	tasks := NewTasks()
	for _, name := range r.order {
		tasks.Add(name, r.packages[name].BuildRequires)
	}
	return tasks
}

// DependencyStructure returns artifact names and, per name, its
// dependencies in build order. With an artifact only that artifact is
// described, plus each of its dependencies when includeDependencies is
// set; otherwise the whole graph is.
func (r *ConfigReader) DependencyStructure(artifact string, includeDependencies bool) (types.DependencyStructure, error) {
	out := types.DependencyStructure{Dependencies: map[string][]string{}}
	tasks := r.Tasks()

	if artifact == "" {
		for _, task := range tasks.All() {
			names, err := task.OrderedDependencyNames()
			if err != nil {
				return types.DependencyStructure{}, err
			}
			out.Artifacts = append(out.Artifacts, task.Name)
			out.Dependencies[task.Name] = names
		}
		return out, nil
	}

	task, err := tasks.Task(artifact)
	if err != nil {
		return types.DependencyStructure{}, err
	}
	deps, err := task.OrderedDependencies()
	if err != nil {
		return types.DependencyStructure{}, err
	}
	out.Artifacts = append(out.Artifacts, task.Name)
	out.Dependencies[task.Name] = taskNames(deps)
	if includeDependencies {
		for _, dep := range deps {
			names, err := dep.OrderedDependencyNames()
			if err != nil {
				return types.DependencyStructure{}, err
			}
			out.Artifacts = append(out.Artifacts, dep.Name)
			out.Dependencies[dep.Name] = names
		}
	}
	return out, nil
}

// BuildPlan orders the given artifacts, or all of them, together with
// their transitive dependencies so that each entry follows everything it
// requires.
func (r *ConfigReader) BuildPlan(ctx context.Context, artifacts ...string) (types.BuildPlan, error) {
	order, err := r.Tasks().BuildOrder(artifacts...)
	if err != nil {
		return types.BuildPlan{}, err
	}
	plan := types.BuildPlan{
		ConfigName: r.ConfigName(),
		ConfigDir:  r.ConfigDir(),
		Order:      order,
	}
	for _, name := range order {
		cfg, err := r.Config(name)
		if err != nil {
			return types.BuildPlan{}, err
		}
		plan.Entries = append(plan.Entries, types.BuildPlanEntry{
			Artifact:     name,
			ScmURL:       cfg.ScmURL,
			Dependencies: cfg.BuildRequires,
			Config:       cfg.ToMap(),
		})
	}
	log.Ctx(ctx).Debug().Int("entries", len(plan.Entries)).Msg("build plan assembled")
	return plan, nil
}

// AllScmURLs maps artifacts to their source location, leaving out shared
// "common" and BOM builder metadata sections.
func (r *ConfigReader) AllScmURLs() map[string]string {
	out := map[string]string{}
	for _, name := range r.order {
		spec := r.packages[name]
		if name == string(types.SectionTypeCommon) ||
			spec.Type == types.SectionTypeCommon ||
			spec.Type == types.SectionTypeBomBuilderMeta {
			continue
		}
		if spec.ScmURL != "" {
			out[name] = spec.ScmURL
		}
	}
	return out
}

// IsPackageConfigured reports whether every comma separated name is a
// configured artifact.
func (r *ConfigReader) IsPackageConfigured(names string) bool {
	for _, name := range strings.Split(names, ",") {
		if _, ok := r.packages[name]; !ok {
			return false
		}
	}
	return true
}

// ConfigDir is the directory holding the configuration file.
func (r *ConfigReader) ConfigDir() string {
	return r.dir
}

// ConfigName is the configuration file name without extension.
func (r *ConfigReader) ConfigName() string {
	base := filepath.Base(r.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func configDir(path string) string {
	dir := filepath.Dir(path)
	if dir != "." {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return dir
}
