package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/namewta/forge/internal/errs"
	"github.com/namewta/forge/internal/logging"
	"github.com/namewta/forge/internal/manifest"
	"github.com/namewta/forge/internal/naming"
	"github.com/namewta/forge/internal/workspace"
	"github.com/sirupsen/logrus"
)

// Defaults applied when an option is left empty.
const (
	DefaultTemplateDir   = "apps/template-plugin"
	DefaultAppsDir       = "apps"
	DefaultAuthor        = "namewta"
	DefaultAuthorURL     = "https://github.com/NAMEWTA"
	DefaultVersion       = "0.0.1"
	DefaultMinAppVersion = "1.5.0"
)

const (
	manifestFile  = "manifest.json"
	packageFile   = "package.json"
	versionsFile  = "versions.json"
	readmeFile    = "README.md"
	changelogFile = "CHANGELOG.md"
)

// Options configures a scaffold run. TemplateDir and AppsDir are relative
// to the repository root unless absolute.
type Options struct {
	PluginName    string
	TemplateDir   string
	AppsDir       string
	DisplayName   string
	Description   string
	Author        string
	AuthorURL     string
	MinAppVersion string
	DryRun        bool

	// Starts are the directories searched for the repository root.
	// Defaults to the working directory and the executable's directory.
	Starts []string
	// Now supplies the date stamped into generated docs. Defaults to time.Now.
	Now    func() time.Time
	Logger logrus.FieldLogger
}

// Plan is the fully resolved scaffold, computed before anything is written.
type Plan struct {
	Root        string
	TemplateDir string
	AppsDir     string
	TargetDir   string

	PluginName      string
	DisplayName     string
	Description     string
	Author          string
	AuthorURL       string
	MinAppVersion   string
	Version         string
	ClassName       string
	ComponentPrefix string
	Date            string

	Warnings []string

	log logrus.FieldLogger
}

// Result holds the outcome of a scaffold run.
type Result struct {
	Root      string
	TargetDir string
	Files     []string // Written files, relative to Root
	Warnings  []string
}

// Run prepares and, unless DryRun is set, executes a scaffold. A dry run
// returns the plan and a nil result.
func Run(opts Options) (*Plan, *Result, error) {
	plan, err := Prepare(opts)
	if err != nil {
		return nil, nil, err
	}
	if opts.DryRun {
		return plan, nil, nil
	}
	result, err := Execute(plan)
	if err != nil {
		return plan, nil, err
	}
	return plan, result, nil
}

// Prepare validates the inputs, locates the repository and resolves every
// derived value. It never writes to disk.
func Prepare(opts Options) (*Plan, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	name := strings.TrimSpace(opts.PluginName)
	if err := naming.ValidatePluginName(name); err != nil {
		return nil, err
	}

	starts := opts.Starts
	if len(starts) == 0 {
		starts = workspace.DefaultStarts()
	}
	root, err := workspace.FindRepoRoot(starts...)
	if err != nil {
		return nil, err
	}
	log.WithField("root", root).Debug("found repository root")

	templateDir := resolve(root, orDefault(opts.TemplateDir, DefaultTemplateDir))
	appsDir := resolve(root, orDefault(opts.AppsDir, DefaultAppsDir))
	targetDir := filepath.Join(appsDir, name)

	if err := preflight(templateDir, appsDir, targetDir); err != nil {
		return nil, err
	}

	templateManifest, err := manifest.Load(filepath.Join(templateDir, manifestFile))
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(opts.DisplayName)
	if displayName == "" {
		displayName = naming.TitleCase(name)
	}

	description := strings.TrimSpace(opts.Description)
	if description == "" {
		description = fmt.Sprintf("%s Obsidian plugin built with pnpm + turbo monorepo, React 19 and Ant Design.", displayName)
	}

	plan := &Plan{
		Root:        root,
		TemplateDir: templateDir,
		AppsDir:     appsDir,
		TargetDir:   targetDir,
		PluginName:  name,
		DisplayName: displayName,
		Description: description,
		Author:      orDefault(opts.Author, DefaultAuthor),
		AuthorURL:   orDefault(opts.AuthorURL, DefaultAuthorURL),
		Version:     DefaultVersion,
		log:         log,
	}

	templateMin, hasTemplateMin := templateManifest.String("minAppVersion")
	switch {
	case opts.MinAppVersion != "":
		if _, err := manifest.ParseVersion(opts.MinAppVersion); err != nil {
			return nil, errs.Wrap(errs.PreflightFailed, "invalid --min-app-version", err)
		}
		plan.MinAppVersion = opts.MinAppVersion
		if hasTemplateMin {
			if cmp, err := manifest.CompareVersions(opts.MinAppVersion, templateMin); err == nil && cmp < 0 {
				plan.Warnings = append(plan.Warnings, fmt.Sprintf(
					"minAppVersion %s is lower than the template's %s", opts.MinAppVersion, templateMin))
			}
		}
	case hasTemplateMin:
		plan.MinAppVersion = templateMin
	default:
		plan.MinAppVersion = DefaultMinAppVersion
	}

	plan.ClassName = naming.PluginClassName(name)
	plan.ComponentPrefix = naming.ComponentPrefix(plan.ClassName)

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	plan.Date = now().Format("2006-01-02")

	plan.Warnings = append(plan.Warnings, workspaceWarnings(root, targetDir)...)

	return plan, nil
}

// preflight checks every precondition before anything is copied.
func preflight(templateDir, appsDir, targetDir string) error {
	info, err := os.Stat(templateDir)
	if err != nil || !info.IsDir() {
		return errs.Newf(errs.PreflightFailed, "template directory not found: %s", templateDir)
	}
	for _, f := range []string{manifestFile, packageFile} {
		if _, err := os.Stat(filepath.Join(templateDir, f)); err != nil {
			return errs.Newf(errs.PreflightFailed, "template directory is incomplete (missing %s): %s", f, templateDir)
		}
	}

	info, err = os.Stat(appsDir)
	if err != nil || !info.IsDir() {
		return errs.Newf(errs.PreflightFailed, "apps directory not found: %s", appsDir)
	}

	if _, err := os.Lstat(targetDir); err == nil {
		return errs.Newf(errs.TargetExists, "target already exists: %s", targetDir)
	}

	if within(templateDir, targetDir) {
		return errs.Newf(errs.PreflightFailed, "target %s is inside the template directory %s", targetDir, templateDir)
	}

	return nil
}

// workspaceWarnings reports when the new app would not be picked up by the
// pnpm workspace globs.
func workspaceWarnings(root, targetDir string) []string {
	ws, err := workspace.LoadWorkspace(root)
	if err != nil {
		return []string{fmt.Sprintf("could not check %s: %v", workspace.WorkspaceMarker, err)}
	}
	rel, err := filepath.Rel(root, targetDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return []string{fmt.Sprintf("%s is outside the repository root", targetDir)}
	}
	if !ws.Covers(rel) {
		return []string{fmt.Sprintf("%s is not matched by any package glob in %s", filepath.ToSlash(rel), workspace.WorkspaceMarker)}
	}
	return nil
}

// Execute assembles the new app in a staging directory, then renames it
// onto the target. On failure the staging directory is removed.
func Execute(plan *Plan) (*Result, error) {
	if plan.log == nil {
		plan.log = logging.Discard()
	}
	log := plan.log

	staging, err := os.MkdirTemp(plan.AppsDir, "."+plan.PluginName+"-staging-")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			os.RemoveAll(staging)
		}
	}()
	log.WithField("staging", staging).Debug("created staging directory")

	if err := copyDir(plan.TemplateDir, staging, log); err != nil {
		return nil, fmt.Errorf("copying %s: %w", plan.TemplateDir, err)
	}
	if info, err := os.Stat(plan.TemplateDir); err == nil {
		if err := os.Chmod(staging, info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("setting permissions on %s: %w", staging, err)
		}
	}

	var written []string
	var warnings []string
	warnings = append(warnings, plan.Warnings...)

	if err := patchPackage(filepath.Join(staging, packageFile), plan); err != nil {
		return nil, err
	}
	written = append(written, packageFile)

	manifestWarnings, err := patchManifest(filepath.Join(staging, manifestFile), plan)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, manifestWarnings...)
	written = append(written, manifestFile)

	versions := manifest.New()
	if err := versions.Set(plan.Version, plan.MinAppVersion); err != nil {
		return nil, err
	}
	if err := versions.WriteFile(filepath.Join(staging, versionsFile)); err != nil {
		return nil, err
	}
	written = append(written, versionsFile)

	table := ReplacementTable(plan.ClassName, plan.ComponentPrefix, plan.DisplayName, plan.PluginName)
	for _, rel := range RewriteTargets {
		ok, err := rewriteFile(filepath.Join(staging, filepath.FromSlash(rel)), table)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.WithField("file", rel).Debug("rewrite target absent, skipping")
			continue
		}
		log.WithField("file", rel).Debug("rewrote tokens")
		written = append(written, filepath.FromSlash(rel))
	}

	docData := DocData{Name: plan.PluginName, Version: plan.Version, Date: plan.Date}
	readme, err := BuildReadme(docData)
	if err != nil {
		return nil, err
	}
	changelog, err := BuildChangelog(docData)
	if err != nil {
		return nil, err
	}
	for _, doc := range []struct{ name, content string }{
		{readmeFile, readme},
		{changelogFile, changelog},
	} {
		p := filepath.Join(staging, doc.name)
		if err := os.WriteFile(p, []byte(doc.content), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p, err)
		}
		written = append(written, doc.name)
	}

	if err := os.Rename(staging, plan.TargetDir); err != nil {
		if _, statErr := os.Lstat(plan.TargetDir); statErr == nil {
			return nil, errs.Newf(errs.TargetExists, "target already exists: %s", plan.TargetDir)
		}
		return nil, fmt.Errorf("moving staging directory into place: %w", err)
	}
	committed = true
	log.WithField("target", plan.TargetDir).Debug("scaffold committed")

	result := &Result{
		Root:      plan.Root,
		TargetDir: plan.TargetDir,
		Warnings:  warnings,
	}
	for _, f := range written {
		result.Files = append(result.Files, relTo(plan.Root, filepath.Join(plan.TargetDir, f)))
	}
	return result, nil
}

// patchPackage stamps the new name and baseline version into package.json.
func patchPackage(path string, plan *Plan) error {
	doc, err := manifest.Load(path)
	if err != nil {
		return err
	}
	for _, kv := range [][2]string{
		{"name", plan.PluginName},
		{"version", plan.Version},
	} {
		if err := doc.Set(kv[0], kv[1]); err != nil {
			return err
		}
	}
	plan.log.WithField("file", packageFile).Debug("patched package descriptor")
	return doc.WriteFile(path)
}

// patchManifest overwrites the plugin identity fields of manifest.json and
// returns schema issues as warnings.
func patchManifest(path string, plan *Plan) ([]string, error) {
	doc, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	for _, kv := range [][2]string{
		{"id", plan.PluginName},
		{"name", plan.DisplayName},
		{"version", plan.Version},
		{"minAppVersion", plan.MinAppVersion},
		{"description", plan.Description},
		{"author", plan.Author},
		{"authorUrl", plan.AuthorURL},
	} {
		if err := doc.Set(kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	if err := doc.WriteFile(path); err != nil {
		return nil, err
	}
	plan.log.WithField("file", manifestFile).Debug("patched plugin manifest")

	var warnings []string
	vr, err := manifest.ValidateFile(path)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("could not validate %s: %v", manifestFile, err))
	} else if !vr.Valid {
		for _, issue := range vr.Issues {
			warnings = append(warnings, manifestFile+": "+issue.String())
		}
	}
	return warnings, nil
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

// resolve joins p onto root unless p is already absolute.
func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
