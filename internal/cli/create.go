package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/namewta/forge/internal/branding"
	"github.com/namewta/forge/internal/command"
	"github.com/namewta/forge/internal/config"
	"github.com/namewta/forge/internal/scaffold"
	"github.com/namewta/forge/internal/workspace"
	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Scaffold a new agent command or plugin app",
		Long:  `Create an agent command document or a new Obsidian plugin app from the monorepo template.`,
	}
	cmd.AddCommand(newCreateCommandCmd(a))
	cmd.AddCommand(newCreatePluginCmd(a))
	return cmd
}

// ─── create command ────────────────────────────────────────────────

func newCreateCommandCmd(a *app) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "command <command-name>",
		Short: "Scaffold an agent command document",
		Long: fmt.Sprintf(`Write <command-name>.md into the nearest .agents/commands directory.

The directory is found by walking up from the working directory to the first
ancestor that contains .agents. Without one, ./.agents/commands is used.

Examples:
  %[1]s create command git-release
  %[1]s create command deploy --path ./docs/commands`, branding.CLIName()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			dir := outputDir
			if dir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("getting working directory: %w", err)
				}
				dir = workspace.DefaultCommandsDir(cwd)
			}
			a.log.WithField("dir", dir).Debug("resolved commands directory")

			result, err := command.Create(name, dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target directory: %s\n", dir)
			fmt.Fprintf(out, "Created: %s\n", result.Path)
			fmt.Fprintln(out, "\nNext steps:")
			fmt.Fprintf(out, "  1. Edit %s to describe the command\n", command.FileName(name))
			fmt.Fprintln(out, "  2. Fill in the steps and output sections")
			return nil
		},
	}
	cmd.Flags().StringVar(&outputDir, "path", "", "Output directory (default: nearest .agents/commands)")
	return cmd
}

// ─── create plugin ─────────────────────────────────────────────────

type pluginFlags struct {
	templateDir   string
	appsDir       string
	displayName   string
	description   string
	author        string
	authorURL     string
	minAppVersion string
	dryRun        bool
}

func newCreatePluginCmd(a *app) *cobra.Command {
	var f pluginFlags

	cmd := &cobra.Command{
		Use:   "plugin <plugin-name>",
		Short: "Scaffold a new Obsidian plugin app from the template",
		Long: fmt.Sprintf(`Copy the template plugin into apps/<plugin-name>, rename its identifiers,
reset package.json and manifest.json to version %[2]s and write a fresh
README.md and CHANGELOG.md.

Defaults for --author, --author-url, --min-app-version, --template-dir and
--apps-dir can be stored with '%[1]s config set'.

Examples:
  %[1]s create plugin daily-notes-helper
  %[1]s create plugin kanban --display-name "Kanban Board" --dry-run`,
			branding.CLIName(), scaffold.DefaultVersion),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := scaffold.Options{
				PluginName:    args[0],
				TemplateDir:   flagOrConfig(cmd, "template-dir", f.templateDir, config.KeyTemplateDir),
				AppsDir:       flagOrConfig(cmd, "apps-dir", f.appsDir, config.KeyAppsDir),
				DisplayName:   f.displayName,
				Description:   f.description,
				Author:        flagOrConfig(cmd, "author", f.author, config.KeyAuthor),
				AuthorURL:     flagOrConfig(cmd, "author-url", f.authorURL, config.KeyAuthorURL),
				MinAppVersion: flagOrConfig(cmd, "min-app-version", f.minAppVersion, config.KeyMinAppVersion),
				DryRun:        f.dryRun,
				Logger:        a.log,
			}

			plan, result, err := scaffold.Run(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printPlan(out, plan)

			if result == nil {
				printWarnings(out, plan.Warnings)
				fmt.Fprintln(out, "\nDry run mode: no files were written.")
				return nil
			}

			fmt.Fprintln(out, "\nScaffold created successfully.")
			fmt.Fprintln(out, "Updated files:")
			for _, file := range result.Files {
				fmt.Fprintf(out, "  - %s\n", filepath.ToSlash(file))
			}
			printWarnings(out, result.Warnings)
			fmt.Fprintf(out, "\nRun: pnpm --filter %s typecheck\n", plan.PluginName)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.templateDir, "template-dir", scaffold.DefaultTemplateDir, "Template directory, relative to the repo root")
	cmd.Flags().StringVar(&f.appsDir, "apps-dir", scaffold.DefaultAppsDir, "Apps directory, relative to the repo root")
	cmd.Flags().StringVar(&f.displayName, "display-name", "", "Display name (default: title-cased plugin name)")
	cmd.Flags().StringVar(&f.description, "description", "", "Plugin description")
	cmd.Flags().StringVar(&f.author, "author", scaffold.DefaultAuthor, "Author name")
	cmd.Flags().StringVar(&f.authorURL, "author-url", scaffold.DefaultAuthorURL, "Author URL")
	cmd.Flags().StringVar(&f.minAppVersion, "min-app-version", "", "Minimum Obsidian version (default: the template's)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the plan without writing files")
	return cmd
}

// flagOrConfig returns the flag value when it was set explicitly, then the
// stored config value, then the flag default.
func flagOrConfig(cmd *cobra.Command, flag, value, key string) string {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return config.String(key, value)
}

func printPlan(w io.Writer, plan *scaffold.Plan) {
	fmt.Fprintf(w, "Repo root: %s\n", plan.Root)
	fmt.Fprintf(w, "Template: %s\n", plan.TemplateDir)
	fmt.Fprintf(w, "Target: %s\n", plan.TargetDir)
	fmt.Fprintf(w, "Plugin name: %s\n", plan.PluginName)
	fmt.Fprintf(w, "Display name: %s\n", plan.DisplayName)
	fmt.Fprintf(w, "Version reset: %s\n", plan.Version)
}

func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w, "\nWarnings:")
	for _, warning := range warnings {
		fmt.Fprintf(w, "  ! %s\n", warning)
	}
}
