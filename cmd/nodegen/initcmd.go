package main

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/godot-ecs/nodegen/internal/cli/config"
)

var initDefaults bool

func init() {
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "Write the default configuration without prompting")
}

const configTemplate = `# nodegen configuration
project_root: {{.ProjectRoot}}

# Extension API versions to generate code for.
api_versions:
{{- range .APIVersions}}
  - "{{.}}"
{{- end}}

godot:
  # Version manager used to switch engine versions before dumping.
  # Leave empty to dump with whatever godot binary is on PATH.
  version_manager: "{{.VersionManager}}"
  dump_timeout_seconds: 30

format:
  enabled: {{.FormatEnabled}}
  command: cargo
`

type initAnswers struct {
	ProjectRoot    string
	APIVersions    []string
	VersionManager string
	FormatEnabled  bool
}

func askInitAnswers() (*initAnswers, error) {
	answers := &initAnswers{
		ProjectRoot:    ".",
		APIVersions:    config.DefaultAPIVersions,
		VersionManager: "gdenv",
		FormatEnabled:  true,
	}
	if initDefaults {
		return answers, nil
	}

	prompt := &survey.Input{
		Message: "Project root (the godot-bevy checkout):",
		Default: answers.ProjectRoot,
	}
	if err := survey.AskOne(prompt, &answers.ProjectRoot, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}

	versionPrompt := &survey.MultiSelect{
		Message: "Extension API versions to generate:",
		Options: config.DefaultAPIVersions,
		Default: config.DefaultAPIVersions,
	}
	if err := survey.AskOne(versionPrompt, &answers.APIVersions, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}

	managerPrompt := &survey.Select{
		Message: "Engine version manager:",
		Options: []string{"gdenv", "none"},
		Default: "gdenv",
	}
	if err := survey.AskOne(managerPrompt, &answers.VersionManager); err != nil {
		return nil, err
	}
	if answers.VersionManager == "none" {
		answers.VersionManager = ""
	}

	formatPrompt := &survey.Confirm{
		Message: "Run cargo fmt on generated Rust files?",
		Default: true,
	}
	if err := survey.AskOne(formatPrompt, &answers.FormatEnabled); err != nil {
		return nil, err
	}

	return answers, nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a nodegen.yml configuration file",
	Long: `Interactively create a nodegen.yml in the current directory. Use
--defaults to write the standard configuration without any prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		const configFile = "nodegen.yml"
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("%s already exists", configFile)
		}

		answers, err := askInitAnswers()
		if err != nil {
			return err
		}

		tmpl, err := template.New("config").Parse(configTemplate)
		if err != nil {
			return fmt.Errorf("failed to parse config template: %w", err)
		}

		var sb strings.Builder
		if err := tmpl.Execute(&sb, answers); err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}

		if err := os.WriteFile(configFile, []byte(sb.String()), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", configFile, err)
		}

		fmt.Printf("Created %s\n", configFile)
		fmt.Println("Run 'nodegen generate' to produce the node type sources.")
		return nil
	},
}
