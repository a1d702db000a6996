package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// plotDirCandidates are directories the QA scripts commonly write to, in
// order of preference.
var plotDirCandidates = []string{"plots", "figures", "png"}

// detectPlotsInclude looks for a directory of PNG plots below the current
// directory and returns an include glob for it.
func detectPlotsInclude() (dir string, include string) {
	for _, candidate := range plotDirCandidates {
		matches, _ := filepath.Glob(filepath.Join(candidate, "*.png"))
		if len(matches) > 0 {
			return candidate, candidate + "/*.png"
		}
	}
	return "", DefaultInclude[0]
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to qaview! Let's configure your report.")
	fmt.Println()

	dir, defaultInclude := detectPlotsInclude()
	if dir != "" {
		fmt.Printf("Found plots in %s/\n\n", dir)
	}

	// 1. Plot patterns.
	includePrompt := promptui.Prompt{
		Label:   "Plot patterns (comma-separated globs)",
		Default: defaultInclude,
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	include := splitAndTrim(includeStr)

	// 2. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the report",
		Default: "report",
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 3. Page title.
	titlePrompt := promptui.Prompt{
		Label:   "Report title",
		Default: "QA plots",
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}

	// 4. Initial image state.
	statePrompt := promptui.Select{
		Label: "Initial image state",
		Items: []string{
			"shown:  every plot visible, buttons read \"hide\"",
			"hidden: every plot collapsed, buttons read \"show\"",
		},
	}
	stateIdx, _, err := statePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Include = include
	cfg.OutputDir = outputDir
	cfg.Title = title
	cfg.Collapsed = stateIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
