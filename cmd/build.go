package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngts-qa/qaview/internal/progress"
	"github.com/ngts-qa/qaview/internal/report"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the QA plot report page",
	Long: `Collects every plot matching the include patterns into one HTML page,
pairs each plot with a show/hide button, validates the pairing and copies the
browser binder assets next to the page.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "override output directory")
	buildCmd.Flags().Bool("collapsed", false, "start with every plot hidden")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	if cmd.Flags().Changed("collapsed") {
		cfg.Collapsed, _ = cmd.Flags().GetBool("collapsed")
	}
	logger := newLogger(cfg)

	builder := report.NewBuilder(cfg, logger)
	builder.Reporter = progress.NewReporter("Rendering plots")

	n, err := builder.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	fmt.Printf("Report generated: %s (%d plots)\n", builder.PagePath(), n)
	return nil
}
