package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ngts-qa/qaview/internal/progress"
	"github.com/ngts-qa/qaview/internal/report"
	"github.com/ngts-qa/qaview/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report over HTTP",
	Long:  `Serves the built report directory locally, with /api/pairs listing the show/hide links of the page.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port for the local server (defaults to serve.port)")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	serveCmd.Flags().Bool("build", false, "build the report before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Serve.Port = port
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if build, _ := cmd.Flags().GetBool("build"); build {
		builder := report.NewBuilder(cfg, logger)
		builder.Reporter = progress.NewReporter("Rendering plots")
		if _, err := builder.Build(ctx); err != nil {
			return fmt.Errorf("building report: %w", err)
		}
	}

	if _, err := os.Stat(cfg.OutputDir); os.IsNotExist(err) {
		return fmt.Errorf("report directory not found at %s\nRun `qaview build` first", cfg.OutputDir)
	}

	srv := server.New(server.Config{
		Port:     cfg.Serve.Port,
		Dir:      cfg.OutputDir,
		PageName: cfg.PageName,
		AllowAll: cfg.Serve.AllowAll,
	}, logger)

	ln, err := srv.Listen(ctx)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://localhost:%d/%s", ln.Addr().(*net.TCPAddr).Port, cfg.PageName)
	if open, _ := cmd.Flags().GetBool("open"); open {
		go server.OpenBrowser(url)
	}
	fmt.Printf("Serving at %s (press Ctrl+C to stop)\n", url)

	return srv.Serve(ctx, ln)
}
