package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ngts-qa/qaview/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [page.html]",
	Short: "Validate the show/hide buttons of a report page",
	Long: `Parses a report page and verifies that every show/hide button has the
image it controls. With --simulate every button is also clicked twice and the
labels are checked against the image state after each click.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("simulate", false, "click every button twice and verify the labels")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = report.NewBuilder(cfg, nil).PagePath()
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	check := report.Check
	if simulate, _ := cmd.Flags().GetBool("simulate"); simulate {
		check = report.Simulate
	}
	pairs, err := check(f)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTROL\tTARGET\tVISIBLE\tLABEL")
	for _, p := range pairs {
		fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", p.Control, p.Target, p.Visible, p.Label)
	}
	tw.Flush()

	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Printf("%s: %d show/hide pairs OK\n", path, len(pairs))
	return nil
}
