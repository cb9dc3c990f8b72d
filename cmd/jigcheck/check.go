package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sigreer/jigcheck/internal/config"
	"github.com/sigreer/jigcheck/internal/display"
	"github.com/sigreer/jigcheck/internal/monitor"
	"github.com/sigreer/jigcheck/internal/probe"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one probe cycle and exit non-zero on failure",
	Long: `Run a single probe cycle and print every check.

Exit status is 0 when all checks pass and 1 otherwise, so the command
can gate a scripted production line step.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("json", false, "Output as JSON")
}

// checkOutput is the JSON form of a single cycle
type checkOutput struct {
	Descriptor *config.Descriptor `json:"descriptor"`
	Report     probe.Report       `json:"report"`
	MACs       [2]string          `json:"macs"`
	Checks     []monitor.Check    `json:"checks"`
	Passed     bool               `json:"passed"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")

	desc, _, err := loadJig()
	if err != nil {
		return err
	}

	rep := probe.Run(desc, probe.DefaultBackends())
	checks := monitor.Checks(rep)

	if jsonOut {
		out := checkOutput{
			Descriptor: desc,
			Report:     rep,
			Checks:     checks,
			Passed:     rep.Passed(),
		}
		for i, res := range rep.Net {
			out.MACs[i] = display.FormatMAC(res)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		printChecks(desc, checks)
	}

	if !rep.Passed() {
		os.Exit(1)
	}
	return nil
}

func printChecks(desc *config.Descriptor, checks []monitor.Check) {
	fmt.Printf("Model: %s  Adapter: %s (%d/2 resolved)\n", desc.Model, desc.I2CAdapter, desc.ResolvedNodes())
	fmt.Printf("%-12s %-6s %s\n", "CHECK", "STATUS", "DETAIL")
	fmt.Println(strings.Repeat("-", 60))

	failed := 0
	for _, c := range checks {
		if c.Status == display.StatusFail.String() {
			failed++
		}
		fmt.Printf("%-12s %-6s %s\n", c.Name, c.Status, c.Detail)
	}

	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Total: %d | Failed: %d\n", len(checks), failed)
}
