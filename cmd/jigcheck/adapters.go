package main

import (
	"fmt"
	"strings"

	"github.com/sigreer/jigcheck/internal/collector"
	"github.com/spf13/cobra"
)

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "List I2C adapters and the device nodes they map to",
	Long: `List the I2C adapters registered in sysfs, in index order.

Use this to find the adapter name to put on the I2C line of an app config.
Adapters marked with * match the name in the current app config.`,
	Run: runAdapters,
}

func runAdapters(cmd *cobra.Command, args []string) {
	adapters := collector.CollectI2CAdapters(sysfsRoot, collector.MaxI2CAdapters)
	if len(adapters) == 0 {
		fmt.Printf("No I2C adapters found under %s\n", sysfsRoot)
		return
	}

	wanted := configuredAdapter()

	fmt.Printf("  %-6s %-14s %s\n", "INDEX", "NODE", "NAME")
	fmt.Println(strings.Repeat("-", 60))
	for _, a := range adapters {
		mark := " "
		if wanted != "" && strings.HasPrefix(a.Name, wanted) {
			mark = "*"
		}
		fmt.Printf("%s %-6d %-14s %s\n", mark, a.Index, a.DevNode(devRoot), a.Name)
	}
}

// configuredAdapter returns the adapter name of the app config, if it loads
func configuredAdapter() string {
	desc, _, err := loadJig()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(desc.I2CAdapter)
}
