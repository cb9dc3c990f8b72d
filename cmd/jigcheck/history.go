package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sigreer/jigcheck/internal/db"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded check transitions",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 50, "Maximum number of events to show")
	historyCmd.Flags().String("session", "", "Only show events of one session")
	historyCmd.Flags().String("check", "", "Only show events of one check (e.g. net0.mac)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	session, _ := cmd.Flags().GetString("session")
	check, _ := cmd.Flags().GetString("check")

	if dbPath == "" {
		return fmt.Errorf("history needs a database, --db is empty")
	}

	store, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	events, err := store.QueryEvents(db.EventFilter{
		SessionID: session,
		CheckName: check,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("No events recorded.")
		return nil
	}

	fmt.Printf("%-16s %-8s %-12s %-14s %s\n", "WHEN", "SESSION", "CHECK", "CHANGE", "DETAIL")
	fmt.Println(strings.Repeat("-", 80))
	for _, e := range events {
		from := e.OldStatus
		if from == "" {
			from = "-"
		}
		fmt.Printf("%-16s %-8s %-12s %-14s %s\n",
			humanize.Time(e.Timestamp),
			shortID(e.SessionID),
			e.CheckName,
			from+" -> "+e.NewStatus,
			e.Detail,
		)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
