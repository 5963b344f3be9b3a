package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/will-white/fake-history/pkg/schedule"
)

func (a *app) cmdLog(args []string) int {
	flags := flag.NewFlagSet("log", flag.ContinueOnError)
	limit := flags.Int("limit", 20, "max entries to show")
	runID := flags.String("run", "", "show the commits of one run")
	commits := flags.Bool("commits", false, "show recent commits instead of runs")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	journal, err := a.openJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: log: %v\n", err)
		return 1
	}

	if *runID != "" || *commits {
		recs, err := journal.ListCommits(*runID, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fakehist: log: %v\n", err)
			return 1
		}
		if *jsonOut {
			printJSON(map[string]any{"commits": recs, "count": len(recs)})
			return 0
		}
		if len(recs) == 0 {
			fmt.Println("no commits")
			return 0
		}
		for _, c := range recs {
			fmt.Printf("%s  %-36s  '%s'\n", c.CommittedAt.Format(schedule.StampLayout), c.RunID, c.Message)
		}
		return 0
	}

	runs, err := journal.ListRuns(*limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: log: %v\n", err)
		return 1
	}
	if *jsonOut {
		printJSON(map[string]any{"runs": runs, "count": len(runs)})
		return 0
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return 0
	}
	for _, r := range runs {
		state := "running"
		if r.FinishedAt != nil {
			state = "ok"
			if r.Error != "" {
				state = "failed"
			}
		}
		fmt.Printf("%s  %-8s  %-6s  %d commit(s), %d/%d day(s) active",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Mode, state, r.Events, r.DaysActive, r.DaysTotal)
		if r.Error != "" {
			fmt.Printf("  [%s]", r.Error)
		}
		fmt.Printf("  %s\n", r.ID)
	}
	return 0
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
