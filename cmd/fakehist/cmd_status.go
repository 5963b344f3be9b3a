package main

import (
	"flag"
	"fmt"
	"os"
)

func (a *app) cmdStatus(args []string) int {
	flags := flag.NewFlagSet("status", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	cfg, err := a.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: status: %v\n", err)
		return 1
	}

	journal, err := a.openJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: status: %v\n", err)
		return 1
	}
	totalCommits, err := journal.CountCommits()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: status: %v\n", err)
		return 1
	}
	recent, err := journal.ListRuns(1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: status: %v\n", err)
		return 1
	}

	if *jsonOut {
		out := map[string]any{
			"config":        a.configPath,
			"persona":       cfg.Persona.Author.String(),
			"messages":      len(cfg.Persona.Messages),
			"window":        fmt.Sprintf("%s..%s", cfg.Backfill.StartDate, cfg.Backfill.EndDate),
			"frequency":     cfg.Backfill.Frequency,
			"clustering":    cfg.Clustering,
			"working_hours": cfg.Run.WorkingHours,
			"total_commits": totalCommits,
		}
		if len(recent) > 0 {
			out["last_run"] = recent[0]
		}
		printJSON(out)
		return 0
	}

	fmt.Printf("config:        %s\n", a.configPath)
	fmt.Printf("persona:       %s (%d message(s))\n", cfg.Persona.Author, len(cfg.Persona.Messages))
	fmt.Printf("window:        %s..%s at frequency %.2f/day\n",
		cfg.Backfill.StartDate, cfg.Backfill.EndDate, cfg.Backfill.Frequency)
	if cfg.Clustering.Enabled {
		fmt.Printf("clustering:    %d..%d commit(s) per active day\n", cfg.Clustering.Min, cfg.Clustering.Max)
	} else {
		fmt.Printf("clustering:    disabled (1 commit per active day)\n")
	}
	wh := cfg.Run.WorkingHours
	if wh.Enabled {
		fmt.Printf("working hours: %02d:00..%02d:00, saturday=%v sunday=%v, skip chance %.2f\n",
			wh.StartHour, wh.EndHour, wh.WorkOnSaturday, wh.WorkOnSunday, cfg.Run.SkipRunChance)
	} else {
		fmt.Printf("working hours: disabled\n")
	}
	fmt.Printf("journal:       %d commit(s) recorded\n", totalCommits)
	if len(recent) > 0 {
		r := recent[0]
		fmt.Printf("last run:      %s %s (%d commit(s))\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Mode, r.Events)
	}
	return 0
}
