package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/will-white/fake-history/pkg/config"
	"github.com/will-white/fake-history/pkg/gitrepo"
	"github.com/will-white/fake-history/pkg/schedule"
)

func (a *app) cmdBackfill(args []string) int {
	flags := flag.NewFlagSet("backfill", flag.ContinueOnError)
	startDate := flags.String("start-date", "", "start date YYYY-MM-DD (overrides config)")
	endDate := flags.String("end-date", "", "end date YYYY-MM-DD (overrides config)")
	dryRun := flags.Bool("dry-run", false, "simulate without changing history")
	push := flags.Bool("push", false, "push to origin after a successful run")
	repoDir := flags.String("repo", ".", "path to the git repository")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	cfg, err := a.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: backfill: %v\n", err)
		return 1
	}

	window, err := resolveWindow(cfg, *startDate, *endDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: backfill: %v\n", err)
		return 1
	}

	sch := &schedule.Scheduler{
		Rand:    a.rng,
		Persona: cfg.Persona,
		Cluster: cfg.Clustering,
	}

	if *dryRun {
		printer := &schedule.Printer{W: os.Stdout}
		if _, err := sch.Backfill(window, cfg.Backfill.Frequency, printer); err != nil {
			fmt.Fprintf(os.Stderr, "fakehist: backfill: %v\n", err)
			return 1
		}
		printer.Summary()
		return 0
	}

	repo, err := gitrepo.Open(*repoDir, cfg.Content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: backfill: %v\n", err)
		return 1
	}

	journal, err := a.openJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: backfill: %v\n", err)
		return 1
	}
	run, err := journal.BeginRun("backfill")
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: backfill: journal: %v\n", err)
		return 1
	}

	emitter := &journaledEmitter{next: repo, journal: journal, runID: run.ID}
	stats, runErr := sch.Backfill(window, cfg.Backfill.Frequency, emitter)

	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}
	if err := journal.FinishRun(run.ID, stats.DaysTotal, stats.DaysActive, stats.Events, errText); err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: backfill: journal: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "fakehist: backfill: %v\n", runErr)
		return 1
	}

	fmt.Printf("backfill complete: %d commit(s) across %d active day(s) of %d\n",
		stats.Events, stats.DaysActive, stats.DaysTotal)

	if *push {
		if err := repo.Push(os.Getenv("GH_PAT")); err != nil {
			fmt.Fprintf(os.Stderr, "fakehist: backfill: %v\n", err)
			return 1
		}
		fmt.Println("pushed to origin")
	}
	return 0
}

// resolveWindow applies CLI date overrides to the configured backfill
// window and parses the result. Range validation (syntax, ordering)
// happens here, before any day is scheduled.
func resolveWindow(cfg *config.Config, startFlag, endFlag string) (schedule.DayRange, error) {
	start := cfg.Backfill.StartDate
	if startFlag != "" {
		start = startFlag
	}
	end := cfg.Backfill.EndDate
	if endFlag != "" {
		end = endFlag
	}
	if start == "" || end == "" {
		return schedule.DayRange{}, fmt.Errorf("start and end dates required (flags or backfill_settings in config)")
	}
	return schedule.ParseDayRange(start, end)
}
