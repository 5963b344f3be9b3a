package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/will-white/fake-history/pkg/gitrepo"
	"github.com/will-white/fake-history/pkg/model"
	"github.com/will-white/fake-history/pkg/schedule"
)

func (a *app) cmdRun(args []string) int {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	count := flags.Int("count", 0, "exact batch size (default: random from config bounds)")
	dryRun := flags.Bool("dry-run", false, "simulate without changing history")
	push := flags.Bool("push", false, "push to origin after a successful run")
	remote := flags.Bool("remote", false, "clone REPO_URL into a temp dir, commit there, push")
	repoDir := flags.String("repo", ".", "path to the git repository")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	cfg, err := a.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: run: %v\n", err)
		return 1
	}

	now := time.Now()
	if ok, reason := schedule.ShouldRun(now, cfg.Run.WorkingHours, cfg.Run.SkipRunChance, a.rng); !ok {
		fmt.Printf("not time to work: %s\n", reason)
		return 2
	}

	n := *count
	if n <= 0 {
		n = a.rng.IntBetween(cfg.Run.MinCommits, cfg.Run.MaxCommits)
	}

	events := make([]model.ScheduledEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, model.ScheduledEvent{
			Time:    time.Now(),
			Message: cfg.Persona.Messages[a.rng.Pick(len(cfg.Persona.Messages))],
			Author:  cfg.Persona.Author,
		})
	}

	if *dryRun {
		printer := &schedule.Printer{W: os.Stdout}
		for _, ev := range events {
			if err := printer.Emit(ev); err != nil {
				fmt.Fprintf(os.Stderr, "fakehist: run: %v\n", err)
				return 1
			}
		}
		printer.Summary()
		return 0
	}

	var repo *gitrepo.Repo
	if *remote {
		url := os.Getenv("REPO_URL")
		if url == "" {
			fmt.Fprintln(os.Stderr, "fakehist: run: --remote requires REPO_URL")
			return 1
		}
		var cleanup func()
		repo, cleanup, err = gitrepo.CloneTemp(url, envOr("GIT_BRANCH", "main"), os.Getenv("GH_PAT"), cfg.Content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fakehist: run: %v\n", err)
			return 1
		}
		defer cleanup()
	} else {
		repo, err = gitrepo.Open(*repoDir, cfg.Content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fakehist: run: %v\n", err)
			return 1
		}
	}

	journal, err := a.openJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: run: %v\n", err)
		return 1
	}
	run, err := journal.BeginRun("run")
	if err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: run: journal: %v\n", err)
		return 1
	}

	emitter := &journaledEmitter{next: repo, journal: journal, runID: run.ID}
	created := 0
	var runErr error
	for _, ev := range events {
		if runErr = emitter.Emit(ev); runErr != nil {
			break
		}
		created++
		fmt.Printf("created commit %d/%d: '%s'\n", created, n, ev.Message)
	}

	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}
	if err := journal.FinishRun(run.ID, 1, 1, created, errText); err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: run: journal: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "fakehist: run: %v\n", runErr)
		return 1
	}

	if *push || *remote {
		if err := repo.Push(os.Getenv("GH_PAT")); err != nil {
			fmt.Fprintf(os.Stderr, "fakehist: run: %v\n", err)
			return 1
		}
		fmt.Println("pushed to origin")
	}
	return 0
}
