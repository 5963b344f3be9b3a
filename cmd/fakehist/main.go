// Command fakehist synthesizes a plausible git commit history: a
// configurable backfill over a historical date range, plus a periodic
// run mode gated by working-hours policy.
package main

import (
	"fmt"
	"os"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		printUsage()
		return
	case "--version", "-v", "version":
		fmt.Println("fakehist", version)
		return
	}

	a := newApp()
	defer a.Close()

	switch os.Args[1] {
	// Setup
	case "init":
		os.Exit(a.cmdInit(os.Args[2:]))

	// Operations
	case "run":
		os.Exit(a.cmdRun(os.Args[2:]))
	case "backfill":
		os.Exit(a.cmdBackfill(os.Args[2:]))

	// Inspection
	case "log":
		os.Exit(a.cmdLog(os.Args[2:]))
	case "status":
		os.Exit(a.cmdStatus(os.Args[2:]))

	default:
		fmt.Fprintf(os.Stderr, "fakehist: unknown command %q\n", os.Args[1])
		fmt.Fprintln(os.Stderr, "Run 'fakehist --help' for usage.")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`fakehist — synthesize a plausible git commit history

A scheduler decides, per calendar day, whether activity happens, how many
commits land, and at what times. Commits carry a configured persona and
forged author/committer dates. A SQLite journal records every real run.

Usage:
  fakehist <command> [flags]

Setup:
  init [--name N --email E]   Write a default config.json (interactive)

Commands:
  run [--dry-run]             Working-hours gate, then a small commit batch
  backfill [--dry-run]        Generate commits over a historical date range
      --start-date YYYY-MM-DD   Override config start date
      --end-date YYYY-MM-DD     Override config end date
  log [--limit N]             Show journaled runs (--run ID for its commits)
  status                      Config summary and journal totals

Environment:
  FAKEHIST_CONFIG   Config file path (default: config.json)
  FAKEHIST_DB       Journal database path (default: .fakehist/journal.db)
  GH_PAT            Token for --push / --remote git authentication
  REPO_URL          Remote URL for 'run --remote'
  GIT_BRANCH        Branch for 'run --remote' (default: main)

All run/backfill real modes support --push; 'run' also supports --remote
to clone REPO_URL into a temp dir, commit there, and push.

Exit codes:
  0  success
  1  error
  2  skipped (working-hours gate said not now)
`)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
