package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/will-white/fake-history/pkg/config"
)

func (a *app) cmdInit(args []string) int {
	flags := flag.NewFlagSet("init", flag.ContinueOnError)
	name := flags.String("name", "", "author name (prompted when omitted)")
	email := flags.String("email", "", "author email (prompted when omitted)")
	force := flags.Bool("force", false, "overwrite an existing config without asking")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	in := bufio.NewReader(os.Stdin)

	if _, err := os.Stat(a.configPath); err == nil && !*force {
		fmt.Printf("%q already exists. Overwrite? (y/N): ", a.configPath)
		answer, _ := in.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Initialization cancelled.")
			return 0
		}
	}

	cfg := config.Default()
	cfg.Persona.Author.Name = *name
	cfg.Persona.Author.Email = *email
	if cfg.Persona.Author.Name == "" {
		cfg.Persona.Author.Name = prompt(in, "Enter Author Name: ")
	}
	if cfg.Persona.Author.Email == "" {
		cfg.Persona.Author.Email = prompt(in, "Enter Author Email: ")
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: init: %v\n", err)
		return 1
	}
	if err := cfg.Save(a.configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fakehist: init: %v\n", err)
		return 1
	}

	fmt.Printf("\nSuccessfully created %q. Review it for more options.\n", a.configPath)
	fmt.Println()
	fmt.Println("next steps:")
	fmt.Println("  fakehist backfill --dry-run    # preview the generated schedule")
	fmt.Println("  fakehist backfill              # create the commits")
	fmt.Println("  fakehist run                   # one gated batch (for cron)")
	return 0
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
