package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/estruyf/FrameFit/internal/database"
	"github.com/estruyf/FrameFit/internal/reporter"
)

func openRepository() (*database.DB, *database.Repository, bool) {
	cfg := loadConfig()
	db, repo := openJournal(cfg)
	if repo == nil {
		fmt.Fprintln(os.Stderr, "Resize history is not available")
		return nil, nil, false
	}
	return db, repo, true
}

func runHistory(args []string) int {
	fs := newFlagSet("history", "history [day|week|month] [--events] [--json]", "Show resize history per application.")
	jsonOut := fs.Bool("json", false, "Output the report as JSON")
	eventsOut := fs.Bool("events", false, "List individual resizes instead of the per-application summary")

	// accept the period before or after the flags
	periodType := "day"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		periodType = args[0]
		args = args[1:]
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}
	if fs.NArg() == 1 {
		periodType = fs.Arg(0)
	}

	db, repo, ok := openRepository()
	if !ok {
		return 1
	}
	defer db.Close()

	rep := reporter.New(repo)
	if *eventsOut {
		events, err := rep.Events(periodType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list resizes: %v\n", err)
			return 1
		}
		if *jsonOut {
			return printJSON(events)
		}
		fmt.Print(rep.FormatEventsText(events))
		return 0
	}

	report, err := rep.GenerateReport(periodType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate report: %v\n", err)
		return 1
	}

	if *jsonOut {
		out, err := rep.FormatReportJSON(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to format JSON: %v\n", err)
			return 1
		}
		fmt.Println(out)
		return 0
	}

	fmt.Print(rep.FormatReportText(report))
	return 0
}

func runClear(args []string) int {
	fs := newFlagSet("clear", "clear [--yes]", "Delete the recorded resize history.")
	yes := fs.Bool("yes", false, "Do not ask for confirmation")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if !*yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Refusing to clear history without a terminal; pass --yes")
			return 2
		}

		fmt.Print("This will delete all resize history. Are you sure? (yes/no): ")
		response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Println("Operation cancelled")
			return 0
		}
	}

	db, repo, ok := openRepository()
	if !ok {
		return 1
	}
	defer db.Close()

	if err := repo.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to clear history: %v\n", err)
		return 1
	}

	fmt.Println("History cleared successfully")
	return 0
}
