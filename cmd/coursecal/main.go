package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"coursecal/internal/config"
	"coursecal/internal/ics"
	"coursecal/internal/input"
	appLog "coursecal/internal/log"
	"coursecal/internal/schedule"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		os.Exit(runGenerate(os.Args[2:]))
	case "debug":
		os.Exit(runDebug(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  coursecal generate [-config path] [-o output.ics] input.json [input2.jsonc ...]
  coursecal debug    [-config path] file.{json,jsonc,ics}

generate converts each schedule document into an .ics calendar, written next
to the input (or to the configured output directory). debug shows how a
document or an existing .ics file will be interpreted.`)
}

// loadConfig resolves the effective configuration: defaults when no -config
// flag is given, otherwise load-or-create from the given path.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

func runGenerate(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	outPath := fs.String("o", "", "Output .ics path (only with a single input)")
	confPath := fs.String("config", "", "Path to config file (optional)")
	fs.Parse(args)

	inputs := fs.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "generate: at least one input document is required")
		usage()
		return 2
	}
	if *outPath != "" && len(inputs) > 1 {
		fmt.Fprintln(os.Stderr, "generate: -o cannot be combined with multiple inputs")
		return 2
	}

	conf, err := loadConfig(*confPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", *confPath)
		return 1
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	// Each document is processed independently: a malformed one is reported
	// and skipped, the remaining inputs still generate.
	failed := 0
	for _, in := range inputs {
		if err := generateOne(in, *outPath, conf); err != nil {
			appLog.Error("document failed", err, "input", in)
			failed++
		}
	}

	if failed > 0 {
		appLog.Error("generation finished with failures", fmt.Errorf("%d of %d documents failed", failed, len(inputs)))
		return 1
	}
	return 0
}

func generateOne(inPath, outOverride string, conf *config.Config) error {
	doc, err := input.LoadFile(inPath)
	if err != nil {
		return err
	}

	cal, count, err := buildCalendar(doc, conf.ProdID)
	if err != nil {
		return err
	}

	outPath := outOverride
	if outPath == "" {
		outPath = derivedOutputPath(inPath, conf.OutputDir)
	}
	if err := ics.WriteFile(outPath, cal); err != nil {
		return err
	}

	appLog.Info("calendar written", "input", inPath, "output", outPath, "kind", doc.Kind.String(), "events", count)
	return nil
}

// buildCalendar dispatches on document shape and serializes the resulting
// descriptors into one VCALENDAR.
func buildCalendar(doc input.Document, prodID string) (*ical.Calendar, int, error) {
	cal := ics.NewCalendar(prodID)
	stamp := time.Now()

	switch doc.Kind {
	case input.KindCourse:
		events, err := schedule.BuildCourseEvents(doc.Course, appLog.Info)
		if err != nil {
			return nil, 0, err
		}
		for _, ev := range events {
			ics.AddRecurring(cal, ev, stamp)
		}
		return cal, len(events), nil
	default:
		events, err := schedule.BuildWeekMarks(doc.WeekMarks, appLog.Info)
		if err != nil {
			return nil, 0, err
		}
		for _, ev := range events {
			ics.AddWeekMark(cal, ev, stamp)
		}
		return cal, len(events), nil
	}
}

// derivedOutputPath puts <base>.ics next to the input, or into outputDir
// when configured.
func derivedOutputPath(inPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath)) + ".ics"
	dir := filepath.Dir(inPath)
	if outputDir != "" {
		dir = outputDir
	}
	return filepath.Join(dir, base)
}

func runDebug(args []string) int {
	fs := flag.NewFlagSet("debug", flag.ExitOnError)
	confPath := fs.String("config", "", "Path to config file (optional)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "debug: exactly one file is required")
		usage()
		return 2
	}
	path := fs.Arg(0)

	conf, err := loadConfig(*confPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", *confPath)
		return 1
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".ics"):
		if err := ics.InspectFile(os.Stdout, path); err != nil {
			appLog.Error("ics inspection failed", err, "file", path)
			return 1
		}
	case strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".jsonc"):
		if err := debugDocument(path); err != nil {
			appLog.Error("document inspection failed", err, "file", path)
			return 1
		}
	default:
		fmt.Fprintln(os.Stderr, "debug: only .json, .jsonc and .ics files are supported")
		return 2
	}
	return 0
}

// debugDocument runs the matching builder on a schedule document and prints
// the descriptors it would generate.
func debugDocument(path string) error {
	doc, err := input.LoadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("document %s parsed as %s schedule\n", path, doc.Kind)

	switch doc.Kind {
	case input.KindCourse:
		events, err := schedule.BuildCourseEvents(doc.Course, appLog.Info)
		if err != nil {
			return err
		}
		fmt.Printf("generates %d recurring events:\n", len(events))
		for i, ev := range events {
			fmt.Printf("%d. %s @ %s\n", i+1, ev.Title, ev.Location)
			fmt.Printf("    first: %s - %s\n",
				ev.Start.Format("2006-01-02 15:04"), ev.End.Format("15:04"))
			fmt.Printf("    rrule: FREQ=WEEKLY;INTERVAL=%d;COUNT=%d\n", ev.Interval, ev.Count)
		}
	default:
		events, err := schedule.BuildWeekMarks(doc.WeekMarks, appLog.Info)
		if err != nil {
			return err
		}
		fmt.Printf("generates %d week markers:\n", len(events))
		for i, ev := range events {
			fmt.Printf("%d. %s: %s to %s (end exclusive)\n", i+1, ev.Title,
				ev.Start.Format("2006-01-02"), ev.End.Format("2006-01-02"))
		}
	}
	return nil
}
