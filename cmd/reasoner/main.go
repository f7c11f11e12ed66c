package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tailored-agentic-units/reasoner/envfile"
	"github.com/tailored-agentic-units/reasoner/observability"
	"github.com/tailored-agentic-units/reasoner/reasoner"
)

const (
	colorAnswer = "\033[1;34m" // bright blue
	colorReset  = "\033[0m"
)

func main() {
	var (
		configFile      = flag.String("config", "", "Path to reasoner config JSON file")
		question        = flag.String("question", "", "Question to reason about (required)")
		agentName       = flag.String("agent", "", "Named agent from the config agents map (overrides the default agent)")
		contextLength   = flag.Int("context-length", 0, "Session context length in tokens (overrides config)")
		temperature     = flag.Float64("temperature", -1, "Sampling temperature (overrides config)")
		maxParseRetries = flag.Int("max-parse-retries", 0, "Maximum attempts to parse a step plan (overrides config)")
		maxExecRetries  = flag.Int("max-exec-retries", 0, "Maximum attempts to run a code snippet (overrides config)")
		eventsFile      = flag.String("events", "", "Path to append the JSONL event stream to")
		noColor         = flag.Bool("no-color", false, "Disable ANSI colors in transcript output")
		verbose         = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	if *question == "" {
		fmt.Fprintln(os.Stderr, "Usage: reasoner -question <text> [-config <file>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	envResult := envfile.Load()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if envResult.Loaded {
		logger.Debug("env file loaded", "path", envResult.Path, "keys", envResult.Keys)
	}
	if envResult.Err != nil {
		logger.Warn("env file load failed", "path", envResult.Path, "error", envResult.Err.Error())
	}

	cfg := loadConfig(*configFile)

	if *agentName != "" {
		agentCfg, ok := cfg.Agents[*agentName]
		if !ok {
			log.Fatalf("Agent %q is not defined in the config agents map", *agentName)
		}
		cfg.Agent = agentCfg
	}
	if *contextLength > 0 {
		cfg.Session.ContextLength = *contextLength
	}
	if *temperature >= 0 {
		cfg.Agent.Temperature = *temperature
	}
	if *maxParseRetries > 0 {
		cfg.MaxParseRetries = *maxParseRetries
	}
	if *maxExecRetries > 0 {
		cfg.MaxExecRetries = *maxExecRetries
	}

	color := !*noColor
	if _, found := os.LookupEnv("NO_COLOR"); found {
		color = false
	}

	console := observability.NewConsoleObserver(os.Stdout)
	console.SetColor(color)

	observers := []observability.Observer{
		console,
		observability.NewSlogObserver(logger),
	}
	if *eventsFile != "" {
		events, err := observability.NewFileObserver(*eventsFile)
		if err != nil {
			log.Fatalf("Failed to open events file: %v", err)
		}
		defer events.Close()
		observers = append(observers, events)
	}

	r, err := reasoner.New(cfg,
		reasoner.WithObserver(observability.NewMultiObserver(observers...)))
	if err != nil {
		log.Fatalf("Failed to create reasoner: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := r.Run(ctx, *question)
	if err != nil {
		log.Fatalf("Reasoner run failed: %v", err)
	}

	if color {
		fmt.Printf("\n%sFinal Answer:%s\n%s\n", colorAnswer, colorReset, result.Response)
	} else {
		fmt.Printf("\nFinal Answer:\n%s\n", result.Response)
	}
}

func loadConfig(path string) *reasoner.Config {
	if path == "" {
		cfg := reasoner.DefaultConfig()
		return &cfg
	}
	cfg, err := reasoner.LoadConfig(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
