package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tripagent/tripagent/internal/agent"
	"github.com/tripagent/tripagent/internal/ollama"
	pkgconfig "github.com/tripagent/tripagent/internal/pkg/config"
	"github.com/tripagent/tripagent/internal/pkg/logging"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("tripagent failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for API keys; absence is fine.
	_ = godotenv.Load()

	configPath := parseFlags()

	appConfig, err := pkgconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(&appConfig.Logging, "tripagent")
	slog.Info("Config loaded", "path", configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	a := agent.New(appConfig)

	fmt.Println("Travel event assistant ready. (Type 'quit' to exit)")
	fmt.Println("\nExample queries:")
	fmt.Println("- 'I am looking for concerts in Lyon'")
	fmt.Println("- 'Sports events in Marseille'")
	fmt.Println("- 'Theatre shows in Paris'")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nWhat are you looking for? ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "quit") {
			break
		}

		handleQuery(ctx, a, query)

		if ctx.Err() != nil {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Println("\nGoodbye!")
	return nil
}

func handleQuery(ctx context.Context, a *agent.Agent, query string) {
	fmt.Println("\nGenerating search parameters...")

	result, err := a.HandleQuery(ctx, query)
	if err != nil {
		if errors.Is(err, ollama.ErrCanceled) || errors.Is(err, context.Canceled) {
			fmt.Println("\nQuery canceled.")
			return
		}
		// Failed queries report to the user; the loop keeps going.
		fmt.Printf("\n%v\n", err)
		return
	}

	if paramsJSON, err := json.MarshalIndent(result.Params, "", "  "); err == nil {
		fmt.Printf("\nSearch parameters:\n%s\n", paramsJSON)
	}

	fmt.Println("\nEvent recommendations:")
	fmt.Println(result.Recommendation)
	fmt.Println("\n" + strings.Repeat("=", 50))
}

func parseFlags() string {
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	var configPath string
	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.Parse()
	return configPath
}

func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("Received signal, aborting", "signal", sig)
		cancel()
	}()
}
