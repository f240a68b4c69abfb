// Command bankagent is a connection self-test and demo harness for the
// Cloud.ru model bridge: it wires the adapter and the lookup toolset, sends
// one message, and logs the reply.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ArtAndrew/agentbridge/agent"
	"github.com/ArtAndrew/agentbridge/modelcloudru"
	"github.com/ArtAndrew/agentbridge/tooling/registry"
	"github.com/ArtAndrew/agentbridge/toolset"
)

func main() {
	var (
		configPath = pflag.String("config", "", "path to an optional YAML config file")
		logLevel   = pflag.String("log-level", "info", "log level: debug, info, warn, error")
		model      = pflag.String("model", "", "override the configured model id")
		message    = pflag.String("ask", "Reply with one word: working?", "message to send to the model")
	)
	pflag.Parse()

	if err := run(*configPath, *logLevel, *model, *message); err != nil {
		log.Fatalf("bankagent: %v", err)
	}
}

func run(configPath, logLevel, modelOverride, message string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level, err := parseLogLevel(logLevel)
	if err != nil {
		return err
	}
	if cfg.LogLevel != "" && logLevel == "info" {
		if level, err = parseLogLevel(cfg.LogLevel); err != nil {
			return err
		}
	}
	logger := newLogger(os.Stderr, level)

	if modelOverride != "" {
		cfg.Model = modelOverride
	}

	adapter, err := modelcloudru.New(modelcloudru.Config{
		Model:           cfg.Model,
		BaseURL:         cfg.BaseURL,
		Temperature:     cfg.Temperature,
		MaxTokens:       cfg.MaxTokens,
		TopP:            cfg.TopP,
		PresencePenalty: cfg.PresencePenalty,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	tools, err := registry.New(
		toolset.NewSerperSearch(toolset.SerperConfig{APIKey: cfg.SerperAPIKey}).Tool(),
		toolset.NewCBRCurrency(toolset.CBRConfig{}).Tool(),
		toolset.NewGeocoder(toolset.GeocoderConfig{APIKey: cfg.GeoapifyAPIKey, Logger: logger}).Tool(),
		toolset.NewUserInput(os.Stdin, os.Stdout).Tool(),
	)
	if err != nil {
		return err
	}

	info := adapter.Info()
	logger.Info("model bridge ready",
		"provider", info.Provider,
		"model", info.Model,
		"base_url", info.BaseURL,
		"tools", len(tools.Definitions()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reply := adapter.Generate(ctx, []any{
		agent.Message{Role: agent.RoleUser, Content: message},
	}, agent.GenerateOptions{})

	logger.Info("model replied", "content", reply.Content)
	fmt.Println(reply.Content)
	return nil
}
