package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"slack_relay/internal/config"
	"slack_relay/internal/handler"
	"slack_relay/internal/logger"
	"slack_relay/internal/service/llm"
	slackapi "slack_relay/internal/service/slack"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	aiClient, err := llm.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	slackHandler := handler.NewSlackHandler(slackapi.NewClient(cfg.SlackBotToken), aiClient)
	router := handler.NewRouter(slackHandler, cfg.SlackSigningSecret)

	logger.GetLogger().Info(fmt.Sprintf("Slack relay listening on port %d", cfg.Port))
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
