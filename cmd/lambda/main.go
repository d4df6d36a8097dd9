package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"slack_relay/internal/config"
	"slack_relay/internal/handler"
	"slack_relay/internal/logger"
	"slack_relay/internal/service/llm"
	slackapi "slack_relay/internal/service/slack"
)

var ginLambda *ginadapter.GinLambda

func handleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
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

	// The configured port is ignored here; API Gateway owns the listener.
	ginLambda = ginadapter.New(handler.NewRouter(slackHandler, cfg.SlackSigningSecret))

	lambda.Start(handleRequest)
}
