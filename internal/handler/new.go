package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slack_relay/internal/logger"
	"slack_relay/internal/service/llm"
	slackapi "slack_relay/internal/service/slack"
)

// SlackHandler relays Slack message and app_mention events to the language
// model and posts the reply back into the originating channel or thread.
type SlackHandler struct {
	api slackapi.API
	ai  llm.Gateway

	// spawn detaches the reply pipeline from the HTTP response lifecycle.
	// Tests replace it to run the pipeline synchronously.
	spawn func(func())
}

func NewSlackHandler(api slackapi.API, ai llm.Gateway) *SlackHandler {
	return &SlackHandler{
		api:   api,
		ai:    ai,
		spawn: func(f func()) { go f() },
	}
}

// NewRouter builds the HTTP surface of the relay: a health check, the Slack
// events endpoint and a plain 404 for everything else.
func NewRouter(h *SlackHandler, signingSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.POST("/slack/events", HandleSlackRetry(), VerifySlackRequest(signingSecret), h.HandleRequest)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})

	return r
}
