package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slack_relay/internal/auth"
	"slack_relay/internal/logger"
)

// HandleSlackRetry is a middleware that handles Slack retry requests
func HandleSlackRetry() gin.HandlerFunc {
	return func(c *gin.Context) {
		retryNum := c.GetHeader("X-Slack-Retry-Num")
		retryReason := c.GetHeader("X-Slack-Retry-Reason")

		if retryNum != "" {
			logger.GetLogger().Info("slack retry request",
				zap.String("retry_num", retryNum),
				zap.String("retry_reason", retryReason))
			c.String(http.StatusOK, "ok (retry skipped)")
			c.Abort()
			return
		}
		c.Next()
	}
}

// VerifySlackRequest rejects requests that do not carry a valid Slack
// signature before they reach any business logic. The request body is
// restored so downstream handlers can read it again.
func VerifySlackRequest(signingSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			logger.GetLogger().Error("failed to read request body", zap.Error(err))
			c.String(http.StatusBadRequest, "Bad Request")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		signature := c.GetHeader("X-Slack-Signature")
		timestamp := c.GetHeader("X-Slack-Request-Timestamp")
		if signature == "" || timestamp == "" {
			c.String(http.StatusBadRequest, "Missing signature or timestamp")
			c.Abort()
			return
		}

		if !auth.VerifySignature(body, signature, timestamp, signingSecret) {
			logger.GetLogger().Warn("invalid slack signature")
			c.String(http.StatusUnauthorized, "Invalid signature")
			c.Abort()
			return
		}

		c.Next()
	}
}
