package handler

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/config"
	"github.com/latia/admin-api/internal/domain/enum"
	"github.com/latia/admin-api/internal/infrastructure/watch"
	"github.com/latia/admin-api/internal/presentation/http/dto/response"
	"github.com/latia/admin-api/pkg/report"
)

// companyInfo maps the configured company branding onto the report header
func companyInfo(cfg *config.CompanyConfig) report.CompanyInfo {
	return report.CompanyInfo{
		Name:    cfg.Name,
		Address: cfg.Address,
		Phone:   cfg.Phone,
		Email:   cfg.Email,
	}
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// parseIDParam parses the :id path parameter as a UUID, writing the error
// response itself on failure
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// parseUnitType parses a unit type value, defaulting to base units when the
// field was omitted
func parseUnitType(value string) (enum.UnitType, error) {
	if value == "" {
		return enum.UnitTypeUnit, nil
	}
	return enum.ParseUnitType(value)
}

// streamSnapshots serves a live listing over server-sent events. The full
// collection snapshot is sent immediately and again after every change
// notification, so the client never has to diff.
func streamSnapshots(c *gin.Context, hub *watch.Hub, topic watch.Topic, fetch func(ctx context.Context) (interface{}, error)) {
	ch, cancel := hub.Subscribe(topic)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	send := func() bool {
		data, err := fetch(c.Request.Context())
		if err != nil {
			return false
		}
		c.SSEvent("snapshot", data)
		return true
	}

	if !send() {
		return
	}
	c.Writer.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-ch:
			return send()
		case <-heartbeat.C:
			c.SSEvent("ping", "keepalive")
			return true
		}
	})
}
