package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/adapter/http/middleware"
	"taskflow/internal/core/ports"
)

const (
	StatusOk          = "ok"
	StatusDown        = "down"
	StatusDisabled    = "disabled"
	healthPingTimeout = 2 * time.Second
)

type HealthHandler struct {
	store             ports.Pinger
	storeDriver       string
	summaryConfigured bool
}

func NewHealthHandler(store ports.Pinger, storeDriver string, summaryConfigured bool) *HealthHandler {
	return &HealthHandler{store: store, storeDriver: storeDriver, summaryConfigured: summaryConfigured}
}

// CheckHealth is a liveness probe and does not touch the store.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthStatus{Status: StatusOk})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	storeStatus := StatusDown
	if h.pingStore(c.Request.Context()) {
		storeStatus = StatusOk
	}

	summaryStatus := StatusDisabled
	if h.summaryConfigured {
		summaryStatus = StatusOk
	}

	statusCode := http.StatusOK
	if storeStatus != StatusOk {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.HealthReport{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Status: dto.HealthServices{
			Store:         storeStatus,
			StoreDriver:   h.storeDriver,
			SummaryEngine: summaryStatus,
		},
	})
}

func (h *HealthHandler) pingStore(ctx context.Context) bool {
	if h.store == nil {
		return false
	}
	// Avoid hanging health checks if the store stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return h.store.Ping(timeoutCtx) == nil
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
