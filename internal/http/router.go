package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aadikrishna04/Devfest-CU/internal/config"
	"github.com/aadikrishna04/Devfest-CU/internal/core/vision"
	"github.com/aadikrishna04/Devfest-CU/internal/http/handlers"
	"github.com/aadikrishna04/Devfest-CU/internal/repo/sessionlog"
	"github.com/aadikrishna04/Devfest-CU/internal/telemetry"
	"github.com/aadikrishna04/Devfest-CU/pkg/ws"
)

func NewRouter(cfg config.Config, store *sessionlog.Store, analyzer vision.Analyzer, metrics *telemetry.Metrics) *gin.Engine {
	r := gin.Default()
	hub := ws.NewHub()

	sh := handlers.NewSessionsHandler(hub, store)
	wsh := handlers.NewStreamHandler(hub, store, analyzer, cfg, metrics)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/v1")
	api.GET("/sessions", sh.List)
	api.GET("/sessions/:id/report", sh.Report)

	r.GET("/v1/ws", wsh.WS)
	return r
}
