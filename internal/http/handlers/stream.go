package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/aadikrishna04/Devfest-CU/internal/config"
	"github.com/aadikrishna04/Devfest-CU/internal/core/realtime"
	"github.com/aadikrishna04/Devfest-CU/internal/core/session"
	"github.com/aadikrishna04/Devfest-CU/internal/core/vision"
	"github.com/aadikrishna04/Devfest-CU/internal/repo/sessionlog"
	"github.com/aadikrishna04/Devfest-CU/internal/telemetry"
	"github.com/aadikrishna04/Devfest-CU/pkg/ws"
)

// StreamHandler owns the client websocket endpoint. Each accepted
// connection becomes one session with its own orchestrator.
type StreamHandler struct {
	Hub      *ws.Hub
	Store    *sessionlog.Store
	Analyzer vision.Analyzer
	Cfg      config.Config
	Metrics  *telemetry.Metrics
	Upgrader websocket.Upgrader
}

func NewStreamHandler(h *ws.Hub, store *sessionlog.Store, analyzer vision.Analyzer, cfg config.Config, metrics *telemetry.Metrics) *StreamHandler {
	return &StreamHandler{
		Hub:      h,
		Store:    store,
		Analyzer: analyzer,
		Cfg:      cfg,
		Metrics:  metrics,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) WS(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id := "sess_" + uuid.NewString()
	slog.Info("client connected", "session_id", id)

	up, err := realtime.Dial(h.Cfg.RealtimeURL, h.Cfg.OpenAIAPIKey)
	if err != nil {
		slog.Error("upstream dial failed", "session_id", id, "error", err)
		return
	}

	journal := sessionlog.New(id, h.Cfg.SessionLogDir, h.Store)
	orch := session.New(id, ws.Wrap(conn), up, h.Analyzer, journal, session.Options{
		Timing: session.Timing{
			SceneWarmup:    h.Cfg.SceneWarmup,
			SceneInterval:  h.Cfg.SceneInterval,
			FollowUpWarmup: h.Cfg.FollowUpWarmup,
			FollowUpPoll:   h.Cfg.FollowUpPoll,
		},
		Voice:   h.Cfg.RealtimeVoice,
		Metrics: h.Metrics,
	})

	h.Hub.Add(id, orch)
	defer h.Hub.Remove(id)
	defer orch.Shutdown()

	if err := orch.Run(); err != nil {
		slog.Error("session ended with error", "session_id", id, "error", err)
		return
	}
	slog.Info("session cleaned up", "session_id", id)
}
