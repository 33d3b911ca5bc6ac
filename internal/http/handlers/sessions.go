package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aadikrishna04/Devfest-CU/internal/repo/sessionlog"
	"github.com/aadikrishna04/Devfest-CU/pkg/ws"
)

// SessionsHandler serves session summaries: live ones from the hub,
// finished ones from the archive.
type SessionsHandler struct {
	Hub   *ws.Hub
	Store *sessionlog.Store
}

func NewSessionsHandler(hub *ws.Hub, store *sessionlog.Store) *SessionsHandler {
	return &SessionsHandler{Hub: hub, Store: store}
}

func (h *SessionsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"active_sessions": h.Hub.IDs()})
}

func (h *SessionsHandler) Report(c *gin.Context) {
	id := c.Param("id")

	if s, ok := h.Hub.Get(id); ok {
		c.JSON(http.StatusOK, gin.H{"active": true, "session": s.Report()})
		return
	}

	if h.Store != nil {
		report, ok, err := h.Store.Report(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report_lookup_failed"})
			return
		}
		if ok {
			c.JSON(http.StatusOK, gin.H{"active": false, "session": report})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
}
