// internal/handlers/websocket/websocket.go
package websocket

import (
	"net/http"
	"strings"
	"time"

	"notifyme-service/internal/pkg/response"
	"notifyme-service/internal/pkg/token"
	ws "notifyme-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origins once the frontend host list is settled
		return true
	},
}

type WebSocketHandler struct {
	hub    *ws.Hub
	tokens *token.Manager
	logger *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, tokens *token.Manager, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		tokens: tokens,
		logger: logger,
	}
}

// HandleConnection upgrades the request and starts a client gateway.
// Anonymous connections join only the global group; a valid token joins the
// connection to its per-user group as well.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	var userID int64
	if raw := h.extractToken(c); raw != "" {
		claims, err := h.tokens.Parse(raw)
		if err != nil {
			h.logger.Warn("rejecting websocket connection with bad token",
				zap.Error(err),
				zap.String("ip", c.ClientIP()),
			)
			response.Error(c, http.StatusUnauthorized, "invalid token", err)
			return
		}
		userID = claims.UserID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, userID, h.logger)
	client.Start()

	h.logger.Info("websocket client connected",
		zap.String("client_id", client.ID()),
		zap.Int64("user_id", userID),
	)
}

// extractToken reads the optional identity token from the query string or
// the Authorization header.
func (h *WebSocketHandler) extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	return ""
}

// GetStats returns connection statistics.
func (h *WebSocketHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"total_connections": h.hub.TotalMembers(),
		"total_groups":      h.hub.GroupCount(),
		"timestamp":         time.Now(),
	}

	response.Success(c, http.StatusOK, "websocket stats", stats)
}
