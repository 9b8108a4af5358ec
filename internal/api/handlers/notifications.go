package handlers

import (
	"net/http"

	"brand-portal/internal/api/middleware"
	"brand-portal/internal/query"
	"brand-portal/internal/service"
	"brand-portal/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	svc      *service.NotificationService
	hub      *ws.Hub
	upgrader websocket.Upgrader
	log      *zap.SugaredLogger
}

func NewNotificationHandler(svc *service.NotificationService, hub *ws.Hub, log *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{
		svc: svc,
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	filter := service.NotificationFilter{
		UnreadOnly: c.Query("unread_only") == "true",
		Page:       query.ParsePage(c.Query("page"), c.Query("limit"), 20),
	}

	notifications, pagination, unread, err := h.svc.List(middleware.Identity(c), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination":    pagination,
		"unreadCount":   unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.MarkRead(middleware.Identity(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read."})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.svc.MarkAllRead(middleware.Identity(c)); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read."})
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var input service.NotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	notification, err := h.svc.Create(input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Notification created successfully.",
		"notification": notification,
	})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(middleware.Identity(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully."})
}

// Stream upgrades to a websocket and delivers the caller's notifications as
// they are created. The connection lives until the client goes away.
func (h *NotificationHandler) Stream(c *gin.Context) {
	ident := middleware.Identity(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("websocket upgrade failed", "user_id", ident.UserID, "error", err)
		return
	}

	client := &ws.Client{UserID: ident.UserID, Conn: conn}
	h.hub.Register(client)
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
