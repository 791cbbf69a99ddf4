package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/opendoors/notify-relay/internal/http/middleware"
	"github.com/opendoors/notify-relay/internal/model"
	"github.com/opendoors/notify-relay/internal/service"
)

const (
	msgNotificationSent = "Notification sent successfully"
	msgMatchSent        = "Match notifications sent (check logs for details)."
	errMissingData      = "Missing required notification data."
	errSendFallback     = "Failed to send notification"
	errMatchFallback    = "Failed to process match notification"
)

type Notifier interface {
	Send(ctx context.Context, input service.SendInput) error
	SendTest(ctx context.Context, input service.SendInput) error
	DispatchMatch(ctx context.Context, req model.MatchRequest) (*service.DispatchResult, error)
}

type Handler struct {
	notifications Notifier
	environment   string
	log           zerolog.Logger
}

func NewHandler(notifications Notifier, environment string, log zerolog.Logger) *Handler {
	return &Handler{notifications: notifications, environment: environment, log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/", h.status)

	api := router.Group("/api")
	api.POST("/send-test-notification", h.sendTestNotification)
	api.POST("/send-notification", h.sendNotification)
	api.POST("/send-match-notification", h.sendMatchNotification)
}

type sendNotificationRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
	Type        string `json:"type"`
}

func (r sendNotificationRequest) input() service.SendInput {
	return service.SendInput{
		PhoneNumber: r.PhoneNumber,
		Message:     r.Message,
		Type:        r.Type,
	}
}

func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Open Doors notification relay is running",
		"status":      "operational",
		"environment": h.environment,
	})
}

func (h *Handler) sendTestNotification(c *gin.Context) {
	var req sendNotificationRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err, errSendFallback)
		return
	}

	if err := h.notifications.SendTest(c.Request.Context(), req.input()); err != nil {
		h.fail(c, err, errSendFallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgNotificationSent})
}

func (h *Handler) sendNotification(c *gin.Context) {
	var req sendNotificationRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err, errSendFallback)
		return
	}

	if err := h.notifications.Send(c.Request.Context(), req.input()); err != nil {
		h.fail(c, err, errSendFallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgNotificationSent})
}

func (h *Handler) sendMatchNotification(c *gin.Context) {
	var req model.MatchRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err, errMatchFallback)
		return
	}

	h.log.Info().
		Str("request_id", middleware.GetRequestID(c)).
		Str("match_id", req.MatchID.String()).
		Msg("received match notification request")

	if _, err := h.notifications.DispatchMatch(c.Request.Context(), req); err != nil {
		h.fail(c, err, errMatchFallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgMatchSent})
}

// fail maps service errors to the JSON error body.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrMissingData) {
		h.log.Warn().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("rejected notification request")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errMissingData})
		return
	}

	h.log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("notification request failed")
	message := errorMessage(err)
	if message == "" {
		message = fallback
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": message})
}

// bindJSON decodes the body, treating an empty body as "{}".
func bindJSON(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// errorMessage reports a failed send with the provider's own description,
// without the service's "send <channel> notification" prefix.
func errorMessage(err error) string {
	var sendErr *service.SendError
	if errors.As(err, &sendErr) && sendErr.Err != nil {
		return sendErr.Err.Error()
	}
	return err.Error()
}
