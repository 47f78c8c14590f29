package notifications_http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Josepharis/siparis/internal/app/notifications"
	"github.com/Josepharis/siparis/internal/domain"
)

type NotificationHandler struct {
	service notifications.NotificationService
	logger  *zap.Logger
}

func NewNotificationHandler(s notifications.NotificationService, l *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: s, logger: l}
}

type SendTestNotificationRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type SendBulkNotificationRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	UserRole string `json:"userRole"`
}

type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BulkNotificationResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SuccessCount int    `json:"successCount"`
	FailureCount int    `json:"failureCount"`
	TotalTokens  int    `json:"totalTokens"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *NotificationHandler) SendTestNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req SendTestNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for SendTestNotification", zap.Error(err))
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	_, err := h.service.SendTestNotification(r.Context(), notifications.TestNotificationRequest{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, AckResponse{Success: true, Message: "Test notification sent"})
}

func (h *NotificationHandler) SendBulkNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req SendBulkNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for SendBulkNotification", zap.Error(err))
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	res, err := h.service.SendBulkNotification(r.Context(), notifications.BulkNotificationRequest{
		Title:    req.Title,
		Body:     req.Body,
		UserRole: domain.Role(req.UserRole),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, BulkNotificationResponse{
		Success:      true,
		Message:      "Bulk notification sent",
		SuccessCount: res.SuccessCount,
		FailureCount: res.FailureCount,
		TotalTokens:  res.TotalTokens,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoDeviceToken), errors.Is(err, domain.ErrNoRecipients):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *NotificationHandler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Notification request failed", zap.Error(err))
	}
	h.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (h *NotificationHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}
