package handler

import (
	"errors"
	"net/http"

	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/service"

	"github.com/labstack/echo/v4"
)

type ClassifyHandler struct {
	classifier service.ClassifierService
	logger     *logger.Logger
}

func NewClassifyHandler(classifier service.ClassifierService, logger *logger.Logger) *ClassifyHandler {
	return &ClassifyHandler{
		classifier: classifier,
		logger:     logger,
	}
}

type classifyRequest struct {
	TenantID  string              `json:"tenant_id"`
	MailboxID string              `json:"mailbox_id"`
	Email     *model.EmailMessage `json:"email"`
}

type classifyResponse struct {
	Success        bool                  `json:"success"`
	Classification *model.Classification `json:"classification,omitempty"`
	Error          string                `json:"error,omitempty"`
}

// ClassifyEmail runs the classification pipeline for one email.
func (h *ClassifyHandler) ClassifyEmail(c echo.Context) error {
	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, classifyResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if req.TenantID == "" || req.MailboxID == "" || req.Email == nil {
		return c.JSON(http.StatusBadRequest, classifyResponse{
			Success: false,
			Error:   "tenant_id, mailbox_id and email are required",
		})
	}
	if req.Email.ID == "" || req.Email.SenderEmail == "" {
		return c.JSON(http.StatusBadRequest, classifyResponse{
			Success: false,
			Error:   "email.id and email.sender_email are required",
		})
	}

	classification, err := h.classifier.ClassifyEmail(c.Request().Context(), req.Email, req.TenantID, req.MailboxID)
	if err != nil {
		if errors.Is(err, service.ErrNoCategoriesConfigured) {
			return c.JSON(http.StatusBadRequest, classifyResponse{
				Success: false,
				Error:   "No categories configured for this mailbox",
			})
		}
		h.logger.Error("Failed to classify email:", err)
		return c.JSON(http.StatusInternalServerError, classifyResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, classifyResponse{
		Success:        true,
		Classification: classification,
	})
}
