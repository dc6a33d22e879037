package handler

import (
	"net/http"

	"mailflow/internal/logger"
	"mailflow/internal/repository"
	"mailflow/internal/service"

	"github.com/labstack/echo/v4"
)

type EmailHandler struct {
	emailRepo   repository.EmailRepository
	syncService service.SyncService
	logger      *logger.Logger
}

func NewEmailHandler(emailRepo repository.EmailRepository, syncService service.SyncService, logger *logger.Logger) *EmailHandler {
	return &EmailHandler{
		emailRepo:   emailRepo,
		syncService: syncService,
		logger:      logger,
	}
}

// GetEmailsByMailbox lists stored emails for one mailbox.
func (h *EmailHandler) GetEmailsByMailbox(c echo.Context) error {
	tenantID := c.QueryParam("tenant_id")
	mailboxID := c.QueryParam("mailbox_id")
	if tenantID == "" || mailboxID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "tenant_id and mailbox_id are required",
		})
	}

	emails, err := h.emailRepo.FindByMailbox(c.Request().Context(), tenantID, mailboxID)
	if err != nil {
		h.logger.Error("Failed to get emails:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get emails",
		})
	}

	return c.JSON(http.StatusOK, emails)
}

// GetEmailsByCategory lists emails classified into one category.
func (h *EmailHandler) GetEmailsByCategory(c echo.Context) error {
	categoryID := c.Param("id")
	tenantID := c.QueryParam("tenant_id")
	if tenantID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "tenant_id is required",
		})
	}

	emails, err := h.emailRepo.FindByCategoryID(c.Request().Context(), tenantID, categoryID)
	if err != nil {
		h.logger.Error("Failed to get emails by category:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get emails by category",
		})
	}

	return c.JSON(http.StatusOK, emails)
}

// SyncMailbox pulls recent messages for the mailbox, classifies new ones
// and refreshes VIP flags.
func (h *EmailHandler) SyncMailbox(c echo.Context) error {
	mailboxID := c.Param("id")

	result, err := h.syncService.SyncMailbox(c.Request().Context(), mailboxID)
	if err != nil {
		h.logger.Error("Failed to sync mailbox:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, result)
}
