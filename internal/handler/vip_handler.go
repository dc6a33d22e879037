package handler

import (
	"fmt"
	"net/http"

	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/service"

	"github.com/labstack/echo/v4"
)

type VipHandler struct {
	vipService service.VipService
	logger     *logger.Logger
}

func NewVipHandler(vipService service.VipService, logger *logger.Logger) *VipHandler {
	return &VipHandler{
		vipService: vipService,
		logger:     logger,
	}
}

type vipUpdateRequest struct {
	Emails []*model.EmailMessage `json:"emails"`
}

type vipUpdateResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Processed int    `json:"processed"`
	Updated   int    `json:"updated"`
	Failed    int    `json:"failed"`
	Error     string `json:"error,omitempty"`
}

// UpdateVipStatus runs a VIP pass over the posted batch. Per-email failures
// are absorbed by the service; only a malformed top-level payload fails the
// request.
func (h *VipHandler) UpdateVipStatus(c echo.Context) error {
	var req vipUpdateRequest
	if err := c.Bind(&req); err != nil || req.Emails == nil {
		return c.JSON(http.StatusInternalServerError, vipUpdateResponse{
			Success: false,
			Error:   "emails must be an array",
		})
	}

	result, err := h.vipService.UpdateVipStatus(c.Request().Context(), req.Emails)
	if err != nil {
		h.logger.Error("VIP batch failed:", err)
		return c.JSON(http.StatusInternalServerError, vipUpdateResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, vipUpdateResponse{
		Success:   true,
		Message:   fmt.Sprintf("Processed %d emails", result.Processed),
		Processed: result.Processed,
		Updated:   result.Updated,
		Failed:    result.Failed,
	})
}

type vipAddressRequest struct {
	TenantID     string `json:"tenant_id"`
	EmailAddress string `json:"email_address"`
	Label        string `json:"label"`
}

// AddVipAddress registers a VIP sender for a tenant.
func (h *VipHandler) AddVipAddress(c echo.Context) error {
	var req vipAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.TenantID == "" || req.EmailAddress == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "tenant_id and email_address are required",
		})
	}

	vip, err := h.vipService.AddVipAddress(c.Request().Context(), req.TenantID, req.EmailAddress, req.Label)
	if err != nil {
		h.logger.Error("Failed to add VIP address:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to add VIP address",
		})
	}

	return c.JSON(http.StatusCreated, vip)
}

// GetVipAddresses lists a tenant's VIP senders.
func (h *VipHandler) GetVipAddresses(c echo.Context) error {
	tenantID := c.QueryParam("tenant_id")
	if tenantID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "tenant_id is required",
		})
	}

	vips, err := h.vipService.GetVipAddresses(c.Request().Context(), tenantID)
	if err != nil {
		h.logger.Error("Failed to get VIP addresses:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get VIP addresses",
		})
	}

	return c.JSON(http.StatusOK, vips)
}

// RemoveVipAddress deletes a VIP entry.
func (h *VipHandler) RemoveVipAddress(c echo.Context) error {
	id := c.Param("id")

	if err := h.vipService.RemoveVipAddress(c.Request().Context(), id); err != nil {
		h.logger.Error("Failed to remove VIP address:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to remove VIP address",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
