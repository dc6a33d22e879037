package handler

import (
	"net/http"
	"strings"

	"mailflow/internal/logger"
	"mailflow/internal/service"

	"github.com/labstack/echo/v4"
)

type RuleHandler struct {
	ruleService service.RuleService
	logger      *logger.Logger
}

func NewRuleHandler(ruleService service.RuleService, logger *logger.Logger) *RuleHandler {
	return &RuleHandler{
		ruleService: ruleService,
		logger:      logger,
	}
}

// CreateRule creates a new classification rule
func (h *RuleHandler) CreateRule(c echo.Context) error {
	var req struct {
		TenantID   string `json:"tenant_id"`
		CategoryID string `json:"category_id"`
		RuleType   string `json:"rule_type"`
		RuleValue  string `json:"rule_value"`
		Priority   int    `json:"priority"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.TenantID == "" || req.CategoryID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "tenant_id and category_id are required",
		})
	}

	rule, err := h.ruleService.CreateRule(c.Request().Context(), req.TenantID, req.CategoryID, req.RuleType, req.RuleValue, req.Priority)
	if err != nil {
		// Validation failures (unknown type, empty value, bad category) are
		// client errors, not server errors.
		if strings.Contains(err.Error(), "unknown rule type") ||
			strings.Contains(err.Error(), "rule value is required") ||
			strings.Contains(err.Error(), "category") {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to create rule:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create rule",
		})
	}

	return c.JSON(http.StatusCreated, rule)
}

// GetRule retrieves a rule by ID
func (h *RuleHandler) GetRule(c echo.Context) error {
	ruleID := c.Param("id")

	rule, err := h.ruleService.GetRule(c.Request().Context(), ruleID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Rule not found",
		})
	}

	return c.JSON(http.StatusOK, rule)
}

// GetRules retrieves all rules for a tenant
func (h *RuleHandler) GetRules(c echo.Context) error {
	tenantID := c.QueryParam("tenant_id")
	if tenantID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "tenant_id is required",
		})
	}

	rules, err := h.ruleService.GetRules(c.Request().Context(), tenantID)
	if err != nil {
		h.logger.Error("Failed to get rules:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get rules",
		})
	}

	return c.JSON(http.StatusOK, rules)
}

// UpdateRule updates an existing rule
func (h *RuleHandler) UpdateRule(c echo.Context) error {
	ruleID := c.Param("id")

	var req struct {
		RuleValue string `json:"rule_value"`
		Priority  *int   `json:"priority"`
		IsActive  *bool  `json:"is_active"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	rule, err := h.ruleService.UpdateRule(c.Request().Context(), ruleID, req.RuleValue, req.Priority, req.IsActive)
	if err != nil {
		h.logger.Error("Failed to update rule:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update rule",
		})
	}

	return c.JSON(http.StatusOK, rule)
}

// DeleteRule deletes a rule
func (h *RuleHandler) DeleteRule(c echo.Context) error {
	ruleID := c.Param("id")

	if err := h.ruleService.DeleteRule(c.Request().Context(), ruleID); err != nil {
		h.logger.Error("Failed to delete rule:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete rule",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
