package handler

import (
	"net/http"

	"mailflow/internal/logger"
	"mailflow/internal/service"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *logger.Logger
}

func NewCategoryHandler(categoryService service.CategoryService, logger *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// CreateCategory creates a new category
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req struct {
		TenantID    string  `json:"tenant_id"`
		MailboxID   *string `json:"mailbox_id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Priority    int     `json:"priority"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.TenantID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "tenant_id is required",
		})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Name is required",
		})
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), req.TenantID, req.MailboxID, req.Name, req.Description, req.Priority)
	if err != nil {
		h.logger.Error("Failed to create category:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create category",
		})
	}

	return c.JSON(http.StatusCreated, category)
}

// GetCategory retrieves a category by ID
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	categoryID := c.Param("id")

	category, err := h.categoryService.GetCategory(c.Request().Context(), categoryID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Category not found",
		})
	}

	return c.JSON(http.StatusOK, category)
}

// GetCategories retrieves all categories for a tenant
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	tenantID := c.QueryParam("tenant_id")
	if tenantID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "tenant_id is required",
		})
	}

	categories, err := h.categoryService.GetCategories(c.Request().Context(), tenantID)
	if err != nil {
		h.logger.Error("Failed to get categories:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get categories",
		})
	}

	return c.JSON(http.StatusOK, categories)
}

// UpdateCategory updates an existing category
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	categoryID := c.Param("id")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Priority    *int   `json:"priority"`
		IsActive    *bool  `json:"is_active"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	updatedCategory, err := h.categoryService.UpdateCategory(
		c.Request().Context(),
		categoryID,
		req.Name,
		req.Description,
		req.Priority,
		req.IsActive,
	)
	if err != nil {
		h.logger.Error("Failed to update category:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update category",
		})
	}

	return c.JSON(http.StatusOK, updatedCategory)
}

// DeleteCategory deletes a category
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	categoryID := c.Param("id")

	err := h.categoryService.DeleteCategory(c.Request().Context(), categoryID)
	if err != nil {
		h.logger.Error("Failed to delete category:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete category",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
