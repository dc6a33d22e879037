package router

import (
	"net/http"

	"mailflow/internal/handler"
	"mailflow/internal/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRoutes(
	e *echo.Echo,
	apiToken string,
	classifyHandler *handler.ClassifyHandler,
	conditionHandler *handler.ConditionHandler,
	vipHandler *handler.VipHandler,
	categoryHandler *handler.CategoryHandler,
	ruleHandler *handler.RuleHandler,
	emailHandler *handler.EmailHandler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	api := e.Group("/api")
	api.Use(middleware.APIKeyAuth(apiToken))

	// Classification pipeline
	api.POST("/emails/classify", classifyHandler.ClassifyEmail)
	api.POST("/ai/evaluate-condition", conditionHandler.EvaluateCondition)
	api.POST("/emails/vip-status", vipHandler.UpdateVipStatus)

	// Category management
	api.POST("/categories", categoryHandler.CreateCategory)
	api.GET("/categories", categoryHandler.GetCategories)
	api.GET("/categories/:id", categoryHandler.GetCategory)
	api.PUT("/categories/:id", categoryHandler.UpdateCategory)
	api.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	// Rule management
	api.POST("/rules", ruleHandler.CreateRule)
	api.GET("/rules", ruleHandler.GetRules)
	api.GET("/rules/:id", ruleHandler.GetRule)
	api.PUT("/rules/:id", ruleHandler.UpdateRule)
	api.DELETE("/rules/:id", ruleHandler.DeleteRule)

	// VIP list management
	api.POST("/vips", vipHandler.AddVipAddress)
	api.GET("/vips", vipHandler.GetVipAddresses)
	api.DELETE("/vips/:id", vipHandler.RemoveVipAddress)

	// Emails
	api.GET("/emails", emailHandler.GetEmailsByMailbox)
	api.GET("/emails/category/:id", emailHandler.GetEmailsByCategory)
	api.POST("/mailboxes/:id/sync", emailHandler.SyncMailbox)
}
