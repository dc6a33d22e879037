package handler

import (
	"net/http"

	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/service"

	"github.com/labstack/echo/v4"
)

type ConditionHandler struct {
	evaluator service.ConditionEvaluator
	logger    *logger.Logger
}

func NewConditionHandler(evaluator service.ConditionEvaluator, logger *logger.Logger) *ConditionHandler {
	return &ConditionHandler{
		evaluator: evaluator,
		logger:    logger,
	}
}

type conditionRequest struct {
	Condition string              `json:"condition"`
	Email     *model.EmailMessage `json:"email"`
}

type conditionResponse struct {
	Success bool                     `json:"success"`
	Result  *service.ConditionResult `json:"result,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

// EvaluateCondition exposes the AI condition evaluator directly, used by the
// dashboard to preview AI rules before saving them.
func (h *ConditionHandler) EvaluateCondition(c echo.Context) error {
	var req conditionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, conditionResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	if req.Condition == "" || req.Email == nil {
		return c.JSON(http.StatusBadRequest, conditionResponse{
			Success: false,
			Error:   "condition and email are required",
		})
	}

	result, err := h.evaluator.EvaluateCondition(c.Request().Context(), req.Condition, req.Email)
	if err != nil {
		h.logger.Error("Condition evaluation failed:", err)
		return c.JSON(http.StatusInternalServerError, conditionResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, conditionResponse{
		Success: true,
		Result:  result,
	})
}
