package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mailflow/internal/ai"
	"mailflow/internal/handler"
	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/repository/memory"
	"mailflow/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handle echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handle(c))
	return rec
}

type classifyHarness struct {
	handler            *handler.ClassifyHandler
	categoryRepo       *memory.InMemoryCategoryRepository
	ruleRepo           *memory.InMemoryRuleRepository
	classificationRepo *memory.InMemoryClassificationRepository
}

func newClassifyHarness() *classifyHarness {
	h := &classifyHarness{
		categoryRepo:       memory.NewInMemoryCategoryRepository(),
		ruleRepo:           memory.NewInMemoryRuleRepository(),
		classificationRepo: memory.NewInMemoryClassificationRepository(),
	}
	log := logger.New()
	classifier := service.NewClassifierService(
		h.ruleRepo, h.categoryRepo, h.classificationRepo, ai.NewMockEvaluator(), log)
	h.handler = handler.NewClassifyHandler(classifier, log)
	return h
}

func classifyBody(t *testing.T, tenantID, mailboxID string, email *model.EmailMessage) string {
	t.Helper()

	payload, err := json.Marshal(map[string]interface{}{
		"tenant_id":  tenantID,
		"mailbox_id": mailboxID,
		"email":      email,
	})
	require.NoError(t, err)
	return string(payload)
}

func TestClassifyEmailEndpoint(t *testing.T) {
	h := newClassifyHarness()

	category := model.NewEmailCategory("tenant-1", nil, "general", "", 10)
	h.categoryRepo.Create(context.Background(), category)
	h.ruleRepo.Create(context.Background(),
		model.NewClassificationRule("tenant-1", category.ID, model.RuleTypeSender, "boss@co.com", 20))

	email := model.NewEmailMessage("tenant-1", "mailbox-1", "msg-1", "boss@co.com", "", "hi", "", time.Now())
	rec := postJSON(t, h.handler.ClassifyEmail, classifyBody(t, "tenant-1", "mailbox-1", email))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success        bool                  `json:"success"`
		Classification *model.Classification `json:"classification"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Classification)
	assert.Equal(t, category.ID, resp.Classification.CategoryID)
	assert.Equal(t, model.MethodRule, resp.Classification.Method)
}

func TestClassifyEmailEndpointNoCategories(t *testing.T) {
	h := newClassifyHarness()

	email := model.NewEmailMessage("tenant-1", "mailbox-1", "msg-1", "a@b.com", "", "hi", "", time.Now())
	rec := postJSON(t, h.handler.ClassifyEmail, classifyBody(t, "tenant-1", "mailbox-1", email))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "No categories configured for this mailbox", resp["error"])
}

func TestClassifyEmailEndpointValidation(t *testing.T) {
	h := newClassifyHarness()

	rec := postJSON(t, h.handler.ClassifyEmail, `{"tenant_id": "tenant-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Email present but missing identity fields.
	rec = postJSON(t, h.handler.ClassifyEmail,
		`{"tenant_id": "tenant-1", "mailbox_id": "mailbox-1", "email": {"subject": "hi"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyEmailEndpointPersistenceError(t *testing.T) {
	h := newClassifyHarness()

	h.categoryRepo.Create(context.Background(), model.NewEmailCategory("tenant-1", nil, "general", "", 10))
	h.classificationRepo.CreateFunc = func(ctx context.Context, classification *model.Classification) error {
		return context.DeadlineExceeded
	}

	email := model.NewEmailMessage("tenant-1", "mailbox-1", "msg-1", "a@b.com", "", "hi", "", time.Now())
	rec := postJSON(t, h.handler.ClassifyEmail, classifyBody(t, "tenant-1", "mailbox-1", email))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
