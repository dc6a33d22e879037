package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/repository"
)

type ruleService struct {
	ruleRepo     repository.RuleRepository
	categoryRepo repository.CategoryRepository
	logger       *logger.Logger
}

func NewRuleService(ruleRepo repository.RuleRepository, categoryRepo repository.CategoryRepository, logger *logger.Logger) RuleService {
	return &ruleService{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CreateRule validates and stores a classification rule. Empty rule values
// are rejected here because an empty substring would match every email at
// evaluation time.
func (s *ruleService) CreateRule(ctx context.Context, tenantID, categoryID, ruleType, ruleValue string, priority int) (*model.ClassificationRule, error) {
	ruleType = strings.ToLower(strings.TrimSpace(ruleType))
	if !isKnownRuleType(ruleType) {
		return nil, fmt.Errorf("unknown rule type: %q", ruleType)
	}
	if strings.TrimSpace(ruleValue) == "" {
		return nil, fmt.Errorf("rule value is required")
	}

	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("target category not found: %w", err)
	}
	if category.TenantID != tenantID {
		return nil, fmt.Errorf("target category belongs to another tenant")
	}

	rule := model.NewClassificationRule(tenantID, categoryID, ruleType, ruleValue, priority)
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		s.logger.Error("Failed to create rule:", err)
		return nil, err
	}
	s.logger.Info("Created rule:", rule.ID, "type:", rule.RuleType)
	return rule, nil
}

func (s *ruleService) GetRule(ctx context.Context, ruleID string) (*model.ClassificationRule, error) {
	return s.ruleRepo.FindByID(ctx, ruleID)
}

func (s *ruleService) GetRules(ctx context.Context, tenantID string) ([]*model.ClassificationRule, error) {
	return s.ruleRepo.FindByTenant(ctx, tenantID)
}

func (s *ruleService) UpdateRule(ctx context.Context, ruleID, ruleValue string, priority *int, isActive *bool) (*model.ClassificationRule, error) {
	rule, err := s.ruleRepo.FindByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	if ruleValue != "" {
		rule.RuleValue = ruleValue
	}
	if priority != nil {
		rule.Priority = *priority
	}
	if isActive != nil {
		rule.IsActive = *isActive
	}
	rule.UpdatedAt = time.Now()

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		s.logger.Error("Failed to update rule:", err)
		return nil, err
	}
	s.logger.Info("Updated rule:", rule.ID)
	return rule, nil
}

func (s *ruleService) DeleteRule(ctx context.Context, ruleID string) error {
	rule, err := s.ruleRepo.FindByID(ctx, ruleID)
	if err != nil {
		return err
	}

	if err := s.ruleRepo.Delete(ctx, rule.ID); err != nil {
		s.logger.Error("Failed to delete rule:", err)
		return err
	}
	s.logger.Info("Deleted rule:", rule.ID)
	return nil
}

func isKnownRuleType(ruleType string) bool {
	for _, known := range model.KnownRuleTypes {
		if ruleType == known {
			return true
		}
	}
	return false
}
