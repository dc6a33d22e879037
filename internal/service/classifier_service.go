package service

import (
	"context"
	"fmt"

	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/repository"
)

// Confidence assigned when no rule matched and the email fell through to the
// highest-priority category.
const defaultConfidence = 0.3

type classifierService struct {
	ruleRepo           repository.RuleRepository
	categoryRepo       repository.CategoryRepository
	classificationRepo repository.ClassificationRepository
	evaluator          ConditionEvaluator
	logger             *logger.Logger
}

func NewClassifierService(
	ruleRepo repository.RuleRepository,
	categoryRepo repository.CategoryRepository,
	classificationRepo repository.ClassificationRepository,
	evaluator ConditionEvaluator,
	logger *logger.Logger,
) ClassifierService {
	return &classifierService{
		ruleRepo:           ruleRepo,
		categoryRepo:       categoryRepo,
		classificationRepo: classificationRepo,
		evaluator:          evaluator,
		logger:             logger,
	}
}

// ClassifyEmail resolves a category for the email and records the result.
// Rules arrive ordered by priority descending, so the first satisfied rule
// is the winner and scanning stops there. When nothing matches, the
// highest-priority available category is used as the default.
func (s *classifierService) ClassifyEmail(ctx context.Context, email *model.EmailMessage, tenantID, mailboxID string) (*model.Classification, error) {
	rules, err := s.ruleRepo.FindActiveByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	categories, err := s.categoryRepo.FindAvailable(ctx, tenantID, mailboxID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNoCategoriesConfigured
	}

	available := make(map[string]bool, len(categories))
	for _, category := range categories {
		available[category.ID] = true
	}

	var matched *model.ClassificationRule
	for _, rule := range rules {
		// Rules pointing at categories this mailbox cannot see are skipped.
		if !available[rule.CategoryID] {
			continue
		}

		if rule.RuleType == model.RuleTypeAI {
			result, err := s.evaluator.EvaluateCondition(ctx, rule.RuleValue, email)
			if err != nil {
				// Backend unreachable: the rule is treated as not matching
				// rather than failing the whole resolution.
				s.logger.Warn("AI condition evaluation failed, skipping rule:", rule.ID, err)
				continue
			}
			if result.MeetsCondition {
				matched = rule
				break
			}
			continue
		}

		if MatchRule(email, rule) {
			matched = rule
			break
		}
	}

	var classification *model.Classification
	if matched != nil {
		method := model.MethodRule
		if matched.RuleType == model.RuleTypeAI {
			method = model.MethodAI
		}
		ruleID := matched.ID
		classification = model.NewClassification(
			email, tenantID, mailboxID, matched.CategoryID,
			clampConfidence(float64(matched.Priority)/100), method, &ruleID)
	} else {
		classification = model.NewClassification(
			email, tenantID, mailboxID, categories[0].ID,
			defaultConfidence, model.MethodDefault, nil)
	}

	// An aborted request must not leave a partial record behind.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.classificationRepo.Create(ctx, classification); err != nil {
		return nil, fmt.Errorf("failed to record classification: %w", err)
	}

	s.logger.Info("Classified email:", email.ID, "category:", classification.CategoryID, "method:", classification.Method)
	return classification, nil
}

func clampConfidence(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
