package service

import (
	"context"
	"errors"
	"strings"

	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/repository"
)

type vipService struct {
	vipRepo   repository.VipRepository
	emailRepo repository.EmailRepository
	logger    *logger.Logger
}

func NewVipService(vipRepo repository.VipRepository, emailRepo repository.EmailRepository, logger *logger.Logger) VipService {
	return &vipService{
		vipRepo:   vipRepo,
		emailRepo: emailRepo,
		logger:    logger,
	}
}

// UpdateVipStatus recomputes the VIP flag for each email in the batch from
// the tenant's current active VIP list. One failing email is logged and
// skipped; it never aborts the rest of the batch. Re-running on the same
// batch is safe: the flag is a pure function of current membership.
func (s *vipService) UpdateVipStatus(ctx context.Context, emails []*model.EmailMessage) (*VipUpdateResult, error) {
	result := &VipUpdateResult{}

	for _, email := range emails {
		result.Processed++

		sender := strings.ToLower(strings.TrimSpace(email.SenderEmail))
		vip, err := s.vipRepo.FindActiveByAddress(ctx, email.TenantID, sender)
		if err != nil {
			s.logger.Error("VIP lookup failed for email:", email.ID, err)
			result.Failed++
			continue
		}

		isVip := vip != nil
		if err := s.emailRepo.UpdateVipStatus(ctx, email.ID, isVip); err != nil {
			s.logger.Error("Failed to update VIP status for email:", email.ID, err)
			result.Failed++
			continue
		}

		email.IsVip = isVip
		result.Updated++
	}

	return result, nil
}

func (s *vipService) AddVipAddress(ctx context.Context, tenantID, emailAddress, label string) (*model.VipAddress, error) {
	if strings.TrimSpace(emailAddress) == "" {
		return nil, errors.New("email address is required")
	}

	vip := model.NewVipAddress(tenantID, emailAddress, label)
	if err := s.vipRepo.Create(ctx, vip); err != nil {
		s.logger.Error("Failed to create VIP address:", err)
		return nil, err
	}
	s.logger.Info("Added VIP address:", vip.EmailAddress, "tenant:", tenantID)
	return vip, nil
}

func (s *vipService) GetVipAddresses(ctx context.Context, tenantID string) ([]*model.VipAddress, error) {
	return s.vipRepo.FindByTenant(ctx, tenantID)
}

func (s *vipService) RemoveVipAddress(ctx context.Context, id string) error {
	if err := s.vipRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete VIP address:", err)
		return err
	}
	s.logger.Info("Removed VIP address:", id)
	return nil
}
