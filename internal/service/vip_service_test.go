package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mailflow/internal/logger"
	"mailflow/internal/model"
	"mailflow/internal/repository/memory"
	"mailflow/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vipFixture struct {
	vipRepo   *memory.InMemoryVipRepository
	emailRepo *memory.InMemoryEmailRepository
	vipSvc    service.VipService
}

func newVipFixture() *vipFixture {
	f := &vipFixture{
		vipRepo:   memory.NewInMemoryVipRepository(),
		emailRepo: memory.NewInMemoryEmailRepository(),
	}
	f.vipSvc = service.NewVipService(f.vipRepo, f.emailRepo, logger.New())
	return f
}

func (f *vipFixture) addEmail(tenantID, sender string) *model.EmailMessage {
	email := model.NewEmailMessage(tenantID, "mailbox-1", "msg-"+sender, sender, "", "subject", "", time.Now())
	f.emailRepo.Create(context.Background(), email)
	return email
}

func TestUpdateVipStatusBatch(t *testing.T) {
	f := newVipFixture()

	f.vipRepo.Create(context.Background(), model.NewVipAddress("tenant-1", "ceo@co.com", "CEO"))

	// Mixed-case sender address still matches the VIP entry.
	vipEmail := f.addEmail("tenant-1", "CEO@CO.com")
	plainEmail := f.addEmail("tenant-1", "other@co.com")

	result, err := f.vipSvc.UpdateVipStatus(context.Background(), []*model.EmailMessage{vipEmail, plainEmail})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 0, result.Failed)
	assert.True(t, vipEmail.IsVip)
	assert.False(t, plainEmail.IsVip)

	stored, err := f.emailRepo.FindByID(context.Background(), vipEmail.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVip)
}

func TestUpdateVipStatusIsIdempotent(t *testing.T) {
	f := newVipFixture()

	f.vipRepo.Create(context.Background(), model.NewVipAddress("tenant-1", "ceo@co.com", ""))
	email := f.addEmail("tenant-1", "ceo@co.com")
	batch := []*model.EmailMessage{email}

	first, err := f.vipSvc.UpdateVipStatus(context.Background(), batch)
	require.NoError(t, err)
	second, err := f.vipSvc.UpdateVipStatus(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, first.Updated, second.Updated)
	assert.True(t, email.IsVip)
}

func TestUpdateVipStatusReflectsRemovedVip(t *testing.T) {
	f := newVipFixture()

	vip := model.NewVipAddress("tenant-1", "ceo@co.com", "")
	f.vipRepo.Create(context.Background(), vip)
	email := f.addEmail("tenant-1", "ceo@co.com")

	_, err := f.vipSvc.UpdateVipStatus(context.Background(), []*model.EmailMessage{email})
	require.NoError(t, err)
	assert.True(t, email.IsVip)

	// Once the address leaves the list, the next run clears the flag.
	f.vipRepo.Delete(context.Background(), vip.ID)
	_, err = f.vipSvc.UpdateVipStatus(context.Background(), []*model.EmailMessage{email})
	require.NoError(t, err)
	assert.False(t, email.IsVip)
}

func TestUpdateVipStatusContinuesPastFailures(t *testing.T) {
	f := newVipFixture()

	f.vipRepo.Create(context.Background(), model.NewVipAddress("tenant-1", "ceo@co.com", ""))
	broken := f.addEmail("tenant-1", "broken@co.com")
	healthy := f.addEmail("tenant-1", "ceo@co.com")

	f.vipRepo.FindActiveByAddressFunc = func(ctx context.Context, tenantID, emailAddress string) (*model.VipAddress, error) {
		if emailAddress == "broken@co.com" {
			return nil, errors.New("lookup failed")
		}
		if emailAddress == "ceo@co.com" {
			return model.NewVipAddress(tenantID, emailAddress, ""), nil
		}
		return nil, nil
	}

	result, err := f.vipSvc.UpdateVipStatus(context.Background(), []*model.EmailMessage{broken, healthy})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, healthy.IsVip)
}

func TestUpdateVipStatusMissingEmailIsCounted(t *testing.T) {
	f := newVipFixture()

	// Not persisted in the repository, so the store update fails.
	ghost := model.NewEmailMessage("tenant-1", "mailbox-1", "msg-x", "a@b.com", "", "s", "", time.Now())

	result, err := f.vipSvc.UpdateVipStatus(context.Background(), []*model.EmailMessage{ghost})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Failed)
}

func TestAddVipAddress(t *testing.T) {
	f := newVipFixture()

	vip, err := f.vipSvc.AddVipAddress(context.Background(), "tenant-1", "  CEO@Co.com ", "CEO")
	require.NoError(t, err)
	assert.Equal(t, "ceo@co.com", vip.EmailAddress)
	assert.Equal(t, "CEO", vip.Label)
	assert.True(t, vip.IsActive)

	_, err = f.vipSvc.AddVipAddress(context.Background(), "tenant-1", "   ", "")
	assert.Error(t, err)
}

func TestRemoveVipAddress(t *testing.T) {
	f := newVipFixture()

	vip, err := f.vipSvc.AddVipAddress(context.Background(), "tenant-1", "ceo@co.com", "")
	require.NoError(t, err)

	require.NoError(t, f.vipSvc.RemoveVipAddress(context.Background(), vip.ID))

	addresses, err := f.vipSvc.GetVipAddresses(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Empty(t, addresses)
}
