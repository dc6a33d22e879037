package service_test

import (
	"context"
	"testing"

	"mailflow/internal/logger"
	"mailflow/internal/repository/memory"
	"mailflow/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryService() (service.CategoryService, *memory.InMemoryCategoryRepository) {
	repo := memory.NewInMemoryCategoryRepository()
	return service.NewCategoryService(repo, logger.New()), repo
}

func TestCreateCategory(t *testing.T) {
	svc, _ := newCategoryService()

	category, err := svc.CreateCategory(context.Background(), "tenant-1", nil, "Urgent", "needs a reply today", 90)
	require.NoError(t, err)
	assert.Equal(t, "Urgent", category.Name)
	assert.Equal(t, 90, category.Priority)
	assert.Nil(t, category.MailboxID)
	assert.True(t, category.IsActive)

	_, err = svc.CreateCategory(context.Background(), "tenant-1", nil, "", "", 0)
	assert.ErrorContains(t, err, "name is required")
}

func TestGetCategoriesOrderedByPriority(t *testing.T) {
	svc, _ := newCategoryService()

	_, err := svc.CreateCategory(context.Background(), "tenant-1", nil, "Low", "", 5)
	require.NoError(t, err)
	_, err = svc.CreateCategory(context.Background(), "tenant-1", nil, "High", "", 50)
	require.NoError(t, err)
	_, err = svc.CreateCategory(context.Background(), "tenant-2", nil, "Other", "", 99)
	require.NoError(t, err)

	categories, err := svc.GetCategories(context.Background(), "tenant-1")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "High", categories[0].Name)
	assert.Equal(t, "Low", categories[1].Name)
}

func TestUpdateCategory(t *testing.T) {
	svc, repo := newCategoryService()

	category, err := svc.CreateCategory(context.Background(), "tenant-1", nil, "Urgent", "", 90)
	require.NoError(t, err)

	priority := 10
	inactive := false
	updated, err := svc.UpdateCategory(context.Background(), category.ID, "Later", "can wait", &priority, &inactive)
	require.NoError(t, err)
	assert.Equal(t, "Later", updated.Name)
	assert.Equal(t, "can wait", updated.Description)
	assert.Equal(t, 10, updated.Priority)
	assert.False(t, updated.IsActive)

	// Deactivated categories are no longer available to the resolver.
	available, err := repo.FindAvailable(context.Background(), "tenant-1", "mailbox-1")
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestDeleteCategory(t *testing.T) {
	svc, _ := newCategoryService()

	category, err := svc.CreateCategory(context.Background(), "tenant-1", nil, "Urgent", "", 90)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), category.ID))
	assert.Error(t, svc.DeleteCategory(context.Background(), category.ID))
}
