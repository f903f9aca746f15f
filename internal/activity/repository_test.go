package activity

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	"github.com/Sreenuraj/postqode-nexus/pkg/pagination"
	"github.com/Sreenuraj/postqode-nexus/pkg/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:activity_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Product{}, &models.ActivityLog{}))
	return conn
}

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Username:     fmt.Sprintf("auditor_%s", uuid.NewString()[:8]),
		Email:        fmt.Sprintf("audit_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Role:         enums.UserRoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, tx.Create(user).Error)
	return user
}

func snapshotOf(fields map[string]any) *types.Snapshot {
	return types.NewSnapshot(fields)
}

func TestCreateAndListEntries(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	user := mustCreateTestUser(t, db)
	productID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &models.ActivityLog{
			ID:         uuid.New(),
			UserID:     user.ID,
			ProductID:  &productID,
			ActionType: enums.ActionTypeUpdate,
			NewValue:   snapshotOf(map[string]any{"quantity": i}),
		})
		require.NoError(t, err)
	}

	entries, next, err := repo.List(ctx, pagination.Params{Limit: 10}, ListFilters{ProductID: &productID})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Empty(t, next)
}

func TestListFiltersByActionType(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	user := mustCreateTestUser(t, db)

	for _, action := range []enums.ActionType{enums.ActionTypeCreate, enums.ActionTypeDelete, enums.ActionTypeDelete} {
		_, err := repo.Create(ctx, &models.ActivityLog{
			ID:         uuid.New(),
			UserID:     user.ID,
			ActionType: action,
		})
		require.NoError(t, err)
	}

	action := enums.ActionTypeDelete
	entries, _, err := repo.List(ctx, pagination.Params{Limit: 10}, ListFilters{ActionType: &action})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestUnlinkProductKeepsHistory(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	user := mustCreateTestUser(t, db)
	productID := uuid.New()

	entry, err := repo.Create(ctx, &models.ActivityLog{
		ID:         uuid.New(),
		UserID:     user.ID,
		ProductID:  &productID,
		ActionType: enums.ActionTypeUpdate,
		OldValue:   snapshotOf(map[string]any{"quantity": 5}),
		NewValue:   snapshotOf(map[string]any{"quantity": 2}),
	})
	require.NoError(t, err)

	require.NoError(t, repo.UnlinkProduct(ctx, productID))

	var reloaded models.ActivityLog
	require.NoError(t, db.First(&reloaded, "id = ?", entry.ID).Error)
	require.Nil(t, reloaded.ProductID)
	require.NotNil(t, reloaded.OldValue)
	require.Equal(t, float64(5), reloaded.OldValue.Fields["quantity"])
}

func TestListPaginatesWithCursor(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	user := mustCreateTestUser(t, db)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, &models.ActivityLog{
			ID:         uuid.New(),
			UserID:     user.ID,
			ActionType: enums.ActionTypeStateChange,
		})
		require.NoError(t, err)
	}

	first, next, err := repo.List(ctx, pagination.Params{Limit: 3}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotEmpty(t, next)

	second, last, err := repo.List(ctx, pagination.Params{Limit: 3, Cursor: next}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.Empty(t, last)

	seen := map[uuid.UUID]bool{}
	for _, entry := range append(first, second...) {
		require.False(t, seen[entry.ID], "entry %s returned twice", entry.ID)
		seen[entry.ID] = true
	}
}
