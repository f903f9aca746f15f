package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
)

func mustCreateProduct(t *testing.T, conn *gorm.DB, quantity int) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:       uuid.New(),
		SKU:      fmt.Sprintf("SKU-%s", uuid.NewString()[:8]),
		Name:     "Repo Product",
		Price:    decimal.NewFromInt(10),
		Quantity: quantity,
		Status:   enums.DeriveProductStatus(quantity),
	}
	require.NoError(t, conn.Create(p).Error)
	return p
}

func TestApplyStockDeltaGuard(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	p := mustCreateProduct(t, conn, 3)

	ok, err := repo.ApplyStockDelta(ctx, p.ID, -4)
	require.NoError(t, err)
	require.False(t, ok, "decrement below zero must be rejected")

	ok, err = repo.ApplyStockDelta(ctx, p.ID, -3)
	require.NoError(t, err)
	require.True(t, ok)

	reloaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 0, reloaded.Quantity)

	ok, err = repo.ApplyStockDelta(ctx, p.ID, -1)
	require.NoError(t, err)
	require.False(t, ok, "zero stock cannot go negative")

	ok, err = repo.ApplyStockDelta(ctx, uuid.New(), -1)
	require.NoError(t, err)
	require.False(t, ok, "missing product is reported through the guard")
}

func TestListSearchMatchesNameAndSKU(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	widget := mustCreateProduct(t, conn, 5)
	widget.Name = "Widget Deluxe"
	require.NoError(t, conn.Save(widget).Error)
	mustCreateProduct(t, conn, 5)

	rows, _, err := repo.List(ctx, ListProductsInput{Search: "widget"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, widget.ID, rows[0].ID)

	rows, _, err = repo.List(ctx, ListProductsInput{Search: widget.SKU})
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestListPaginates(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreateProduct(t, conn, i)
	}

	first, next, err := repo.List(ctx, ListProductsInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, next)

	second, _, err := repo.List(ctx, ListProductsInput{Limit: 10, Cursor: next})
	require.NoError(t, err)
	require.Len(t, second, 3)

	seen := map[uuid.UUID]bool{}
	for _, row := range append(first, second...) {
		require.False(t, seen[row.ID])
		seen[row.ID] = true
	}
}
