package repository

import (
	"errors"
	"testing"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createProduct(t *testing.T, repo ProductRepository, sku string, stock int) *model.Product {
	t.Helper()
	p := &model.Product{SKU: sku, Name: "Item " + sku, Stock: stock}
	require.NoError(t, repo.Create(p))
	return p
}

func TestAdjustStock(t *testing.T) {
	repo := NewProductRepo(testutil.NewDB(t))
	p := createProduct(t, repo, "adj-1", 5)

	updated, err := repo.AdjustStock(p.ID, 3, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Stock)
	assert.Equal(t, "user-1", updated.UpdatedBy)

	updated, err = repo.AdjustStock(p.ID, -8, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)

	_, err = repo.AdjustStock(p.ID, -1, "user-1")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	current, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Stock, "failed adjustment changes nothing")

	_, err = repo.AdjustStock(uuid.New(), 1, "user-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindBySKUIsCaseInsensitive(t *testing.T) {
	repo := NewProductRepo(testutil.NewDB(t))
	p := createProduct(t, repo, "sku-lower", 1)
	assert.Equal(t, "SKU-LOWER", p.SKU)

	found, err := repo.FindBySKU(" Sku-Lower ")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	_, err = repo.FindBySKU("missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdateLeavesStockAlone(t *testing.T) {
	repo := NewProductRepo(testutil.NewDB(t))
	p := createProduct(t, repo, "upd-1", 9)

	p.Name = "Renamed"
	p.Stock = 1000
	require.NoError(t, repo.Update(p))

	current, err := repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", current.Name)
	assert.Equal(t, 9, current.Stock)
}

func TestDeleteIsSoft(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepo(db)
	p := createProduct(t, repo, "del-1", 2)

	require.NoError(t, repo.Delete(p.ID, "user-1"))
	_, err := repo.FindByID(p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.AdjustStock(p.ID, 1, "user-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "deleted products take no stock changes")

	var raw model.Product
	require.NoError(t, db.Unscoped().First(&raw, "id = ?", p.ID).Error)
	assert.Equal(t, "user-1", raw.DeletedBy)

	assert.ErrorIs(t, repo.Delete(p.ID, "user-1"), gorm.ErrRecordNotFound)
}

func TestHistoryAppendAndOrder(t *testing.T) {
	db := testutil.NewDB(t)
	products := NewProductRepo(db)
	history := NewHistoryRepo(db)
	p := createProduct(t, products, "hist-1", 0)

	assert.ErrorIs(t, history.Append(&model.ProductHistory{ProductID: p.ID, Action: model.HistoryActionStockChanged}), ErrIncompleteHistory)

	for i, v := range []int{4, 7, 2} {
		require.NoError(t, history.Append(&model.ProductHistory{
			ProductID: p.ID,
			Action:    model.HistoryActionStockChanged,
			ActorID:   "user-1",
			OldValue:  i,
			NewValue:  v,
		}))
	}

	entries, err := history.FindByProduct(p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 4, entries[0].NewValue)
	assert.Equal(t, 2, entries[2].NewValue)
}

func TestUnitOfWorkRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	uow := NewUnitOfWork(db)
	products := NewProductRepo(db)
	p := createProduct(t, products, "uow-1", 10)

	boom := errors.New("boom")
	err := uow.Do(func(repos Repositories) error {
		if _, err := repos.Products.AdjustStock(p.ID, -4, "user-1"); err != nil {
			return err
		}
		if err := repos.History.Append(&model.ProductHistory{ProductID: p.ID, Action: model.HistoryActionStockChanged, ActorID: "user-1", OldValue: 10, NewValue: 6}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	current, err := products.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, current.Stock)
	entries, err := NewHistoryRepo(db).FindByProduct(p.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
