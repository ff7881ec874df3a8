package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ProdProductRepoMock struct{ mock.Mock }

func (m *ProdProductRepoMock) List(ctx context.Context, f repo.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProdProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProdProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProdProductRepoMock) Update(ctx context.Context, id int64, u repo.ProductUpdate) error {
	args := m.Called(ctx, id, u)
	return args.Error(0)
}

func (m *ProdProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProdProductRepoMock) SetImageURL(ctx context.Context, id int64, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

type ProdInventoryRepoMock struct{ mock.Mock }

func (m *ProdInventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *ProdInventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	panic("not used in ProductUsecase tests")
}

func newProductFixture() (*usecase.ProductUsecase, *ProdProductRepoMock, *ProdInventoryRepoMock) {
	pRepo := new(ProdProductRepoMock)
	iRepo := new(ProdInventoryRepoMock)
	return usecase.NewProductUsecase(pRepo, iRepo), pRepo, iRepo
}

func TestProductUsecase_ListProducts_InvalidStockStatus(t *testing.T) {
	uc, _, _ := newProductFixture()

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{StockStatus: "sold_out"})
	assertErrContains(t, err, "invalid stock_status")
}

func TestProductUsecase_ListProducts_Filters(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newProductFixture()

	f := repo.ProductFilter{Q: "coffee", Category: "drink", StockStatus: "in_stock"}
	pRepo.On("List", mock.Anything, f).Return([]model.Product{{ID: 1, Name: "Coffee"}}, nil)

	out, err := uc.ListProducts(ctx, usecase.ListProductsInput{
		Q: " coffee ", Category: "drink", StockStatus: "in_stock",
	})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_GetProduct_NotFound(t *testing.T) {
	uc, pRepo, _ := newProductFixture()

	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), 99)
	assertErrContains(t, err, "not found")
}

func TestProductUsecase_CreateProduct_DerivesStockStatus(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newProductFixture()

	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Stock == 5 && p.StockStatus == model.StockStatusInStock
	})).Return(model.Product{ID: 1, Stock: 5, StockStatus: model.StockStatusInStock}, nil)

	out, err := uc.CreateProduct(ctx, 1, usecase.CreateProductInput{Name: "A", Price: 100, Stock: 5})
	assert.NoError(t, err)
	assert.Equal(t, model.StockStatusInStock, out.StockStatus)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_CreateProduct_ZeroStockIsOutOfStock(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newProductFixture()

	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Stock == 0 && p.StockStatus == model.StockStatusOutOfStock
	})).Return(model.Product{ID: 2, StockStatus: model.StockStatusOutOfStock}, nil)

	_, err := uc.CreateProduct(ctx, 1, usecase.CreateProductInput{Name: "B", Price: 100})
	assert.NoError(t, err)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_UpdateProduct_StockAndImageCoalesce(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newProductFixture()

	//StockとImageURLを省略 → nilのまま渡り、既存値が維持される
	pRepo.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(u repo.ProductUpdate) bool {
		return u.Stock == nil && u.ImageURL == nil && u.Name == "A2"
	})).Return(nil)

	err := uc.UpdateProduct(ctx, 1, 1, usecase.UpdateProductInput{Name: "A2", Price: 120})
	assert.NoError(t, err)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_DeleteProduct_ConflictWhenReferenced(t *testing.T) {
	uc, pRepo, _ := newProductFixture()

	pRepo.On("Delete", mock.Anything, int64(1)).Return(repo.ErrConflict)

	err := uc.DeleteProduct(context.Background(), 1, 1)
	assertErrContains(t, err, "referenced by orders")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
}

func TestProductUsecase_UpdateStock_ClampsNegativeToZero(t *testing.T) {
	ctx := context.Background()
	uc, _, iRepo := newProductFixture()

	iRepo.On("SetStock", mock.Anything, int64(1), int64(0)).Return(nil)

	err := uc.UpdateStock(ctx, 1, 1, -5)
	assert.NoError(t, err)
	iRepo.AssertExpectations(t)
}

func TestProductUsecase_UpdateStock_NotFound(t *testing.T) {
	uc, _, iRepo := newProductFixture()

	iRepo.On("SetStock", mock.Anything, int64(9), int64(3)).Return(repo.ErrNotFound)

	err := uc.UpdateStock(context.Background(), 1, 9, 3)
	assertErrContains(t, err, "not found")
}
