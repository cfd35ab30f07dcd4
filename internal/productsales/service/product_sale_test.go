package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	producterrors "marketplace/internal/products/errors"
	saleerrors "marketplace/internal/productsales/errors"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/events"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	sales        map[int64]bool
	items        []*model.ProductSale
	updateErr    error
	priceUpdates map[int64]float64
	amountUpdate map[int64]int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		sales: map[int64]bool{1: true, 2: true},
		items: []*model.ProductSale{
			{ID: 10, SaleID: 1, ProductID: 3, UnitPrice: 100, Amount: 1},
		},
		priceUpdates: map[int64]float64{},
		amountUpdate: map[int64]int{},
	}
}

func (m *mockRepository) FindSale(_ context.Context, id int64) (*model.Sale, error) {
	if m.sales[id] {
		return &model.Sale{ID: id}, nil
	}
	return nil, fmt.Errorf("%w: %d", saleerrors.ErrSaleNotFound, id)
}

func (m *mockRepository) FindLineItem(_ context.Context, saleID, productID int64) (*model.ProductSale, error) {
	for _, item := range m.items {
		if item.SaleID == saleID && item.ProductID == productID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, saleerrors.ErrLineItemNotFound
}

func (m *mockRepository) UpdatePrice(_ context.Context, id int64, price float64) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.priceUpdates[id] = price
	return nil
}

func (m *mockRepository) UpdateAmount(_ context.Context, id int64, amount int) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.amountUpdate[id] = amount
	return nil
}

type products map[int64]bool

func (p products) FindByID(_ context.Context, id int64) (*model.Product, error) {
	if p[id] {
		return &model.Product{ID: id}, nil
	}
	return nil, fmt.Errorf("%w: %d", producterrors.ErrNotFound, id)
}

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected *AppError, got %T", err)
	assert.Equal(t, status, appErr.StatusCode())
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func newTestService(repo *mockRepository, pub events.Publisher) ProductSaleService {
	return NewProductSaleService(repo, products{3: true, 4: true}, pub, nil, logger.NewNop())
}

func TestUpdatePrice_Gates(t *testing.T) {
	tests := []struct {
		name      string
		saleID    string
		productID string
		price     string
		status    int
		message   string
	}{
		{name: "invalid sale id", saleID: "x", productID: "3", price: "10", status: http.StatusBadRequest, message: MsgInvalidSaleID},
		{name: "invalid product id", saleID: "1", productID: "y", price: "10", status: http.StatusBadRequest, message: MsgInvalidProductID},
		{name: "sale missing", saleID: "9", productID: "3", price: "10", status: http.StatusNotFound, message: MsgSaleOrProductAbsent},
		{name: "product missing", saleID: "1", productID: "9", price: "10", status: http.StatusNotFound, message: MsgSaleOrProductAbsent},
		{name: "product not in sale", saleID: "1", productID: "4", price: "10", status: http.StatusBadRequest, message: MsgProductNotInSale},
		{name: "zero price", saleID: "1", productID: "3", price: "0", status: http.StatusBadRequest, message: MsgInvalidPrice},
		{name: "not a number", saleID: "1", productID: "3", price: "abc", status: http.StatusBadRequest, message: MsgInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			_, err := newTestService(repo, nil).UpdatePrice(context.Background(), tt.saleID, tt.productID, tt.price)
			requireAppError(t, err, tt.status, tt.message)
			assert.Empty(t, repo.priceUpdates)
		})
	}
}

func TestUpdatePrice(t *testing.T) {
	repo := newMockRepository()
	recorder := &events.Recorder{}

	item, err := newTestService(repo, recorder).UpdatePrice(context.Background(), "1", "3", "999.99")
	require.NoError(t, err)
	assert.Equal(t, 999.99, item.UnitPrice)
	assert.Equal(t, map[int64]float64{10: 999.99}, repo.priceUpdates)
	assert.Equal(t, []string{events.ProductSaleUpdated}, recorder.Types())
}

func TestUpdateAmount(t *testing.T) {
	repo := newMockRepository()

	_, err := newTestService(repo, nil).UpdateAmount(context.Background(), "1", "3", "2.5")
	requireAppError(t, err, http.StatusBadRequest, MsgInvalidAmount)

	item, err := newTestService(repo, nil).UpdateAmount(context.Background(), "1", "3", "20")
	require.NoError(t, err)
	assert.Equal(t, 20, item.Amount)
	assert.Equal(t, map[int64]int{10: 20}, repo.amountUpdate)
}

func TestUpdateAmount_PersistenceFailure(t *testing.T) {
	repo := newMockRepository()
	repo.updateErr = errors.New("down")

	_, err := newTestService(repo, nil).UpdateAmount(context.Background(), "1", "3", "2")
	requireAppError(t, err, http.StatusBadRequest, "")
}
