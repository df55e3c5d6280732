package inventory

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/commerce-api/internal/pkg/apperror"
	"github.com/your-org/commerce-api/internal/pkg/logger"
)

type fakeRepository struct {
	stock     map[uint]int
	names     map[uint]string
	movements []Movement
	clock     time.Time
	lastList  *ListMovementsRequest
	listErr   error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		stock: map[uint]int{},
		names: map[uint]string{},
		clock: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepository) AdjustStock(_ context.Context, productID uint, delta int, notes *string) (int, error) {
	level, ok := f.stock[productID]
	if !ok {
		return 0, apperror.NotFound("Product not found")
	}
	level += delta
	f.stock[productID] = level
	refType := ReferenceTypeManualAdjustment
	f.clock = f.clock.Add(time.Minute)
	f.movements = append(f.movements, Movement{
		ID:            uint(len(f.movements) + 1),
		ProductID:     productID,
		MovementType:  MovementTypeAdjustment,
		Quantity:      delta,
		ReferenceType: &refType,
		Notes:         notes,
		CreatedAt:     f.clock,
	})
	return level, nil
}

func (f *fakeRepository) matching(req *ListMovementsRequest) []MovementResponse {
	var out []MovementResponse
	for _, m := range f.movements {
		if req.ProductID > 0 && m.ProductID != req.ProductID {
			continue
		}
		if req.MovementType != "" && m.MovementType != req.MovementType {
			continue
		}
		out = append(out, MovementResponse{
			ID:           m.ID,
			ProductID:    m.ProductID,
			ProductName:  f.names[m.ProductID],
			MovementType: m.MovementType,
			Quantity:     m.Quantity,
			CreatedAt:    m.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeRepository) ListMovements(_ context.Context, req *ListMovementsRequest) ([]MovementResponse, error) {
	f.lastList = req
	if f.listErr != nil {
		return nil, f.listErr
	}
	all := f.matching(req)
	if req.Offset >= len(all) {
		return nil, nil
	}
	end := req.Offset + req.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[req.Offset:end], nil
}

func (f *fakeRepository) CountMovements(_ context.Context, req *ListMovementsRequest) (int64, error) {
	return int64(len(f.matching(req))), nil
}

func TestAdjustInventory_RoundTrip(t *testing.T) {
	repo := newFakeRepository()
	repo.stock[1] = 12
	svc := NewService(repo, logger.Discard())

	up, err := svc.AdjustInventory(context.Background(), &AdjustInventoryRequest{ProductID: 1, Quantity: 5})
	require.NoError(t, err)
	assert.True(t, up.Success)
	assert.Equal(t, 17, up.NewStockLevel)

	down, err := svc.AdjustInventory(context.Background(), &AdjustInventoryRequest{ProductID: 1, Quantity: -5})
	require.NoError(t, err)
	assert.Equal(t, 12, down.NewStockLevel)

	require.Len(t, repo.movements, 2)
	assert.Equal(t, 5, repo.movements[0].Quantity)
	assert.Equal(t, -5, repo.movements[1].Quantity)
	for _, m := range repo.movements {
		assert.Equal(t, MovementTypeAdjustment, m.MovementType)
		assert.Equal(t, ReferenceTypeManualAdjustment, *m.ReferenceType)
	}
}

func TestAdjustInventory_CanGoNegative(t *testing.T) {
	repo := newFakeRepository()
	repo.stock[3] = 2
	svc := NewService(repo, logger.Discard())

	resp, err := svc.AdjustInventory(context.Background(), &AdjustInventoryRequest{ProductID: 3, Quantity: -7})
	require.NoError(t, err)
	assert.Equal(t, -5, resp.NewStockLevel)
}

func TestAdjustInventory_ProductNotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, logger.Discard())

	_, err := svc.AdjustInventory(context.Background(), &AdjustInventoryRequest{ProductID: 42, Quantity: 1})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, repo.movements)
}

func TestListMovements(t *testing.T) {
	repo := newFakeRepository()
	repo.stock[1], repo.stock[2] = 10, 10
	repo.names[1], repo.names[2] = "Arroz", "Frijol"
	svc := NewService(repo, logger.Discard())

	for _, adj := range []AdjustInventoryRequest{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: -1}, {ProductID: 1, Quantity: 4}} {
		adj := adj
		_, err := svc.AdjustInventory(context.Background(), &adj)
		require.NoError(t, err)
	}

	t.Run("default limit and newest first", func(t *testing.T) {
		resp, err := svc.ListMovements(context.Background(), &ListMovementsRequest{})
		require.NoError(t, err)
		assert.Equal(t, DefaultMovementsLimit, repo.lastList.Limit)
		assert.EqualValues(t, 3, resp.Total)
		require.Len(t, resp.Movements, 3)
		assert.Equal(t, 4, resp.Movements[0].Quantity)
		assert.Equal(t, "Arroz", resp.Movements[0].ProductName)
	})

	t.Run("pages by product", func(t *testing.T) {
		first, err := svc.ListMovements(context.Background(), &ListMovementsRequest{ProductID: 1, Limit: 1})
		require.NoError(t, err)
		second, err := svc.ListMovements(context.Background(), &ListMovementsRequest{ProductID: 1, Limit: 1, Offset: 1})
		require.NoError(t, err)

		require.Len(t, first.Movements, 1)
		require.Len(t, second.Movements, 1)
		assert.Equal(t, 4, first.Movements[0].Quantity)
		assert.Equal(t, 3, second.Movements[0].Quantity)
	})

	t.Run("empty page is an empty list", func(t *testing.T) {
		resp, err := svc.ListMovements(context.Background(), &ListMovementsRequest{MovementType: MovementTypeOut})
		require.NoError(t, err)
		assert.NotNil(t, resp.Movements)
		assert.Empty(t, resp.Movements)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := svc.ListMovements(context.Background(), &ListMovementsRequest{MovementType: "transfer"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("store failure", func(t *testing.T) {
		repo.listErr = errors.New("connection refused")
		defer func() { repo.listErr = nil }()

		_, err := svc.ListMovements(context.Background(), &ListMovementsRequest{})
		assert.ErrorIs(t, err, apperror.ErrInternal)
	})
}
