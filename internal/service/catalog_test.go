package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eskiden/marketplace/internal/domain"
	"github.com/eskiden/marketplace/internal/event"
	apperrors "github.com/eskiden/marketplace/pkg/errors"
	pkgkafka "github.com/eskiden/marketplace/pkg/kafka"
)

// --- Mock Item Repository ---

type mockItemRepository struct {
	mock.Mock
}

func (m *mockItemRepository) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *mockItemRepository) List(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *mockItemRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockItemRepository) UpdateReviews(ctx context.Context, id string, reviews []domain.Review, rating float64, prev []domain.Review) error {
	args := m.Called(ctx, id, reviews, rating, prev)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEventProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func newTestCatalogService(repo *mockItemRepository) *CatalogService {
	return NewCatalogService(repo, newTestEventProducer(), newTestLogger())
}

func validCreateItemInput() *CreateItemInput {
	return &CreateItemInput{
		Name:        "Blue Train",
		Category:    domain.CategoryVinyls,
		Description: "Coltrane, 1958",
		Price:       85.5,
		Seller:      "alice",
		Image:       "https://example.com/bluetrain.jpg",
		Attribute:   68,
	}
}

// --- CreateItem Tests ---

func TestCreateItem_Success(t *testing.T) {
	repo := new(mockItemRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Item")).Return(nil)

	item, err := svc.CreateItem(ctx, validCreateItemInput())

	require.NoError(t, err)
	require.NotNil(t, item)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Blue Train", item.Name)
	assert.Equal(t, domain.CategoryVinyls, item.Category)
	assert.Zero(t, item.Rating)
	assert.NotNil(t, item.Reviews)
	assert.Empty(t, item.Reviews)
	require.NotNil(t, item.Attribute)
	assert.Equal(t, "age", item.Attribute.Key)
	assert.Equal(t, 68, item.Attribute.Value)
	assert.NotZero(t, item.CreatedAt)

	repo.AssertExpectations(t)
}

func TestCreateItem_UnlistedCategoryHasNoAttribute(t *testing.T) {
	repo := new(mockItemRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Item")).Return(nil)

	input := validCreateItemInput()
	input.Category = domain.CategoryOther
	input.Attribute = "should be dropped"

	item, err := svc.CreateItem(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, item.Attribute)
}

func TestCreateItem_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateItemInput)
	}{
		{"name", func(in *CreateItemInput) { in.Name = "" }},
		{"category", func(in *CreateItemInput) { in.Category = "" }},
		{"description", func(in *CreateItemInput) { in.Description = "" }},
		{"seller", func(in *CreateItemInput) { in.Seller = "" }},
		{"image", func(in *CreateItemInput) { in.Image = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockItemRepository)
			svc := newTestCatalogService(repo)

			input := validCreateItemInput()
			tc.mutate(input)

			item, err := svc.CreateItem(context.Background(), input)

			assert.Nil(t, item)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateItem_NegativePrice(t *testing.T) {
	repo := new(mockItemRepository)
	svc := newTestCatalogService(repo)

	input := validCreateItemInput()
	input.Price = -1

	item, err := svc.CreateItem(context.Background(), input)

	assert.Nil(t, item)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateItem_ZeroPriceRejected(t *testing.T) {
	repo := new(mockItemRepository)
	svc := newTestCatalogService(repo)

	// A zero price is indistinguishable from an omitted one; both fail the
	// required-field check.
	input := validCreateItemInput()
	input.Price = 0

	item, err := svc.CreateItem(context.Background(), input)

	assert.Nil(t, item)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateItem_RepositoryError(t *testing.T) {
	repo := new(mockItemRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Item")).Return(errors.New("connection refused"))

	item, err := svc.CreateItem(ctx, validCreateItemInput())

	assert.Nil(t, item)
	assert.Error(t, err)
}

// --- ListItems Tests ---

func TestListItems_Success(t *testing.T) {
	repo := new(mockItemRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	stored := []domain.Item{
		{ID: "i1", Name: "Blue Train"},
		{ID: "i2", Name: "Desk"},
	}
	repo.On("List", ctx).Return(stored, nil)

	items, err := svc.ListItems(ctx)

	require.NoError(t, err)
	assert.Equal(t, stored, items)
}

func TestListItems_Empty(t *testing.T) {
	repo := new(mockItemRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("List", ctx).Return([]domain.Item{}, nil)

	items, err := svc.ListItems(ctx)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

// --- DeleteItem Tests ---

func TestDeleteItem_Success(t *testing.T) {
	repo := new(mockItemRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "i1").Return(nil)

	err := svc.DeleteItem(ctx, "i1")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteItem_NotFound(t *testing.T) {
	repo := new(mockItemRepository)
	svc := newTestCatalogService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "missing").Return(apperrors.NotFound("item", "missing"))

	err := svc.DeleteItem(ctx, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
