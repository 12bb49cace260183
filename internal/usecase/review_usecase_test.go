package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// mocks
// =====================

type ReviewRepoMock struct {
	mock.Mock
}

func (m *ReviewRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	reviews, _ := args.Get(0).([]model.Review)
	return reviews, args.Error(1)
}

func (m *ReviewRepoMock) Create(ctx context.Context, review model.Review) (model.Review, error) {
	args := m.Called(ctx, review)
	created, _ := args.Get(0).(model.Review)
	return created, args.Error(1)
}

// =====================
// tests
// =====================

func TestListReviews_Success(t *testing.T) {
	reviewRepo := new(ReviewRepoMock)
	productRepo := new(ProductRepoMock)

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(productWithStock(1, "Apple", 10, "3.50"), nil)
	reviewRepo.On("ListByProductID", mock.Anything, int64(1)).Return([]model.Review{
		{ID: 2, ProductID: 1, Rating: 5, Comment: "great"},
		{ID: 1, ProductID: 1, Rating: 3, Comment: "ok"},
	}, nil)

	uc := NewReviewUsecase(reviewRepo, productRepo)
	reviews, err := uc.ListReviews(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestListReviews_ProductNotFound(t *testing.T) {
	reviewRepo := new(ReviewRepoMock)
	productRepo := new(ProductRepoMock)

	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := NewReviewUsecase(reviewRepo, productRepo)
	_, err := uc.ListReviews(context.Background(), 99)

	assertHTTPErr(t, err, http.StatusNotFound)
	reviewRepo.AssertNotCalled(t, "ListByProductID", mock.Anything, mock.Anything)
}

func TestAddReview_Success(t *testing.T) {
	reviewRepo := new(ReviewRepoMock)
	productRepo := new(ProductRepoMock)

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(productWithStock(1, "Apple", 10, "3.50"), nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.ProductID == 1 && r.UserID == "user-1" && r.Rating == 4 && r.Comment == "tasty"
	})).Return(model.Review{ID: 10, ProductID: 1, UserID: "user-1", Rating: 4, Comment: "tasty"}, nil)

	uc := NewReviewUsecase(reviewRepo, productRepo)
	review, err := uc.AddReview(context.Background(), "user-1", 1, AddReviewInput{
		UserName: "Alice",
		Rating:   4,
		Comment:  " tasty ",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), review.ID)
	reviewRepo.AssertExpectations(t)
}

func TestAddReview_RatingOutOfRange(t *testing.T) {
	uc := NewReviewUsecase(new(ReviewRepoMock), new(ProductRepoMock))

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.AddReview(context.Background(), "user-1", 1, AddReviewInput{Rating: rating, Comment: "x"})
		assertHTTPErr(t, err, http.StatusBadRequest)
	}
}

func TestAddReview_CommentRequired(t *testing.T) {
	uc := NewReviewUsecase(new(ReviewRepoMock), new(ProductRepoMock))

	_, err := uc.AddReview(context.Background(), "user-1", 1, AddReviewInput{Rating: 4, Comment: "   "})

	assertHTTPErr(t, err, http.StatusBadRequest)
}

func TestAddReview_CommentTooLong(t *testing.T) {
	uc := NewReviewUsecase(new(ReviewRepoMock), new(ProductRepoMock))

	_, err := uc.AddReview(context.Background(), "user-1", 1, AddReviewInput{
		Rating:  4,
		Comment: strings.Repeat("a", 501),
	})

	assertHTTPErr(t, err, http.StatusBadRequest)
}

func TestAddReview_ProductNotFound(t *testing.T) {
	reviewRepo := new(ReviewRepoMock)
	productRepo := new(ProductRepoMock)

	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := NewReviewUsecase(reviewRepo, productRepo)
	_, err := uc.AddReview(context.Background(), "user-1", 99, AddReviewInput{Rating: 4, Comment: "x"})

	assertHTTPErr(t, err, http.StatusNotFound)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
