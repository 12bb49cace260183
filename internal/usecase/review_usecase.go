package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo  repo.ReviewRepository
	productRepo repo.ProductRepository
}

// DI
func NewReviewUsecase(reviewRepo repo.ReviewRepository, productRepo repo.ProductRepository) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

type AddReviewInput struct {
	UserName string
	Rating   int
	Comment  string
}

// 商品のレビューを新しい順で取得
func (u *ReviewUsecase) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	if productID <= 0 {
		return []model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	//商品の存在チェック
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return []model.Review{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return []model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	reviews, err := u.reviewRepo.ListByProductID(ctx, productID)
	if err != nil {
		return []model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return reviews, nil
}

// レビュー投稿（評価は1〜5、コメントは必須で500文字まで）
func (u *ReviewUsecase) AddReview(ctx context.Context, userID string, productID int64, in AddReviewInput) (model.Review, error) {
	if strings.TrimSpace(userID) == "" {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "rating must be 1-5")
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "comment required")
	}
	if len(comment) > 500 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "comment too long")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return model.Review{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	review, err := u.reviewRepo.Create(ctx, model.Review{
		ProductID: productID,
		UserID:    userID,
		UserName:  strings.TrimSpace(in.UserName),
		Rating:    in.Rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return review, nil
}
