package usecase

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo  repo.ReviewRepository
	productRepo repo.ProductRepository
}

func NewReviewUsecase(reviewRepo repo.ReviewRepository, productRepo repo.ProductRepository) *ReviewUsecase {
	return &ReviewUsecase{reviewRepo: reviewRepo, productRepo: productRepo}
}

type AddReviewInput struct {
	UserID    int64
	ProductID int64
	Rating    int
	Review    string
}

type ReviewUserResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ReviewProductResponse struct {
	Name     string  `json:"name"`
	Category *string `json:"category"`
}

// user_id/product_idは返さない
type ReviewResponse struct {
	ID        int64                 `json:"id"`
	Rating    int                   `json:"rating"`
	Review    string                `json:"review"`
	Status    model.ReviewStatus    `json:"status"`
	CreatedAt time.Time             `json:"createdAt"`
	User      ReviewUserResponse    `json:"user"`
	Product   ReviewProductResponse `json:"product"`
}

type RatingSummaryResponse struct {
	ProductID int64   `json:"productId"`
	Average   float64 `json:"average"`
	Count     int64   `json:"count"`
}

func (u *ReviewUsecase) AddReview(ctx context.Context, in AddReviewInput) (model.Review, error) {
	if in.UserID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "productId is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Review{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return model.Review{}, Internal(err)
	}

	//承認されるまでは集計に入らない
	rv, err := u.reviewRepo.Create(ctx, model.Review{
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Review:    strings.TrimSpace(in.Review),
		Status:    model.ReviewStatusPending,
	})
	if err != nil {
		return model.Review{}, Internal(err)
	}
	return rv, nil
}

func (u *ReviewUsecase) ListReviews(ctx context.Context, f repo.ReviewListFilter) ([]ReviewResponse, error) {
	lines, err := u.reviewRepo.ListLines(ctx, f)
	if err != nil {
		return nil, Internal(err)
	}

	out := make([]ReviewResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, ReviewResponse{
			ID:        l.ID,
			Rating:    l.Rating,
			Review:    l.Review,
			Status:    l.Status,
			CreatedAt: l.CreatedAt,
			User:      ReviewUserResponse{Name: l.UserName, Email: l.UserEmail},
			Product:   ReviewProductResponse{Name: l.ProductName, Category: l.CategoryName},
		})
	}
	return out, nil
}

// 管理者によるレビューの承認・却下
func (u *ReviewUsecase) UpdateReviewStatus(ctx context.Context, reviewID int64, userID int64, status string) error {
	if reviewID <= 0 || userID <= 0 || strings.TrimSpace(status) == "" {
		return NewHTTPError(http.StatusBadRequest, "Missing required fields.")
	}
	st := model.ReviewStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	err := u.reviewRepo.UpdateStatus(ctx, reviewID, userID, st)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Review not found.")
	}
	if err != nil {
		return Internal(err)
	}
	return nil
}

func (u *ReviewUsecase) ProductRating(ctx context.Context, productID int64) (RatingSummaryResponse, error) {
	if productID <= 0 {
		return RatingSummaryResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	s, err := u.reviewRepo.RatingSummary(ctx, productID)
	if err != nil {
		return RatingSummaryResponse{}, Internal(err)
	}

	return RatingSummaryResponse{
		ProductID: productID,
		Average:   math.Round(s.Average*100) / 100,
		Count:     s.Count,
	}, nil
}
