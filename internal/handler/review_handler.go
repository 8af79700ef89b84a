package handler

import (
	"net/http"

	repo "gharplans/internal/repository"
	"gharplans/internal/usecase"
	"gharplans/internal/validator"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type ReviewCreateRequest struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Review    string `json:"review" validate:"max=5000"`
}

type ReviewStatusRequest struct {
	ReviewID int64  `json:"reviewId"`
	UserID   int64  `json:"userId"`
	Status   string `json:"status"`
}

// 投稿はuser、一覧はuser/admin、承認はadmin
type ReviewGuards struct {
	User        []echo.MiddlewareFunc
	UserOrAdmin []echo.MiddlewareFunc
	Admin       []echo.MiddlewareFunc
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, guards ReviewGuards) {
	e.POST("/reviews", h.create, guards.User...)
	e.GET("/reviews", h.list, guards.UserOrAdmin...)
	e.PUT("/reviews", h.updateStatus, guards.Admin...)
	e.GET("/reviews/products/:productId/rating", h.rating)
}

func (h *ReviewHandler) create(c echo.Context) error {
	userID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req ReviewCreateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	rv, err := h.uc.AddReview(c.Request().Context(), usecase.AddReviewInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Review:    req.Review,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "Review added successfully.", rv)
}

func (h *ReviewHandler) list(c echo.Context) error {
	var f repo.ReviewListFilter
	var valid bool

	if f.ID, valid = queryInt64Ptr(c, "id"); !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if f.UserID, valid = queryInt64Ptr(c, "userId"); !valid {
		return fail(c, http.StatusBadRequest, "invalid userId")
	}
	if f.ProductID, valid = queryInt64Ptr(c, "productId"); !valid {
		return fail(c, http.StatusBadRequest, "invalid productId")
	}

	out, err := h.uc.ListReviews(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Reviews fetched successfully", out)
}

// 必須チェックはusecase側（Missing required fields.）
func (h *ReviewHandler) updateStatus(c echo.Context) error {
	var req ReviewStatusRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.uc.UpdateReviewStatus(c.Request().Context(), req.ReviewID, req.UserID, req.Status); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Review updated successfully.", nil)
}

func (h *ReviewHandler) rating(c echo.Context) error {
	productID, valid := parseIDParam(c, "productId")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid productId")
	}

	out, err := h.uc.ProductRating(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Rating fetched successfully.", out)
}
