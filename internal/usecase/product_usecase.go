package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// GET /product/products の入力DTO
type ListProductsInput struct {
	Page       int
	Limit      int
	CategoryID *int64
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid categoryId")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		CategoryID: in.CategoryID,
		OnlyActive: true,
	})
	if err != nil {
		return ProductListOutput{}, Internal(err)
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, Internal(err)
	}

	//非公開は見せない
	if !p.Status {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return p, nil
}

type AdminProductInput struct {
	CategoryID            int64
	Name                  string
	Price                 decimal.Decimal
	Image                 string
	Description           string
	ShortDescription      string
	AdditionalInformation string
	Status                bool
	Options               json.RawMessage
	Color                 string
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminUserID int64, in AdminProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validateProduct(ctx, in); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Create(ctx, toProduct(0, in))
	if err != nil {
		return model.Product{}, Internal(err)
	}
	return p, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, adminUserID int64, productID int64, in AdminProductInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := u.validateProduct(ctx, in); err != nil {
		return err
	}

	err := u.productRepo.Update(ctx, toProduct(productID, in))
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return Internal(err)
	}
	return nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return Internal(err)
	}
	return nil
}

func (u *ProductUsecase) validateProduct(ctx context.Context, in AdminProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if len(in.Options) > 0 && !json.Valid(in.Options) {
		return NewHTTPError(http.StatusBadRequest, "options must be JSON")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "categoryId required")
	}

	//カテゴリの存在確認
	_, err := u.categoryRepo.FindByID(ctx, in.CategoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return Internal(err)
	}
	return nil
}

func toProduct(id int64, in AdminProductInput) model.Product {
	name := strings.TrimSpace(in.Name)
	return model.Product{
		ID:                    id,
		CategoryID:            in.CategoryID,
		Name:                  name,
		Slug:                  slug.Make(name),
		Price:                 in.Price.Round(2),
		Image:                 in.Image,
		Description:           in.Description,
		ShortDescription:      in.ShortDescription,
		AdditionalInformation: in.AdditionalInformation,
		Status:                in.Status,
		Options:               in.Options,
		Color:                 in.Color,
	}
}
