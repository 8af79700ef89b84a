package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"

	"github.com/gosimple/slug"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
}

func NewCategoryUsecase(categoryRepo repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

type CategoryInput struct {
	Name        string
	Description string
	Image       string
	Status      string
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	c, err := u.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return model.Category{}, Internal(err)
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	c, err := toCategory(0, in)
	if err != nil {
		return model.Category{}, err
	}

	created, err := u.categoryRepo.Create(ctx, c)
	if errors.Is(err, repo.ErrConflict) {
		return model.Category{}, NewHTTPError(http.StatusConflict, "Category already exists")
	}
	if err != nil {
		return model.Category{}, Internal(err)
	}
	return created, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	c, err := toCategory(id, in)
	if err != nil {
		return err
	}

	err = u.categoryRepo.Update(ctx, c)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if errors.Is(err, repo.ErrConflict) {
		return NewHTTPError(http.StatusConflict, "Category already exists")
	}
	if err != nil {
		return Internal(err)
	}
	return nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	err := u.categoryRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return Internal(err)
	}
	return nil
}

// 名前からslugを作る。statusは省略時active
func toCategory(id int64, in CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	status := model.CategoryStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	switch status {
	case "":
		status = model.CategoryStatusActive
	case model.CategoryStatusActive, model.CategoryStatusInactive:
	default:
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return model.Category{
		ID:          id,
		Name:        name,
		Slug:        slug.Make(name),
		Description: in.Description,
		Image:       in.Image,
		Status:      status,
	}, nil
}
