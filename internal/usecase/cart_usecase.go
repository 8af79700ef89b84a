package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"

	"github.com/shopspring/decimal"
)

// /cart の業務ロジック。
// 同じ商品の追加は数量加算せずに拒否する。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type CartProductResponse struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Category           *string `json:"category"`
	SingleProductPrice string  `json:"singleProductPrice"`
}

type CartUserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CartItemResponse struct {
	ID        int64               `json:"id"`
	Product   CartProductResponse `json:"product"`
	Quantity  int64               `json:"quantity"`
	UnitPrice string              `json:"unitPrice"`
	ItemTotal string              `json:"itemTotal"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	User      CartUserResponse    `json:"user"`
}

type CartResponse struct {
	Items          []CartItemResponse `json:"items"`
	TotalCartValue string             `json:"totalCartValue"`
}

type CartItemInput struct {
	UserID    int64
	ProductID int64
	Quantity  int64
}

func (u *CartUsecase) AddItem(ctx context.Context, in CartItemInput) (model.CartItem, error) {
	if err := validateCartKey(in.UserID, in.ProductID); err != nil {
		return model.CartItem{}, err
	}
	if in.Quantity < 1 {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
	}

	//既にあれば追加しない
	_, err := u.cartItemRepo.FindByUserAndProduct(ctx, in.UserID, in.ProductID)
	if err == nil {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "Item already exists in cart")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, Internal(err)
	}

	p, err := u.findProduct(ctx, in.ProductID)
	if err != nil {
		return model.CartItem{}, err
	}

	item, err := u.cartItemRepo.Create(ctx, model.CartItem{
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitPrice: p.Price,
	})
	//同時に追加された
	if errors.Is(err, repo.ErrConflict) {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "Item already exists in cart")
	}
	if err != nil {
		return model.CartItem{}, Internal(err)
	}
	return item, nil
}

// 明細と合計。金額は小数2桁の文字列で返す
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "userId is required")
	}

	lines, err := u.cartItemRepo.ListLinesByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, Internal(err)
	}

	total := decimal.Zero
	items := make([]CartItemResponse, 0, len(lines))
	for _, l := range lines {
		itemTotal := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
		total = total.Add(itemTotal)

		items = append(items, CartItemResponse{
			ID: l.ID,
			Product: CartProductResponse{
				ID:                 l.ProductID,
				Name:               l.ProductName,
				Category:           l.CategoryName,
				SingleProductPrice: l.ProductPrice.StringFixed(2),
			},
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			ItemTotal: itemTotal.StringFixed(2),
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
			User:      CartUserResponse{ID: l.UserID, Name: l.UserName},
		})
	}

	return CartResponse{
		Items:          items,
		TotalCartValue: total.StringFixed(2),
	}, nil
}

// 数量を変更し、単価を現在の商品価格で取り直す
func (u *CartUsecase) UpdateItem(ctx context.Context, in CartItemInput) error {
	if err := validateCartKey(in.UserID, in.ProductID); err != nil {
		return err
	}
	if in.Quantity < 1 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
	}

	p, err := u.findProduct(ctx, in.ProductID)
	if err != nil {
		return err
	}

	item, err := u.findItem(ctx, in.UserID, in.ProductID)
	if err != nil {
		return err
	}

	err = u.cartItemRepo.UpdateQuantityAndPrice(ctx, item.ID, in.Quantity, p.Price)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Item not found in cart")
	}
	if err != nil {
		return Internal(err)
	}
	return nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, productID int64) error {
	if err := validateCartKey(userID, productID); err != nil {
		return err
	}

	item, err := u.findItem(ctx, userID, productID)
	if err != nil {
		return err
	}

	err = u.cartItemRepo.DeleteByID(ctx, item.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Item not found in cart")
	}
	if err != nil {
		return Internal(err)
	}
	return nil
}

func (u *CartUsecase) findProduct(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, Internal(err)
	}
	return p, nil
}

func (u *CartUsecase) findItem(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	item, err := u.cartItemRepo.FindByUserAndProduct(ctx, userID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, NewHTTPError(http.StatusNotFound, "Item not found in cart")
	}
	if err != nil {
		return model.CartItem{}, Internal(err)
	}
	return item, nil
}

func validateCartKey(userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "userId is required")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "productId is required")
	}
	return nil
}
