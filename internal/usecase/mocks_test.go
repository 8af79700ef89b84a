package usecase

import (
	"context"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository モック
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	// 入力をもとに返したいとき
	if fn, ok := args.Get(0).(func(context.Context, model.Order) model.Order); ok {
		return fn(ctx, order), args.Error(1)
	}
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderRepoMock) FindByPublicID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderRepoMock) FindWithUserByPublicID(ctx context.Context, orderID string) (model.OrderWithUser, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.OrderWithUser), args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) DeleteByPublicID(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(model.CartItem), args.Error(1)
}

func (m *CartItemRepoMock) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	return args.Get(0).(model.CartItem), args.Error(1)
}

func (m *CartItemRepoMock) ListLinesByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.CartLine), args.Error(1)
}

func (m *CartItemRepoMock) UpdateQuantityAndPrice(ctx context.Context, cartItemID int64, qty int64, unitPrice decimal.Decimal) error {
	args := m.Called(ctx, cartItemID, qty, unitPrice)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type AuditLogRepoMock struct{ mock.Mock }

func (m *AuditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditLogRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) Create(ctx context.Context, r model.Review) (model.Review, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(model.Review), args.Error(1)
}

func (m *ReviewRepoMock) ListLines(ctx context.Context, f repo.ReviewListFilter) ([]model.ReviewLine, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.ReviewLine), args.Error(1)
}

func (m *ReviewRepoMock) UpdateStatus(ctx context.Context, reviewID int64, userID int64, status model.ReviewStatus) error {
	args := m.Called(ctx, reviewID, userID, status)
	return args.Error(0)
}

func (m *ReviewRepoMock) RatingSummary(ctx context.Context, productID int64) (model.RatingSummary, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(model.RatingSummary), args.Error(1)
}

type UTMLinkRepoMock struct{ mock.Mock }

func (m *UTMLinkRepoMock) Create(ctx context.Context, link model.UTMLink) (model.UTMLink, error) {
	args := m.Called(ctx, link)
	return args.Get(0).(model.UTMLink), args.Error(1)
}

func (m *UTMLinkRepoMock) List(ctx context.Context, f repo.UTMLinkFilter) ([]model.UTMLink, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.UTMLink), args.Error(1)
}

var (
	_ repo.OrderRepository    = (*OrderRepoMock)(nil)
	_ repo.CartItemRepository = (*CartItemRepoMock)(nil)
	_ repo.AuditLogRepository = (*AuditLogRepoMock)(nil)
	_ repo.UserRepository     = (*UserRepoMock)(nil)
	_ repo.ProductRepository  = (*ProductRepoMock)(nil)
	_ repo.CategoryRepository = (*CategoryRepoMock)(nil)
	_ repo.ReviewRepository   = (*ReviewRepoMock)(nil)
	_ repo.UTMLinkRepository  = (*UTMLinkRepoMock)(nil)
)

// =====================
// TxManager フェイク
// =====================

type fakeTxRepos struct {
	orders    *OrderRepoMock
	cartItems *CartItemRepoMock
	auditLogs *AuditLogRepoMock
}

func (r *fakeTxRepos) Orders() repo.OrderRepository       { return r.orders }
func (r *fakeTxRepos) CartItems() repo.CartItemRepository { return r.cartItems }
func (r *fakeTxRepos) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

// fnの結果でcommit/rollbackを数える
type fakeTxManager struct {
	repos     *fakeTxRepos
	commits   int
	rollbacks int
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	if err := fn(m.repos); err != nil {
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

// 決まった順にIDを返す
type stubOrderIDGenerator struct {
	ids   []string
	calls int
}

func (g *stubOrderIDGenerator) NewOrderID() (string, error) {
	id := g.ids[g.calls%len(g.ids)]
	g.calls++
	return id, nil
}
