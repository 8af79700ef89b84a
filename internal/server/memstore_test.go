package server_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"
	"gharplans/internal/server"

	"github.com/shopspring/decimal"
)

// =====================
// メモリ上のDB（HTTPテスト用）
// =====================

type memStore struct {
	mu  sync.Mutex
	seq int64

	users      map[int64]model.User
	categories map[int64]model.Category
	products   map[int64]model.Product
	cartItems  map[int64]model.CartItem
	orders     map[string]model.Order
	audits     []model.AuditLog
	reviews    map[int64]model.Review
	utmLinks   []model.UTMLink

	// 障害を起こしたいとき用
	failOrderInsert error
	failCartClear   error

	// 注文INSERT後、カート削除前に別リクエストが割り込む
	afterOrderInsert func()
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]model.User{},
		categories: map[int64]model.Category{},
		products:   map[int64]model.Product{},
		cartItems:  map[int64]model.CartItem{},
		orders:     map[string]model.Order{},
		reviews:    map[int64]model.Review{},
	}
}

func (s *memStore) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *memStore) repositories() server.Repositories {
	return server.Repositories{
		Users:      memUsers{s},
		Categories: memCategories{s},
		Products:   memProducts{s},
		CartItems:  memCart{s},
		Orders:     memOrders{s},
		AuditLogs:  memAudits{s},
		Reviews:    memReviews{s},
		UTMLinks:   memUTM{s},
		Tx:         memTx{s},
	}
}

func (s *memStore) cartCount(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.cartItems {
		if it.UserID == userID {
			n++
		}
	}
	return n
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// =====================
// Tx: fnが失敗したら注文・カート・監査ログを元に戻す
// =====================

type memTx struct{ s *memStore }

type memSnapshot struct {
	cartItems map[int64]model.CartItem
	orders    map[string]model.Order
	audits    []model.AuditLog
}

func (t memTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	t.s.mu.Lock()
	snap := memSnapshot{
		cartItems: make(map[int64]model.CartItem, len(t.s.cartItems)),
		orders:    make(map[string]model.Order, len(t.s.orders)),
		audits:    append([]model.AuditLog(nil), t.s.audits...),
	}
	for k, v := range t.s.cartItems {
		snap.cartItems[k] = v
	}
	for k, v := range t.s.orders {
		snap.orders[k] = v
	}
	t.s.mu.Unlock()

	if err := fn(memTxRepos{t.s}); err != nil {
		t.s.mu.Lock()
		t.s.cartItems = snap.cartItems
		t.s.orders = snap.orders
		t.s.audits = snap.audits
		t.s.mu.Unlock()
		return err
	}
	return nil
}

type memTxRepos struct{ s *memStore }

func (r memTxRepos) Orders() repo.OrderRepository       { return memOrders{r.s} }
func (r memTxRepos) CartItems() repo.CartItemRepository { return memCart{r.s} }
func (r memTxRepos) AuditLogs() repo.AuditLogRepository { return memAudits{r.s} }

// =====================
// users
// =====================

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repo.ErrConflict
		}
	}
	user.ID = r.s.nextID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, found := r.s.users[userID]
	if !found {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r memUsers) Update(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, found := r.s.users[user.ID]; !found {
		return repo.ErrNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}

// =====================
// categories / products
// =====================

type memCategories struct{ s *memStore }

func (r memCategories) List(ctx context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCategories) FindByID(ctx context.Context, id int64) (model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, found := r.s.categories[id]
	if !found {
		return model.Category{}, repo.ErrNotFound
	}
	return c, nil
}

func (r memCategories) Create(ctx context.Context, c model.Category) (model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Slug == c.Slug {
			return model.Category{}, repo.ErrConflict
		}
	}
	c.ID = r.s.nextID()
	r.s.categories[c.ID] = c
	return c, nil
}

func (r memCategories) Update(ctx context.Context, c model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, found := r.s.categories[c.ID]; !found {
		return repo.ErrNotFound
	}
	r.s.categories[c.ID] = c
	return nil
}

func (r memCategories) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, found := r.s.categories[id]; !found {
		return repo.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

type memProducts struct{ s *memStore }

func (r memProducts) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := make([]model.Product, 0)
	for _, p := range r.s.products {
		if q.OnlyActive && !p.Status {
			continue
		}
		if q.CategoryID != nil && p.CategoryID != *q.CategoryID {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	from := (q.Page - 1) * q.Limit
	if from > len(matched) {
		from = len(matched)
	}
	to := from + q.Limit
	if to > len(matched) {
		to = len(matched)
	}
	return matched[from:to], total, nil
}

func (r memProducts) FindByID(ctx context.Context, id int64) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, found := r.s.products[id]
	if !found {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r memProducts) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID()
	r.s.products[p.ID] = p
	return p, nil
}

func (r memProducts) Update(ctx context.Context, p model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, found := r.s.products[p.ID]; !found {
		return repo.ErrNotFound
	}
	r.s.products[p.ID] = p
	return nil
}

func (r memProducts) SoftDelete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, found := r.s.products[id]; !found {
		return repo.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// =====================
// cart_items
// =====================

type memCart struct{ s *memStore }

func (r memCart) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.cartItems {
		if it.UserID == item.UserID && it.ProductID == item.ProductID {
			return model.CartItem{}, repo.ErrConflict
		}
	}
	item.ID = r.s.nextID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.s.cartItems[item.ID] = item
	return item, nil
}

func (r memCart) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.cartItems {
		if it.UserID == userID && it.ProductID == productID {
			return it, nil
		}
	}
	return model.CartItem{}, repo.ErrNotFound
}

func (r memCart) ListLinesByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := make([]model.CartLine, 0)
	for _, it := range r.s.cartItems {
		if it.UserID != userID {
			continue
		}
		p := r.s.products[it.ProductID]
		line := model.CartLine{
			ID:           it.ID,
			UserID:       it.UserID,
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			ProductName:  p.Name,
			ProductPrice: p.Price,
			UserName:     r.s.users[it.UserID].Name,
			CreatedAt:    it.CreatedAt,
			UpdatedAt:    it.UpdatedAt,
		}
		if c, found := r.s.categories[p.CategoryID]; found {
			name := c.Name
			line.CategoryName = &name
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func (r memCart) UpdateQuantityAndPrice(ctx context.Context, cartItemID int64, qty int64, unitPrice decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, found := r.s.cartItems[cartItemID]
	if !found {
		return repo.ErrNotFound
	}
	it.Quantity = qty
	it.UnitPrice = unitPrice
	r.s.cartItems[cartItemID] = it
	return nil
}

func (r memCart) DeleteByID(ctx context.Context, cartItemID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, found := r.s.cartItems[cartItemID]; !found {
		return repo.ErrNotFound
	}
	delete(r.s.cartItems, cartItemID)
	return nil
}

func (r memCart) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failCartClear != nil {
		return 0, r.s.failCartClear
	}
	var n int64
	for id, it := range r.s.cartItems {
		if it.UserID == userID {
			delete(r.s.cartItems, id)
			n++
		}
	}
	return n, nil
}

// =====================
// orders / audit_logs
// =====================

type memOrders struct{ s *memStore }

func (r memOrders) Create(ctx context.Context, order model.Order) (model.Order, error) {
	created, err := r.insert(order)
	if err == nil && r.s.afterOrderInsert != nil {
		r.s.afterOrderInsert()
	}
	return created, err
}

func (r memOrders) insert(order model.Order) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failOrderInsert != nil {
		return model.Order{}, r.s.failOrderInsert
	}
	if _, dup := r.s.orders[order.OrderID]; dup {
		return model.Order{}, repo.ErrConflict
	}
	order.ID = r.s.nextID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.s.orders[order.OrderID] = order
	return order, nil
}

func (r memOrders) FindByPublicID(ctx context.Context, orderID string) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, found := r.s.orders[orderID]
	if !found {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r memOrders) FindWithUserByPublicID(ctx context.Context, orderID string) (model.OrderWithUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, found := r.s.orders[orderID]
	if !found {
		return model.OrderWithUser{}, repo.ErrNotFound
	}
	out := model.OrderWithUser{Order: o}
	if u, found := r.s.users[o.UserID]; found {
		out.User = &model.OrderUser{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out, nil
}

func (r memOrders) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := make([]model.Order, 0)
	for _, o := range r.s.orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	from := (page - 1) * limit
	if from > len(matched) {
		from = len(matched)
	}
	to := from + limit
	if to > len(matched) {
		to = len(matched)
	}
	return matched[from:to], total, nil
}

func (r memOrders) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, found := r.s.orders[orderID]
	if !found {
		return repo.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	r.s.orders[orderID] = o
	return nil
}

func (r memOrders) DeleteByPublicID(ctx context.Context, orderID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, found := r.s.orders[orderID]; !found {
		return false, nil
	}
	delete(r.s.orders, orderID)
	return true, nil
}

type memAudits struct{ s *memStore }

func (r memAudits) Create(ctx context.Context, log model.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	log.ID = r.s.nextID()
	r.s.audits = append(r.s.audits, log)
	return nil
}

func (r memAudits) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.AuditLog, 0)
	for i := len(r.s.audits) - 1; i >= 0; i-- {
		l := r.s.audits[i]
		if f.ResourceType != nil && l.ResourceType != *f.ResourceType {
			continue
		}
		if f.ResourceID != nil && l.ResourceID != *f.ResourceID {
			continue
		}
		if f.Action != nil && l.Action != *f.Action {
			continue
		}
		if f.ActorUserID != nil && l.ActorUserID != *f.ActorUserID {
			continue
		}
		out = append(out, l)
	}
	if f.Offset >= len(out) {
		return []model.AuditLog{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

// =====================
// reviews / utm_links
// =====================

type memReviews struct{ s *memStore }

func (r memReviews) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv.ID = r.s.nextID()
	rv.CreatedAt = time.Now()
	rv.UpdatedAt = rv.CreatedAt
	r.s.reviews[rv.ID] = rv
	return rv, nil
}

func (r memReviews) ListLines(ctx context.Context, f repo.ReviewListFilter) ([]model.ReviewLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := make([]model.ReviewLine, 0)
	for _, rv := range r.s.reviews {
		if f.ID != nil && rv.ID != *f.ID {
			continue
		}
		if f.UserID != nil && rv.UserID != *f.UserID {
			continue
		}
		if f.ProductID != nil && rv.ProductID != *f.ProductID {
			continue
		}
		u := r.s.users[rv.UserID]
		p := r.s.products[rv.ProductID]
		line := model.ReviewLine{
			ID:          rv.ID,
			Rating:      rv.Rating,
			Review:      rv.Review,
			Status:      rv.Status,
			CreatedAt:   rv.CreatedAt,
			UserName:    u.Name,
			UserEmail:   u.Email,
			ProductName: p.Name,
		}
		if c, found := r.s.categories[p.CategoryID]; found {
			name := c.Name
			line.CategoryName = &name
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func (r memReviews) UpdateStatus(ctx context.Context, reviewID int64, userID int64, status model.ReviewStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, found := r.s.reviews[reviewID]
	if !found || rv.UserID != userID {
		return repo.ErrNotFound
	}
	rv.Status = status
	r.s.reviews[reviewID] = rv
	return nil
}

func (r memReviews) RatingSummary(ctx context.Context, productID int64) (model.RatingSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int
	var count int64
	for _, rv := range r.s.reviews {
		if rv.ProductID == productID && rv.Status == model.ReviewStatusApproved {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return model.RatingSummary{}, nil
	}
	return model.RatingSummary{Average: float64(sum) / float64(count), Count: count}, nil
}

type memUTM struct{ s *memStore }

func (r memUTM) Create(ctx context.Context, link model.UTMLink) (model.UTMLink, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	link.ID = r.s.nextID()
	r.s.utmLinks = append(r.s.utmLinks, link)
	return link, nil
}

func (r memUTM) List(ctx context.Context, f repo.UTMLinkFilter) ([]model.UTMLink, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.UTMLink, 0)
	for _, l := range r.s.utmLinks {
		if f.ID != nil && l.ID != *f.ID {
			continue
		}
		if f.Source != "" && !strings.EqualFold(l.Source, f.Source) {
			continue
		}
		if f.CouponCode != "" && (l.CouponCode == nil || *l.CouponCode != f.CouponCode) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
