package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viant/afs"
	"go.uber.org/zap"
	dbm "storefront/internal/models/db_models"
	"storefront/internal/repositories"
)

func stamp(b *dbm.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt == 0 {
		b.CreatedAt = time.Now().Unix()
	}
}

// ---------- accounts ----------

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*dbm.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[uuid.UUID]*dbm.Account{}}
}

func (f *fakeAccountRepo) Insert(_ context.Context, a *dbm.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stamp(&a.BaseModel)
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) FindById(_ context.Context, id uuid.UUID) (*dbm.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*dbm.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == strings.ToLower(email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) mutate(id uuid.UUID, fn func(a *dbm.Account)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return repositories.ErrConditionFailed
	}
	fn(a)
	return nil
}

func (f *fakeAccountRepo) UpdateProfile(_ context.Context, id uuid.UUID, fullName, whatsApp string) error {
	return f.mutate(id, func(a *dbm.Account) { a.FullName, a.WhatsApp = fullName, whatsApp })
}

func (f *fakeAccountRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	return f.mutate(id, func(a *dbm.Account) { a.PasswordHash = hash })
}

func (f *fakeAccountRepo) UpdateRole(_ context.Context, id uuid.UUID, role dbm.Role) error {
	return f.mutate(id, func(a *dbm.Account) { a.Role = role })
}

func (f *fakeAccountRepo) CountByRole(_ context.Context, role dbm.Role) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.accounts {
		if a.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeAccountRepo) List(_ context.Context, search string, page, pageSize int) ([]dbm.Account, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbm.Account
	for _, a := range f.accounts {
		if search == "" || strings.Contains(strings.ToLower(a.FullName+" "+a.Email), strings.ToLower(search)) {
			out = append(out, *a)
		}
	}
	total := int64(len(out))
	start := (page - 1) * pageSize
	if start >= len(out) {
		return []dbm.Account{}, total, nil
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

// ---------- subscriptions ----------

type fakeSubRepo struct {
	current *dbm.Subscription
	expired int64
}

func (f *fakeSubRepo) FindCurrent(_ context.Context, _ uuid.UUID, _ int64) (*dbm.Subscription, error) {
	return f.current, nil
}

func (f *fakeSubRepo) ExpireEnded(_ context.Context, _ int64) (int64, error) {
	return f.expired, nil
}

// ---------- plans ----------

type fakePlanRepo struct {
	plans     map[uuid.UUID]*dbm.Plan
	hasOrders map[uuid.UUID]bool
}

func newFakePlanRepo(plans ...*dbm.Plan) *fakePlanRepo {
	f := &fakePlanRepo{plans: map[uuid.UUID]*dbm.Plan{}, hasOrders: map[uuid.UUID]bool{}}
	for _, p := range plans {
		stamp(&p.BaseModel)
		f.plans[p.ID] = p
	}
	return f
}

func (f *fakePlanRepo) GetPlanById(_ context.Context, id uuid.UUID) (*dbm.Plan, error) {
	if p, ok := f.plans[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePlanRepo) GetActivePlans(_ context.Context) ([]dbm.Plan, error) {
	var out []dbm.Plan
	for _, p := range f.plans {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceMinor < out[j].PriceMinor })
	return out, nil
}

func (f *fakePlanRepo) GetAllPlans(_ context.Context) ([]dbm.Plan, error) {
	var out []dbm.Plan
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlanRepo) Create(_ context.Context, p *dbm.Plan) error {
	stamp(&p.BaseModel)
	f.plans[p.ID] = p
	return nil
}

func (f *fakePlanRepo) Save(_ context.Context, p *dbm.Plan) error {
	cp := *p
	f.plans[p.ID] = &cp
	return nil
}

func (f *fakePlanRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.plans[id]; !ok {
		return repositories.ErrConditionFailed
	}
	delete(f.plans, id)
	return nil
}

func (f *fakePlanRepo) HasOrders(_ context.Context, id uuid.UUID) (bool, error) {
	return f.hasOrders[id], nil
}

// ---------- coupons ----------

type fakeCouponRepo struct {
	mu      sync.Mutex
	coupons map[uuid.UUID]*dbm.Coupon
}

func newFakeCouponRepo(coupons ...*dbm.Coupon) *fakeCouponRepo {
	f := &fakeCouponRepo{coupons: map[uuid.UUID]*dbm.Coupon{}}
	for _, c := range coupons {
		stamp(&c.BaseModel)
		f.coupons[c.ID] = c
	}
	return f
}

func (f *fakeCouponRepo) FindByCode(_ context.Context, code string) (*dbm.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.coupons {
		if c.Code == strings.ToUpper(strings.TrimSpace(code)) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCouponRepo) FindById(_ context.Context, id uuid.UUID) (*dbm.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.coupons[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeCouponRepo) List(_ context.Context) ([]dbm.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbm.Coupon
	for _, c := range f.coupons {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCouponRepo) Create(_ context.Context, c *dbm.Coupon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stamp(&c.BaseModel)
	f.coupons[c.ID] = c
	return nil
}

func (f *fakeCouponRepo) Save(_ context.Context, c *dbm.Coupon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur := f.coupons[c.ID]
	cp := *c
	cp.UsageCount = cur.UsageCount
	f.coupons[c.ID] = &cp
	return nil
}

func (f *fakeCouponRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.coupons[id]; !ok {
		return repositories.ErrConditionFailed
	}
	delete(f.coupons, id)
	return nil
}

// redeem mirrors the guarded usage_count increment.
func (f *fakeCouponRepo) redeem(id uuid.UUID, now int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.coupons[id]
	if !ok || !c.IsActive || (c.MaxUses > 0 && c.UsageCount >= c.MaxUses) || (c.ExpiresAt != nil && *c.ExpiresAt <= now) {
		return false
	}
	c.UsageCount++
	return true
}

// ---------- payment methods ----------

type fakeMethodRepo struct {
	methods map[uuid.UUID]*dbm.PaymentMethod
}

func newFakeMethodRepo(methods ...*dbm.PaymentMethod) *fakeMethodRepo {
	f := &fakeMethodRepo{methods: map[uuid.UUID]*dbm.PaymentMethod{}}
	for _, m := range methods {
		stamp(&m.BaseModel)
		f.methods[m.ID] = m
	}
	return f
}

func (f *fakeMethodRepo) FindById(_ context.Context, id uuid.UUID) (*dbm.PaymentMethod, error) {
	if m, ok := f.methods[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeMethodRepo) ListActive(_ context.Context) ([]dbm.PaymentMethod, error) {
	var out []dbm.PaymentMethod
	for _, m := range f.methods {
		if m.IsActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMethodRepo) ListAll(_ context.Context) ([]dbm.PaymentMethod, error) {
	var out []dbm.PaymentMethod
	for _, m := range f.methods {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMethodRepo) Create(_ context.Context, m *dbm.PaymentMethod) error {
	stamp(&m.BaseModel)
	f.methods[m.ID] = m
	return nil
}

func (f *fakeMethodRepo) Save(_ context.Context, m *dbm.PaymentMethod) error {
	cp := *m
	f.methods[m.ID] = &cp
	return nil
}

func (f *fakeMethodRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.methods[id]; !ok {
		return repositories.ErrConditionFailed
	}
	delete(f.methods, id)
	return nil
}

// ---------- orders + payments ----------

// fakeStore backs both the order and payment fakes so preloads stay consistent.
type fakeStore struct {
	mu            sync.Mutex
	orders        map[uuid.UUID]*dbm.Order
	payments      []*dbm.Payment
	subscriptions []dbm.Subscription
	accounts      *fakeAccountRepo
	plans         *fakePlanRepo
	coupons       *fakeCouponRepo
	methods       *fakeMethodRepo
	reviewErr     error
}

func newFakeStore(accounts *fakeAccountRepo, plans *fakePlanRepo, coupons *fakeCouponRepo, methods *fakeMethodRepo) *fakeStore {
	return &fakeStore{
		orders:   map[uuid.UUID]*dbm.Order{},
		accounts: accounts,
		plans:    plans,
		coupons:  coupons,
		methods:  methods,
	}
}

type fakeOrderRepo struct{ s *fakeStore }

type fakePaymentRepo struct{ s *fakeStore }

func (s *fakeStore) hydrate(o *dbm.Order) dbm.Order {
	cp := *o
	if p, ok := s.plans.plans[o.PlanID]; ok {
		cp.Plan = *p
	}
	if a, ok := s.accounts.accounts[o.AccountID]; ok {
		cp.Account = *a
	}
	cp.Payments = nil
	for i := len(s.payments) - 1; i >= 0; i-- {
		if s.payments[i].OrderID == o.ID {
			pay := *s.payments[i]
			if m, ok := s.methods.methods[pay.PaymentMethodID]; ok {
				pay.PaymentMethod = *m
			}
			cp.Payments = append(cp.Payments, pay)
		}
	}
	return cp
}

func (r *fakeOrderRepo) Create(_ context.Context, o *dbm.Order, now int64) error {
	if o.CouponID != nil && !r.s.coupons.redeem(*o.CouponID, now) {
		return repositories.ErrConditionFailed
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&o.BaseModel)
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindById(_ context.Context, id uuid.UUID) (*dbm.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	h := r.s.hydrate(o)
	return &h, nil
}

func (r *fakeOrderRepo) List(_ context.Context, q repositories.OrderQuery) ([]dbm.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []dbm.Order
	for _, o := range r.s.orders {
		if q.AccountID != nil && o.AccountID != *q.AccountID {
			continue
		}
		if q.Status != "" && string(o.Status) != q.Status {
			continue
		}
		out = append(out, r.s.hydrate(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Cancel(_ context.Context, id, accountID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.AccountID != accountID || o.Status != dbm.OrderPending {
		return repositories.ErrConditionFailed
	}
	for _, p := range r.s.payments {
		if p.OrderID == id && p.Status == dbm.PaymentVerified {
			return repositories.ErrConditionFailed
		}
	}
	o.Status = dbm.OrderCancelled
	return nil
}

func (r *fakeOrderRepo) ApplyReview(_ context.Context, u repositories.ReviewUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.reviewErr != nil {
		return r.s.reviewErr
	}
	o, ok := r.s.orders[u.OrderID]
	if !ok || o.Status != u.From {
		return repositories.ErrConditionFailed
	}
	o.Status = u.To
	o.ReviewNote = u.Note
	o.ReviewedBy = &u.ReviewerID
	o.ReviewedAt = &u.At
	if u.To == dbm.OrderCompleted {
		o.CompletedAt = &u.At
	}
	if u.PaymentStatus != "" {
		for _, p := range r.s.payments {
			if p.OrderID == u.OrderID && p.Status == dbm.PaymentPending {
				p.Status = u.PaymentStatus
			}
		}
	}
	if u.Grant != nil {
		var latest int64
		for _, sub := range r.s.subscriptions {
			if sub.AccountID == u.Grant.AccountID && sub.EndsAt > latest {
				latest = sub.EndsAt
			}
		}
		start, end := u.Grant.Window(latest)
		r.s.subscriptions = append(r.s.subscriptions, dbm.Subscription{
			AccountID: u.Grant.AccountID,
			PlanID:    u.Grant.PlanID,
			OrderID:   u.OrderID,
			Status:    dbm.SubStatusActive,
			StartsAt:  start,
			EndsAt:    end,
		})
	}
	return nil
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context, accountID *uuid.UUID) ([]repositories.StatusCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[dbm.OrderStatus]int64{}
	for _, o := range r.s.orders {
		if accountID == nil || o.AccountID == *accountID {
			counts[o.Status]++
		}
	}
	var out []repositories.StatusCount
	for s, n := range counts {
		out = append(out, repositories.StatusCount{Status: s, Count: n})
	}
	return out, nil
}

func (r *fakeOrderRepo) Recent(ctx context.Context, accountID *uuid.UUID, limit int) ([]dbm.Order, error) {
	orders, _, err := r.List(ctx, repositories.OrderQuery{AccountID: accountID})
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, err
}

func (r *fakePaymentRepo) CreateForOrder(_ context.Context, p *dbm.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[p.OrderID]
	if !ok || o.Status != dbm.OrderPending {
		return repositories.ErrConditionFailed
	}
	for _, existing := range r.s.payments {
		if existing.OrderID == p.OrderID && existing.Status == dbm.PaymentPending {
			return repositories.ErrPendingPaymentExists
		}
		if existing.PaymentMethodID == p.PaymentMethodID && existing.TransactionID == p.TransactionID && existing.Status != dbm.PaymentRejected {
			return repositories.ErrTransactionIDTaken
		}
	}
	stamp(&p.BaseModel)
	cp := *p
	r.s.payments = append(r.s.payments, &cp)
	return nil
}

func (r *fakePaymentRepo) CountPendingReview(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[uuid.UUID]bool{}
	for _, p := range r.s.payments {
		if p.Status == dbm.PaymentPending && r.s.orders[p.OrderID].Status == dbm.OrderPending {
			seen[p.OrderID] = true
		}
	}
	return int64(len(seen)), nil
}

// ---------- mail ----------

type fakeMail struct {
	mu       sync.Mutex
	resets   map[string]string
	statuses []OrderStatusNotice
	payments []PaymentNotice
	err      error
}

func newFakeMail() *fakeMail {
	return &fakeMail{resets: map[string]string{}}
}

func (m *fakeMail) SendMailToNotifyUser(to, subject, body, ctaText, ctaURL string) error {
	return m.err
}

func (m *fakeMail) SendMailToResetPassword(email, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[email] = otp
	return m.err
}

func (m *fakeMail) SendOrderStatusChanged(n OrderStatusNotice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, n)
	return m.err
}

func (m *fakeMail) SendPaymentSubmitted(n PaymentNotice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, n)
	return m.err
}

// ---------- storage ----------

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

func newMemStorage(t interface{ Name() string }) *storageService {
	base := "mem://localhost/" + strings.ReplaceAll(t.Name(), "/", "_") + "_" + uuid.NewString()
	return newStorageService(afs.New(), base, "http://api.test/assets", 1<<20)
}

func testLogger() *zap.Logger { return zap.NewNop() }
