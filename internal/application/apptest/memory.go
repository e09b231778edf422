// Package apptest repositorios y adaptadores en memoria para los tests de los casos de uso.
package apptest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/pipeline"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	Customers map[string]entity.Customer
	Sales     map[string]entity.Sale
	Users     map[string]entity.User
	Articles  map[string]entity.Article
	SEO       map[string]entity.SEOMeta
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Customers: map[string]entity.Customer{},
		Sales:     map[string]entity.Sale{},
		Users:     map[string]entity.User{},
		Articles:  map[string]entity.Article{},
		SEO:       map[string]entity.SEOMeta{},
	}
}

// ── Customers ────────────────────────────────────────────────────────────────

// CustomerRepo implementación en memoria de repository.CustomerRepository.
type CustomerRepo struct{ S *Store }

var _ repository.CustomerRepository = CustomerRepo{}

func (r CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, other := range r.S.Customers {
		if other.PhoneDigits == c.PhoneDigits {
			return domain.ErrDuplicate
		}
	}
	r.S.Customers[c.ID] = *c
	return nil
}

func (r CustomerRepo) find(match func(entity.Customer) bool) *entity.Customer {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, c := range r.S.Customers {
		if match(c) {
			cp := c
			return &cp
		}
	}
	return nil
}

func (r CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.find(func(c entity.Customer) bool { return c.ID == id }), nil
}

func (r CustomerRepo) GetByPhoneDigits(_ context.Context, digits string) (*entity.Customer, error) {
	return r.find(func(c entity.Customer) bool { return c.PhoneDigits == digits }), nil
}

func (r CustomerRepo) GetByUserID(_ context.Context, userID string) (*entity.Customer, error) {
	return r.find(func(c entity.Customer) bool { return c.UserID != nil && *c.UserID == userID }), nil
}

func (r CustomerRepo) filtered(f repository.CustomerFilter) []*entity.Customer {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	q := strings.ToLower(f.Search)
	var out []*entity.Customer
	for _, c := range r.S.Customers {
		if q != "" && !strings.Contains(strings.ToLower(c.Name+" "+c.Phone+" "+c.PhoneDigits+" "+c.Email), q) {
			continue
		}
		if f.City != "" && !strings.EqualFold(c.City, f.City) {
			continue
		}
		if f.State != "" && !strings.EqualFold(c.State, f.State) {
			continue
		}
		cp := c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r CustomerRepo) List(_ context.Context, f repository.CustomerFilter, limit, offset int) ([]*entity.Customer, error) {
	return page(r.filtered(f), limit, offset), nil
}

func (r CustomerRepo) Count(_ context.Context, f repository.CustomerFilter) (int, error) {
	return len(r.filtered(f)), nil
}

func (r CustomerRepo) ListWithoutLogin(_ context.Context) ([]*entity.Customer, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.S.Customers {
		if !c.HasLogin() {
			cp := c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Customers[c.ID] = *c
	return nil
}

func (r CustomerRepo) SetUserID(_ context.Context, customerID, userID string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	c, ok := r.S.Customers[customerID]
	if !ok || c.HasLogin() {
		return domain.ErrConflict
	}
	c.UserID = &userID
	r.S.Customers[customerID] = c
	return nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

// SaleRepo implementación en memoria de repository.SaleRepository.
type SaleRepo struct{ S *Store }

var _ repository.SaleRepository = SaleRepo{}

func (r SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if s.Version == 0 {
		s.Version = 1
	}
	r.S.Sales[s.ID] = *s
	return nil
}

func (r SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	s, ok := r.S.Sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r SaleRepo) Update(_ context.Context, s *entity.Sale) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cur, ok := r.S.Sales[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != s.Version {
		return domain.ErrConflict
	}
	s.Version++
	r.S.Sales[s.ID] = *s
	return nil
}

func (r SaleRepo) summaries() []*entity.SaleSummary {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*entity.SaleSummary, 0, len(r.S.Sales))
	for _, s := range r.S.Sales {
		out = append(out, &entity.SaleSummary{Sale: s, CustomerName: r.S.Customers[s.CustomerID].Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r SaleRepo) ListAll(_ context.Context) ([]*entity.SaleSummary, error) {
	return r.summaries(), nil
}

func (r SaleRepo) ListRecent(_ context.Context, limit int) ([]*entity.SaleSummary, error) {
	return page(r.summaries(), limit, 0), nil
}

func (r SaleRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.summaries() {
		if s.CustomerID == customerID {
			sale := s.Sale
			out = append(out, &sale)
		}
	}
	return out, nil
}

// AnalyticsRepo agrega sobre las ventas en memoria.
type AnalyticsRepo struct{ S *Store }

var _ repository.AnalyticsRepository = AnalyticsRepo{}

func (r AnalyticsRepo) GetSalesMetrics(_ context.Context, start, end time.Time, onlyClosed bool) (repository.SalesMetrics, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var m repository.SalesMetrics
	for _, s := range r.S.Sales {
		if s.CreatedAt.Before(start) || !s.CreatedAt.Before(end) {
			continue
		}
		if onlyClosed && !s.Stages[pipeline.StageSaleClosed] {
			continue
		}
		m.Count++
		m.Total = m.Total.Add(s.ValueOrZero())
	}
	return m, nil
}

func (r AnalyticsRepo) CountCustomers(context.Context) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return len(r.S.Customers), nil
}

func (r AnalyticsRepo) CountSales(context.Context) (int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	return len(r.S.Sales), nil
}

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct{ S *Store }

var _ repository.UserRepository = UserRepo{}

func (r UserRepo) Create(_ context.Context, u *entity.User) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, other := range r.S.Users {
		if other.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.S.Users[u.ID] = *u
	return nil
}

func (r UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	u, ok := r.S.Users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, u := range r.S.Users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r UserRepo) ExistsUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u != nil, err
}

func (r UserRepo) UpdatePassword(_ context.Context, id, hash string, at time.Time) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	u, ok := r.S.Users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = at
	r.S.Users[id] = u
	return nil
}

// ── Articles / SEO ───────────────────────────────────────────────────────────

// ArticleRepo implementación en memoria de repository.ArticleRepository.
type ArticleRepo struct{ S *Store }

var _ repository.ArticleRepository = ArticleRepo{}

func (r ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	if exists, _ := r.ExistsSlug(ctx, a.Slug, ""); exists {
		return domain.ErrDuplicate
	}
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	r.S.Articles[a.ID] = *a
	return nil
}

func (r ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	if exists, _ := r.ExistsSlug(ctx, a.Slug, a.ID); exists {
		return domain.ErrDuplicate
	}
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Articles[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Articles[a.ID] = *a
	return nil
}

func (r ArticleRepo) GetByID(_ context.Context, id string) (*entity.Article, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	a, ok := r.S.Articles[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r ArticleRepo) GetBySlug(_ context.Context, slug string) (*entity.Article, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, a := range r.S.Articles {
		if a.Slug == slug {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r ArticleRepo) ExistsSlug(_ context.Context, slug, excludeID string) (bool, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, a := range r.S.Articles {
		if a.Slug == slug && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r ArticleRepo) all() []entity.Article {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]entity.Article, 0, len(r.S.Articles))
	for _, a := range r.S.Articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r ArticleRepo) List(_ context.Context, limit, offset int) ([]entity.Article, error) {
	return page(r.all(), limit, offset), nil
}

func (r ArticleRepo) Count(context.Context) (int, error) {
	return len(r.all()), nil
}

func (r ArticleRepo) ListPublished(context.Context) ([]entity.Article, error) {
	var out []entity.Article
	for _, a := range r.all() {
		if a.Published && a.PublishedAt != nil {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(*out[j].PublishedAt) })
	return out, nil
}

// SEORepo implementación en memoria de repository.SEORepository.
type SEORepo struct{ S *Store }

var _ repository.SEORepository = SEORepo{}

func (r SEORepo) Get(_ context.Context, contentType, objectID string) (*entity.SEOMeta, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	m, ok := r.S.SEO[contentType+"/"+objectID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r SEORepo) Upsert(_ context.Context, m *entity.SEOMeta) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	key := m.ContentType + "/" + m.ObjectID
	if cur, ok := r.S.SEO[key]; ok {
		m.ID, m.CreatedAt = cur.ID, cur.CreatedAt
	}
	r.S.SEO[key] = *m
	return nil
}

// ── Adaptadores ──────────────────────────────────────────────────────────────

// TxRunner ejecuta fn sin transacción real sobre los repos en memoria.
type TxRunner struct{ S *Store }

func (t TxRunner) Run(_ context.Context, fn func(
	users repository.UserRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
) error) error {
	return fn(UserRepo(t), CustomerRepo(t), SaleRepo(t))
}

// Storage almacenamiento de documentos en memoria.
type Storage struct {
	mu    sync.Mutex
	Files map[string][]byte
}

// NewStorage crea un storage vacío.
func NewStorage() *Storage { return &Storage{Files: map[string][]byte{}} }

func (s *Storage) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Files[path]
	return ok, nil
}

func (s *Storage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Files[path]
	if !ok {
		return nil, errors.New("archivo inexistente")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *Storage) Save(_ context.Context, path string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files[path] = b
	return path, nil
}

// Notifier registra los mensajes enviados; Err simula una falla del servidor SMTP.
type Notifier struct {
	Err      error
	Messages []string
}

func (n *Notifier) SendSupportMessage(_ context.Context, subject, body, _ string) error {
	if n.Err != nil {
		return n.Err
	}
	n.Messages = append(n.Messages, subject+"\n"+body)
	return nil
}

// Recorder cuenta eventos de negocio.
type Recorder struct {
	Advanced  []string
	Payments  int
	Downloads int
	Support   int
}

func (r *Recorder) StageAdvanced(stage string) { r.Advanced = append(r.Advanced, stage) }
func (r *Recorder) SecondDepositPaid()         { r.Payments++ }
func (r *Recorder) DocumentDownloaded()        { r.Downloads++ }
func (r *Recorder) SupportMessage(bool)        { r.Support++ }

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
