package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"boda-backend/layoutsync"
	"boda-backend/models"
	"boda-backend/seating"
	"boda-backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// layoutMem behaves like services.LayoutService over a slice.
type layoutMem struct {
	mu    sync.Mutex
	slots int
	docs  []seating.Layout
}

func (m *layoutMem) Latest(ctx context.Context) (*seating.Layout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.docs) == 0 {
		return nil, layoutsync.ErrNoLayout
	}
	l := m.docs[len(m.docs)-1]
	l.Espacios = l.Espacios.Clone()
	return &l, nil
}

func (m *layoutMem) Current(ctx context.Context) (*seating.Layout, error) {
	l, err := m.Latest(ctx)
	if err == layoutsync.ErrNoLayout {
		return m.Create(ctx, seating.EmptyGrid(m.slots))
	}
	return l, err
}

func (m *layoutMem) check(g seating.Grid) (seating.Grid, error) {
	if len(g) != m.slots {
		return nil, seating.ErrInvalidLayout
	}
	return seating.Normalize(g, m.slots), nil
}

func (m *layoutMem) Create(ctx context.Context, g seating.Grid) (*seating.Layout, error) {
	g, err := m.check(g)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l := seating.Layout{ID: uint(len(m.docs) + 1), Espacios: g, Version: seating.CurrentVersion}
	m.docs = append(m.docs, l)
	return &l, nil
}

func (m *layoutMem) Replace(ctx context.Context, id uint, g seating.Grid) (*seating.Layout, error) {
	g, err := m.check(g)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.docs {
		if m.docs[i].ID == id {
			m.docs[i].Espacios = g
			l := m.docs[i]
			return &l, nil
		}
	}
	return nil, layoutsync.ErrNoLayout
}

// guestMem is an in-memory GuestStore and GuestDirectory.
type guestMem struct {
	mu     sync.Mutex
	guests []models.Guest
	nextID uint
}

func (m *guestMem) GetAll(ctx context.Context) ([]models.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Guest{}, m.guests...), nil
}

func (m *guestMem) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.guests {
		if g.ID == id {
			g := g
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *guestMem) Create(ctx context.Context, g *models.Guest) error {
	if err := g.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	g.ID = m.nextID
	m.guests = append(m.guests, *g)
	return nil
}

func (m *guestMem) Update(ctx context.Context, g *models.Guest) error {
	if err := g.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.guests {
		if m.guests[i].ID == g.ID {
			m.guests[i] = *g
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *guestMem) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.guests {
		if m.guests[i].ID == id {
			m.guests = append(m.guests[:i], m.guests[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *guestMem) Parties(ctx context.Context) ([]seating.Party, error) {
	all, _ := m.GetAll(ctx)
	return models.GuestsToParties(all), nil
}

func (m *guestMem) add(g models.Guest) uint {
	_ = m.Create(context.Background(), &g)
	return g.ID
}

// resourceMem is a generic in-memory ResourceStore.
type resourceMem[T any, PT services.Resource[T]] struct {
	mu    sync.Mutex
	items map[uint]T
	next  uint
}

func newResourceMem[T any, PT services.Resource[T]]() *resourceMem[T, PT] {
	return &resourceMem[T, PT]{items: map[uint]T{}}
}

func (m *resourceMem[T, PT]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.items))
	for id := uint(1); id <= m.next; id++ {
		if item, ok := m.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *resourceMem[T, PT]) Get(ctx context.Context, id uint) (PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return PT(&item), nil
}

func (m *resourceMem[T, PT]) Create(ctx context.Context, item PT) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	item.SetID(m.next)
	m.items[m.next] = *item
	return nil
}

func (m *resourceMem[T, PT]) Save(ctx context.Context, id uint, item PT) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	item.SetID(id)
	m.items[id] = *item
	return nil
}

func (m *resourceMem[T, PT]) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// taskMem adds the task-specific calls on top of resourceMem.
type taskMem struct {
	*resourceMem[models.Task, *models.Task]
	lastFilter services.TaskFilter
}

func (m *taskMem) ListFiltered(ctx context.Context, f services.TaskFilter) ([]models.Task, error) {
	m.lastFilter = f
	all, _ := m.List(ctx)
	if f.Completed == nil {
		return all, nil
	}
	out := []models.Task{}
	for _, t := range all {
		if t.Completada == *f.Completed {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *taskMem) AddSubtask(ctx context.Context, id uint, descripcion string) (*models.Task, error) {
	t, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Subtareas = append(t.Subtareas, models.NewSubtask(descripcion))
	t.RecomputeProgress()
	return t, m.Save(ctx, id, t)
}

func (m *taskMem) SetSubtask(ctx context.Context, id uint, subID string, done bool) (*models.Task, error) {
	t, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range t.Subtareas {
		if t.Subtareas[i].ID == subID {
			t.Subtareas[i].Completada = done
			t.RecomputeProgress()
			return t, m.Save(ctx, id, t)
		}
	}
	return nil, gorm.ErrRecordNotFound
}
