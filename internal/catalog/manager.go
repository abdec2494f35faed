package catalog

import (
	"context"
	"slices"
	"sync"

	"bookcatalog/internal/blob"
	"bookcatalog/internal/book"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager is the single entry point for catalog operations. It validates and
// applies mutations, persists them through its Store, and redraws attached
// renderers. All methods are serialized by one mutex.
type Manager struct {
	mu        sync.Mutex
	blobs     blob.Store
	blobKey   string
	store     *Store
	opts      book.Options
	renderers []Renderer
	newID     func() string
	logger    *zap.Logger
}

// NewManager loads the persisted collection, repairing missing or duplicate
// ids on the way.
func NewManager(ctx context.Context, blobs blob.Store, options ...Option) *Manager {
	m := &Manager{
		blobs:   blobs,
		blobKey: DefaultBlobKey,
		opts:    book.Options{RatingEnabled: true, TagPolicy: book.DropEmptyTags},
		newID:   newUUID,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		opt(m)
	}
	m.logger = m.logger.With(zap.String("component", "catalog"))
	m.store = NewStore(blobs, m.blobKey, m.logger)

	m.mu.Lock()
	defer m.mu.Unlock()
	books := m.store.Load(ctx)
	m.repairIDsLocked(ctx, books)
	m.logger.Info("catalog loaded", zap.String("key", m.blobKey), zap.Int("books", len(m.store.books)))
	return m
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// repairIDsLocked gives fresh ids to books that arrived without one or that
// share an id with an earlier book, which older clients could produce.
func (m *Manager) repairIDsLocked(ctx context.Context, books []book.Book) {
	seen := make(map[string]bool, len(books))
	repaired := 0
	for i := range books {
		if books[i].ID == "" || seen[books[i].ID] {
			books[i].ID = m.nextIDLocked(seen)
			repaired++
		}
		seen[books[i].ID] = true
	}
	if repaired == 0 {
		return
	}
	// memory takes the new ids even if the write below fails
	m.store.books = cloneBooks(books)
	if err := m.store.Save(ctx, books); err != nil {
		m.logger.Warn("persisting repaired ids failed", zap.Int("repaired", repaired), zap.Error(err))
		return
	}
	m.logger.Info("repaired duplicate or missing ids", zap.Int("repaired", repaired))
}

func (m *Manager) nextIDLocked(taken map[string]bool) string {
	for {
		id := m.newID()
		if !taken[id] && indexOf(m.store.books, id) < 0 {
			return id
		}
	}
}

func indexOf(books []book.Book, id string) int {
	return slices.IndexFunc(books, func(b book.Book) bool { return b.ID == id })
}

// Options reports the record format in effect.
func (m *Manager) Options() book.Options {
	return m.opts
}

// Add validates f and appends a new book with a fresh id. On a validation
// or persistence error the collection is unchanged.
func (m *Manager) Add(ctx context.Context, f book.Fields) (book.Book, error) {
	b, err := book.Build(f, m.opts)
	if err != nil {
		return book.Book{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b.ID = m.nextIDLocked(nil)
	next := append(m.store.All(), b)
	if err := m.store.Save(ctx, next); err != nil {
		return book.Book{}, err
	}
	m.refreshLocked()
	return b.Clone(), nil
}

// Update replaces every field but the id of the book with the given id.
// It returns book.ErrNotFound, without touching anything, when no such book
// exists.
func (m *Manager) Update(ctx context.Context, id string, f book.Fields) (book.Book, error) {
	b, err := book.Build(f, m.opts)
	if err != nil {
		return book.Book{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	books := m.store.All()
	i := indexOf(books, id)
	if i < 0 {
		return book.Book{}, book.ErrNotFound
	}
	b.ID = id
	books[i] = b
	if err := m.store.Save(ctx, books); err != nil {
		return book.Book{}, err
	}
	m.refreshLocked()
	return b.Clone(), nil
}

// Submit dispatches a form submission: an empty hidden id adds, anything
// else edits.
func (m *Manager) Submit(ctx context.Context, f book.Fields) (book.Book, error) {
	if f.ID == "" {
		return m.Add(ctx, f)
	}
	return m.Update(ctx, f.ID, f)
}

// Remove deletes the books with the given ids in one save and one refresh.
// Unknown ids are not an error, so calling it twice is the same as calling it
// once.
func (m *Manager) Remove(ctx context.Context, ids ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	books := m.store.All()
	for _, id := range ids {
		if i := indexOf(books, id); i >= 0 {
			books = slices.Delete(books, i, i+1)
		}
	}
	if err := m.store.Save(ctx, books); err != nil {
		return err
	}
	m.refreshLocked()
	return nil
}

// BeginEdit returns the stored values of a book for pre-filling the form.
func (m *Manager) BeginEdit(id string) (book.Fields, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := indexOf(m.store.books, id)
	if i < 0 {
		return book.Fields{}, false
	}
	return m.store.books[i].Fields(), true
}

// Get returns a copy of one book.
func (m *Manager) Get(id string) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := indexOf(m.store.books, id)
	if i < 0 {
		return book.Book{}, book.ErrNotFound
	}
	return m.store.books[i].Clone(), nil
}

// All returns a copy of the full collection in stored order.
func (m *Manager) All() []book.Book {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.All()
}

// Find applies q to the collection. The rating sort is ignored when the
// rating feature is off.
func (m *Manager) Find(q Query) []book.Book {
	if !m.opts.RatingEnabled {
		q.SortByRating = false
	}
	return q.Apply(m.All())
}

// CategoryCounts aggregates the full collection by category.
func (m *Manager) CategoryCounts() []Count {
	return AggregateByCategory(m.All())
}

// YearCounts aggregates the full collection by publication year.
func (m *Manager) YearCounts() []Count {
	return AggregateByYear(m.All())
}

// Attach adds a renderer that is redrawn after every later mutation. It
// draws nothing by itself; call Refresh or Show for that.
func (m *Manager) Attach(r Renderer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renderers = append(m.renderers, r)
}

// Refresh redraws the full table and both charts on every attached renderer.
func (m *Manager) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshLocked()
}

// Show redraws only the table of every attached renderer, used for search
// and filter results. Charts keep describing the full collection.
func (m *Manager) Show(books []book.Book) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.renderers {
		if err := r.RenderTable(books); err != nil {
			m.logger.Warn("rendering table failed", zap.Error(err))
		}
	}
}

// Draw renders q's view of the table plus both charts onto r without
// attaching it. Surfaces that build a fresh page per request use this.
func (m *Manager) Draw(r Renderer, q Query) error {
	if !m.opts.RatingEnabled {
		q.SortByRating = false
	}
	m.mu.Lock()
	all := m.store.All()
	m.mu.Unlock()

	if err := r.RenderTable(q.Apply(all)); err != nil {
		return err
	}
	for _, c := range Charts(all) {
		if err := r.RenderChart(c); err != nil {
			return err
		}
	}
	return nil
}

// Ping checks that the blob backend is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	return m.blobs.Ping(ctx)
}

func (m *Manager) refreshLocked() {
	for _, r := range m.renderers {
		m.drawLocked(r, m.store.books)
	}
}

// drawLocked never fails a mutation: the change is already persisted, so a
// broken surface is only logged.
func (m *Manager) drawLocked(r Renderer, books []book.Book) {
	all := cloneBooks(books)
	if err := r.RenderTable(all); err != nil {
		m.logger.Warn("rendering table failed", zap.Error(err))
	}
	for _, c := range Charts(all) {
		if err := r.RenderChart(c); err != nil {
			m.logger.Warn("rendering chart failed", zap.String("region", string(c.Region)), zap.Error(err))
		}
	}
}
