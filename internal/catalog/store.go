package catalog

import (
	"context"
	"errors"
	"fmt"

	"bookcatalog/internal/blob"
	"bookcatalog/internal/book"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store holds the authoritative in-memory sequence and mirrors it to one
// blob slot. It is not safe for concurrent use; Manager serializes access.
type Store struct {
	blobs  blob.Store
	key    string
	books  []book.Book
	logger *zap.Logger
}

func NewStore(blobs blob.Store, key string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		blobs:  blobs,
		key:    key,
		books:  []book.Book{},
		logger: logger,
	}
}

// Load replaces the in-memory sequence with the persisted one. An absent or
// unreadable blob loads as an empty collection.
func (s *Store) Load(ctx context.Context) []book.Book {
	s.books = []book.Book{}

	data, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, blob.ErrNotFound) {
		return s.All()
	}
	if err != nil {
		s.logger.Warn("reading persisted books failed, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return s.All()
	}

	var books []book.Book
	if err := json.Unmarshal(data, &books); err != nil {
		s.logger.Warn("persisted books are corrupt, starting empty",
			zap.String("key", s.key), zap.Int("bytes", len(data)), zap.Error(err))
		return s.All()
	}
	if books != nil {
		s.books = books
	}
	return s.All()
}

// Save writes books as the full blob and, only once the write succeeded,
// makes them the in-memory sequence.
func (s *Store) Save(ctx context.Context, books []book.Book) error {
	if books == nil {
		books = []book.Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("encoding books: %w", err)
	}
	if err := s.blobs.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("persisting books: %w", err)
	}
	s.books = cloneBooks(books)
	return nil
}

// All returns a deep copy of the current sequence.
func (s *Store) All() []book.Book {
	return cloneBooks(s.books)
}

func cloneBooks(books []book.Book) []book.Book {
	out := make([]book.Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}
