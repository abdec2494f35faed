package catalog

import (
	"context"
	"errors"
	"testing"

	"bookcatalog/internal/blob"
	"bookcatalog/internal/book"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStore_LoadAbsentBlob(t *testing.T) {
	s := NewStore(blob.NewMemory(), DefaultBlobKey, nil)

	books := s.Load(context.Background())
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestStore_LoadCorruptBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	require.NoError(t, blobs.Set(ctx, DefaultBlobKey, []byte(`{not json`)))

	core, logs := observer.New(zap.WarnLevel)
	s := NewStore(blobs, DefaultBlobKey, zap.New(core))

	assert.Empty(t, s.Load(ctx))
	assert.Equal(t, 1, logs.Len())
}

func TestStore_LoadNullBlob(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	require.NoError(t, blobs.Set(ctx, DefaultBlobKey, []byte(`null`)))

	s := NewStore(blobs, DefaultBlobKey, nil)
	books := s.Load(ctx)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestStore_LoadBackendErrorStartsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	blobs := NewMockBlobStore(ctrl)
	blobs.EXPECT().Get(gomock.Any(), DefaultBlobKey).Return(nil, errors.New("disk on fire"))

	s := NewStore(blobs, DefaultBlobKey, nil)
	assert.Empty(t, s.Load(context.Background()))
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	books := sampleBooks()
	books[0].Tags = []string{"go", "programming"}
	books[1].Tags = []string{}

	s := NewStore(blobs, DefaultBlobKey, nil)
	require.NoError(t, s.Save(ctx, books))

	reloaded := NewStore(blobs, DefaultBlobKey, nil).Load(ctx)
	if diff := cmp.Diff(books, reloaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_SaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()

	require.NoError(t, NewStore(blobs, DefaultBlobKey, nil).Save(ctx, nil))

	data, err := blobs.Get(ctx, DefaultBlobKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestStore_FailedSaveKeepsMemory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	blobs := NewMockBlobStore(ctrl)
	blobs.EXPECT().Set(gomock.Any(), DefaultBlobKey, gomock.Any()).Return(errors.New("write failed"))

	s := NewStore(blobs, DefaultBlobKey, nil)
	err := s.Save(context.Background(), sampleBooks())
	require.Error(t, err)
	assert.Empty(t, s.All())
}

func TestStore_AllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(blob.NewMemory(), DefaultBlobKey, nil)
	require.NoError(t, s.Save(ctx, []book.Book{{ID: "1", Title: "A", Tags: []string{"x"}}}))

	all := s.All()
	all[0].Title = "changed"
	all[0].Tags[0] = "changed"

	assert.Equal(t, "A", s.All()[0].Title)
	assert.Equal(t, "x", s.All()[0].Tags[0])
}
