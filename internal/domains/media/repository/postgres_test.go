package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoir-backend/internal/domains/media/model"
)

// fakeRows yields a fixed number of zero rows and then reports failWith from
// Err, the way pgx surfaces a mid-stream query failure.
type fakeRows struct {
	pgx.Rows
	remaining int
	failWith  error
}

func (r *fakeRows) Next() bool {
	if r.remaining == 0 {
		return false
	}
	r.remaining--
	return true
}

func (r *fakeRows) Scan(dest ...interface{}) error { return nil }
func (r *fakeRows) Err() error                     { return r.failWith }
func (r *fakeRows) Close()                         {}

func TestCollectMedia(t *testing.T) {
	t.Run("propagates iteration failure", func(t *testing.T) {
		cause := errors.New("connection reset")
		items, err := collectMedia(&fakeRows{remaining: 2, failWith: cause})
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Nil(t, items)
	})

	t.Run("drains clean result set", func(t *testing.T) {
		items, err := collectMedia(&fakeRows{remaining: 3})
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})
}

// mediaTableTx backs attachInTx with an in-memory media table so the
// supersede and ordering behavior can be exercised without Postgres.
type txRecord struct {
	id         uuid.UUID
	ownerType  model.OwnerType
	ownerID    uuid.UUID
	collection model.Collection
	sortOrder  int
	deleted    bool
}

type mediaTableTx struct {
	pgx.Tx
	records []*txRecord
}

func (t *mediaTableTx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	switch {
	case strings.Contains(sql, "deleted_at = NOW()"):
		ownerType := args[0].(model.OwnerType)
		ownerID := args[1].(uuid.UUID)
		collection := args[2].(model.Collection)
		for _, rec := range t.records {
			if !rec.deleted && rec.ownerType == ownerType && rec.ownerID == ownerID && rec.collection == collection {
				rec.deleted = true
			}
		}
		return pgconn.NewCommandTag("UPDATE 1"), nil
	case strings.Contains(sql, "INSERT INTO media"):
		t.records = append(t.records, &txRecord{
			id:         args[0].(uuid.UUID),
			ownerType:  args[2].(model.OwnerType),
			ownerID:    args[3].(uuid.UUID),
			collection: args[4].(model.Collection),
			sortOrder:  args[13].(int),
		})
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.CommandTag{}, errors.New("unexpected statement: " + sql)
}

func (t *mediaTableTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	ownerType := args[0].(model.OwnerType)
	ownerID := args[1].(uuid.UUID)
	collection := args[2].(model.Collection)

	next := 0
	for _, rec := range t.records {
		if !rec.deleted && rec.ownerType == ownerType && rec.ownerID == ownerID && rec.collection == collection && rec.sortOrder+1 > next {
			next = rec.sortOrder + 1
		}
	}
	return intRow{n: next}
}

type intRow struct{ n int }

func (r intRow) Scan(dest ...interface{}) error {
	*(dest[0].(*int)) = r.n
	return nil
}

func (t *mediaTableTx) active(collection model.Collection) []uuid.UUID {
	var ids []uuid.UUID
	for _, rec := range t.records {
		if !rec.deleted && rec.collection == collection {
			ids = append(ids, rec.id)
		}
	}
	return ids
}

func newAttachedMedia(bioID uuid.UUID, collection model.Collection) *model.Media {
	return &model.Media{
		ID:          uuid.New(),
		BiographyID: bioID,
		OwnerType:   model.OwnerBiography,
		OwnerID:     bioID,
		Collection:  collection,
		MimeType:    "image/jpeg",
		StorageKey:  "biographies/key",
		Status:      model.StatusPending,
	}
}

func TestAttachInTx_SingletonSupersedes(t *testing.T) {
	repo := &postgresRepository{}
	tx := &mediaTableTx{}
	bioID := uuid.New()

	first := newAttachedMedia(bioID, model.CollectionFeaturedImage)
	require.NoError(t, repo.attachInTx(context.Background(), tx, first))

	second := newAttachedMedia(bioID, model.CollectionFeaturedImage)
	require.NoError(t, repo.attachInTx(context.Background(), tx, second))

	// Only the latest featured image stays active.
	assert.Equal(t, []uuid.UUID{second.ID}, tx.active(model.CollectionFeaturedImage))
	assert.Equal(t, 0, second.SortOrder)
}

func TestAttachInTx_GalleryAppendsInOrder(t *testing.T) {
	repo := &postgresRepository{}
	tx := &mediaTableTx{}
	bioID := uuid.New()

	a := newAttachedMedia(bioID, model.CollectionMainGallery)
	b := newAttachedMedia(bioID, model.CollectionMainGallery)
	require.NoError(t, repo.attachInTx(context.Background(), tx, a))
	require.NoError(t, repo.attachInTx(context.Background(), tx, b))

	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, tx.active(model.CollectionMainGallery))
	assert.Equal(t, 0, a.SortOrder)
	assert.Equal(t, 1, b.SortOrder)
}
