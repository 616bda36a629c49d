package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suiamor/alignd/core"
	"github.com/suiamor/alignd/storage"
)

func newTestRepo(t *testing.T) storage.RevisionRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func makeRevision(source []byte, uploadedAt time.Time) *core.CatalogRevision {
	return &core.CatalogRevision{
		Id:              core.IDFromContent(source),
		Filename:        "alignments.csv",
		AnswersCount:    10,
		AlignmentsCount: 4,
		UploadedAt:      uploadedAt,
	}
}

func TestSaveAndGetRevision(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	source := []byte("Answer_ID,Answer_Text\n")
	revision := makeRevision(source, time.Now().UTC())
	require.NoError(t, repo.SaveRevision(ctx, revision, source))

	got, gotSource, err := repo.GetRevision(ctx, revision.Id)
	require.NoError(t, err)
	assert.Equal(t, revision.Id, got.Id)
	assert.Equal(t, "alignments.csv", got.Filename)
	assert.Equal(t, source, gotSource)
}

func TestGetRevision_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, _, err := repo.GetRevision(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLatestRevision(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, _, err := repo.LatestRevision(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	first := []byte("catalog one")
	second := []byte("catalog two")
	base := time.Now().UTC()

	require.NoError(t, repo.SaveRevision(ctx, makeRevision(first, base), first))
	require.NoError(t, repo.SaveRevision(ctx, makeRevision(second, base.Add(time.Minute)), second))

	got, gotSource, err := repo.LatestRevision(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.IDFromContent(second), got.Id)
	assert.Equal(t, second, gotSource)
}

func TestListRevisions_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC()
	sources := [][]byte{[]byte("rev a"), []byte("rev b"), []byte("rev c")}
	for i, source := range sources {
		revision := makeRevision(source, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.SaveRevision(ctx, revision, source))
	}

	revisions, err := repo.ListRevisions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, revisions, 3)
	assert.Equal(t, core.IDFromContent(sources[2]), revisions[0].Id)
	assert.Equal(t, core.IDFromContent(sources[1]), revisions[1].Id)
	assert.Equal(t, core.IDFromContent(sources[0]), revisions[2].Id)
}

func TestListRevisions_Limit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC()
	sources := [][]byte{[]byte("rev a"), []byte("rev b"), []byte("rev c")}
	for i, source := range sources {
		revision := makeRevision(source, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.SaveRevision(ctx, revision, source))
	}

	revisions, err := repo.ListRevisions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, revisions, 2)
	assert.Equal(t, core.IDFromContent(sources[2]), revisions[0].Id)
}

func TestListRevisions_Empty(t *testing.T) {
	repo := newTestRepo(t)

	revisions, err := repo.ListRevisions(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, revisions)
}

func TestSaveRevision_SameContentOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	source := []byte("same bytes")
	base := time.Now().UTC()
	require.NoError(t, repo.SaveRevision(ctx, makeRevision(source, base), source))
	require.NoError(t, repo.SaveRevision(ctx, makeRevision(source, base.Add(time.Hour)), source))

	got, _, err := repo.GetRevision(ctx, core.IDFromContent(source))
	require.NoError(t, err)
	assert.True(t, got.UploadedAt.After(base))

	revisions, err := repo.ListRevisions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, revisions, 1)
	assert.Equal(t, core.IDFromContent(source), revisions[0].Id)
}

func TestSaveRevision_ReuploadKeepsIndexPosition(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := []byte("older catalog")
	newer := []byte("newer catalog")
	base := time.Now().UTC()

	require.NoError(t, repo.SaveRevision(ctx, makeRevision(older, base), older))
	require.NoError(t, repo.SaveRevision(ctx, makeRevision(newer, base.Add(time.Minute)), newer))

	// Re-upload the older catalog with a fresh timestamp: one entry per
	// revision id, ranked by its latest upload time.
	require.NoError(t, repo.SaveRevision(ctx, makeRevision(older, base.Add(time.Hour)), older))

	revisions, err := repo.ListRevisions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, revisions, 2)
	assert.Equal(t, core.IDFromContent(older), revisions[0].Id)
	assert.Equal(t, core.IDFromContent(newer), revisions[1].Id)
}
