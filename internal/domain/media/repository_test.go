package media

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtymedia/internal/database"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so the in-memory database is shared across the pool.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return NewRepository(db)
}

func propertyOwner(id int64) OwnerRef {
	return OwnerRef{Kind: OwnerProperty, ID: id}
}

func newImageAsset(owner OwnerRef, name string) *Asset {
	a := &Asset{
		ID:               uuid.New().String(),
		Class:            ClassImage,
		FileName:         name,
		OriginalFileName: name,
		MimeType:         "image/jpeg",
		SizeBytes:        3,
		Content:          Encode([]byte("img")),
		ThumbnailContent: Encode([]byte("thumb")),
		Category:         CategoryExterior,
		CreatedAt:        time.Now(),
	}
	switch owner.Kind {
	case OwnerProperty:
		a.PropertyID = &owner.ID
	case OwnerClient:
		a.ClientID = &owner.ID
	}
	return a
}

func newDocumentAsset(owner OwnerRef, name string) *Asset {
	a := newImageAsset(owner, name)
	a.Class = ClassDocument
	a.MimeType = "application/pdf"
	a.ThumbnailContent = ""
	a.Category = CategoryContract
	return a
}

func primaryCount(t *testing.T, repo Repository, owner OwnerRef) int {
	t.Helper()

	assets, err := repo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	n := 0
	for _, a := range assets {
		if a.IsPrimary {
			n++
		}
	}
	return n
}

func TestRepository_FirstImageBecomesPrimary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := propertyOwner(1)

	a := newImageAsset(owner, "a.jpg")
	require.NoError(t, repo.Insert(ctx, a, false))
	assert.Equal(t, 0, a.SortOrder)
	assert.True(t, a.IsPrimary)

	b := newImageAsset(owner, "b.jpg")
	require.NoError(t, repo.Insert(ctx, b, false))
	assert.Equal(t, 1, b.SortOrder)
	assert.False(t, b.IsPrimary)

	assert.Equal(t, 1, primaryCount(t, repo, owner))
	require.NoError(t, repo.CheckIntegrity(ctx, owner))
}

func TestRepository_InsertWantPrimaryDemotesCurrent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := propertyOwner(1)

	a := newImageAsset(owner, "a.jpg")
	require.NoError(t, repo.Insert(ctx, a, false))

	b := newImageAsset(owner, "b.jpg")
	require.NoError(t, repo.Insert(ctx, b, true))
	assert.True(t, b.IsPrimary)

	reloaded, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsPrimary)

	assert.Equal(t, 1, primaryCount(t, repo, owner))
}

func TestRepository_DocumentsNeverPrimary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := OwnerRef{Kind: OwnerClient, ID: 7}

	d := newDocumentAsset(owner, "contract.pdf")
	require.NoError(t, repo.Insert(ctx, d, false))
	assert.False(t, d.IsPrimary)
	assert.Equal(t, 0, d.SortOrder)

	// A later image is the owner's first image and still becomes primary.
	img := newImageAsset(owner, "id_scan.jpg")
	require.NoError(t, repo.Insert(ctx, img, false))
	assert.True(t, img.IsPrimary)
	assert.Equal(t, 1, img.SortOrder)
}

func TestRepository_SetPrimarySwap(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := propertyOwner(1)

	a := newImageAsset(owner, "a.jpg")
	b := newImageAsset(owner, "b.jpg")
	require.NoError(t, repo.Insert(ctx, a, false))
	require.NoError(t, repo.Insert(ctx, b, false))

	updated, err := repo.SetPrimary(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsPrimary)

	reloaded, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsPrimary)
	assert.Equal(t, 1, primaryCount(t, repo, owner))

	// Idempotent when the target is already primary.
	updated, err = repo.SetPrimary(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsPrimary)
	assert.Equal(t, 1, primaryCount(t, repo, owner))
}

func TestRepository_SetPrimaryErrors(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.SetPrimary(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrAssetNotFound)

	owner := OwnerRef{Kind: OwnerClient, ID: 3}
	d := newDocumentAsset(owner, "contract.pdf")
	require.NoError(t, repo.Insert(ctx, d, false))

	_, err = repo.SetPrimary(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestRepository_DeleteRenumbersSiblings(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := propertyOwner(1)

	a := newImageAsset(owner, "a.jpg")
	b := newImageAsset(owner, "b.jpg")
	c := newImageAsset(owner, "c.jpg")
	require.NoError(t, repo.Insert(ctx, a, false))
	require.NoError(t, repo.Insert(ctx, b, false))
	require.NoError(t, repo.Insert(ctx, c, false))

	require.NoError(t, repo.Delete(ctx, b.ID))

	assets, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, a.ID, assets[0].ID)
	assert.Equal(t, 0, assets[0].SortOrder)
	assert.True(t, assets[0].IsPrimary)
	assert.Equal(t, c.ID, assets[1].ID)
	assert.Equal(t, 1, assets[1].SortOrder)

	require.NoError(t, repo.CheckIntegrity(ctx, owner))
}

func TestRepository_DeletePrimaryDoesNotAutoPromote(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := propertyOwner(1)

	a := newImageAsset(owner, "a.jpg")
	b := newImageAsset(owner, "b.jpg")
	require.NoError(t, repo.Insert(ctx, a, false))
	require.NoError(t, repo.Insert(ctx, b, false))
	require.True(t, a.IsPrimary)

	require.NoError(t, repo.Delete(ctx, a.ID))

	assets, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.False(t, assets[0].IsPrimary)
	assert.Equal(t, 0, assets[0].SortOrder)

	require.NoError(t, repo.CheckIntegrity(ctx, owner))
}

func TestRepository_DeleteMissing(t *testing.T) {
	repo := newTestRepo(t)
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing-id"), ErrAssetNotFound)
}

func TestRepository_Reorder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := propertyOwner(1)

	a := newImageAsset(owner, "a.jpg")
	b := newImageAsset(owner, "b.jpg")
	c := newImageAsset(owner, "c.jpg")
	require.NoError(t, repo.Insert(ctx, a, false))
	require.NoError(t, repo.Insert(ctx, b, false))
	require.NoError(t, repo.Insert(ctx, c, false))

	require.NoError(t, repo.Reorder(ctx, owner, []string{c.ID, a.ID, b.ID}))

	assets, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, []string{assets[0].ID, assets[1].ID, assets[2].ID})
	require.NoError(t, repo.CheckIntegrity(ctx, owner))
}

func TestRepository_ReorderRejectsWrongSet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := propertyOwner(1)

	a := newImageAsset(owner, "a.jpg")
	b := newImageAsset(owner, "b.jpg")
	c := newImageAsset(owner, "c.jpg")
	require.NoError(t, repo.Insert(ctx, a, false))
	require.NoError(t, repo.Insert(ctx, b, false))
	require.NoError(t, repo.Insert(ctx, c, false))

	cases := [][]string{
		{c.ID, a.ID},                          // omission
		{c.ID, a.ID, b.ID, "foreign-id"},      // addition
		{c.ID, a.ID, "foreign-id"},            // foreign id
		{a.ID, a.ID, b.ID},                    // duplicate
	}
	for _, ids := range cases {
		assert.ErrorIs(t, repo.Reorder(ctx, owner, ids), ErrInvalidReorderSet)
	}

	// Nothing was mutated by the rejected calls.
	assets, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{assets[0].ID, assets[1].ID, assets[2].ID})
	for i, got := range assets {
		assert.Equal(t, i, got.SortOrder)
	}
}

func TestRepository_OwnersAreIsolated(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	first := propertyOwner(1)
	second := propertyOwner(2)

	a := newImageAsset(first, "a.jpg")
	b := newImageAsset(second, "b.jpg")
	require.NoError(t, repo.Insert(ctx, a, false))
	require.NoError(t, repo.Insert(ctx, b, false))

	// Each owner starts its own ordering and gets its own primary.
	assert.Equal(t, 0, a.SortOrder)
	assert.Equal(t, 0, b.SortOrder)
	assert.True(t, a.IsPrimary)
	assert.True(t, b.IsPrimary)

	require.NoError(t, repo.DeleteByOwner(ctx, first))

	remaining, err := repo.ListByOwner(ctx, first)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	other, err := repo.ListByOwner(ctx, second)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestRepository_GetByIDMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestRepository_UpdateMeta(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := propertyOwner(1)

	a := newImageAsset(owner, "a.jpg")
	require.NoError(t, repo.Insert(ctx, a, false))

	updated, err := repo.UpdateMeta(ctx, a.ID, "Front view", "Taken in May", CategoryExterior)
	require.NoError(t, err)
	assert.Equal(t, "Front view", updated.Title)

	reloaded, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Front view", reloaded.Title)
	assert.Equal(t, "Taken in May", reloaded.Description)
	assert.Equal(t, CategoryExterior, reloaded.Category)
}
