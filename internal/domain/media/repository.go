package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the single writer of media_assets. IsPrimary and SortOrder
// are only ever mutated inside its transactions; no other code path touches
// those columns.
type Repository interface {
	Insert(ctx context.Context, a *Asset, wantPrimary bool) error
	GetByID(ctx context.Context, id string) (*Asset, error)
	ListByOwner(ctx context.Context, owner OwnerRef) ([]*Asset, error)
	SetPrimary(ctx context.Context, id string) (*Asset, error)
	UpdateMeta(ctx context.Context, id string, title, description string, category Category) (*Asset, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, owner OwnerRef) error
	Reorder(ctx context.Context, owner OwnerRef, orderedIDs []string) error
	CheckIntegrity(ctx context.Context, owner OwnerRef) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Migrate creates the media_assets table and the partial unique indexes that
// back the one-primary-per-owner rule at the database level. Both SQLite and
// Postgres support partial indexes with this syntax.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Asset{}); err != nil {
		return err
	}
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_media_one_primary_property
			ON media_assets (property_id) WHERE is_primary AND property_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_media_one_primary_client
			ON media_assets (client_id) WHERE is_primary AND client_id IS NOT NULL`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func ownerCondition(owner OwnerRef) (string, int64) {
	if owner.Kind == OwnerClient {
		return "client_id = ?", owner.ID
	}
	return "property_id = ?", owner.ID
}

// Insert stores a new asset at the end of the owner's ordering. The first
// image an owner receives becomes primary automatically; an explicit primary
// request demotes the current primary inside the same transaction.
func (r *repository) Insert(ctx context.Context, a *Asset, wantPrimary bool) error {
	owner := a.Owner()
	cond, arg := ownerCondition(owner)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		row := tx.Model(&Asset{}).
			Select("COALESCE(MAX(sort_order) + 1, 0)").
			Where(cond, arg).
			Row()
		if err := row.Scan(&next); err != nil {
			return err
		}
		a.SortOrder = next

		if a.IsImage() {
			var imageCount int64
			if err := tx.Model(&Asset{}).
				Where(cond, arg).
				Where("asset_class = ?", ClassImage).
				Count(&imageCount).Error; err != nil {
				return err
			}

			switch {
			case imageCount == 0:
				a.IsPrimary = true
			case wantPrimary:
				if err := tx.Model(&Asset{}).
					Where(cond, arg).
					Where("is_primary = ?", true).
					Update("is_primary", false).Error; err != nil {
					return err
				}
				a.IsPrimary = true
			default:
				a.IsPrimary = false
			}
		}

		return tx.Create(a).Error
	})
	return translateIntegrityError(err)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Asset, error) {
	var a Asset
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByOwner(ctx context.Context, owner OwnerRef) ([]*Asset, error) {
	cond, arg := ownerCondition(owner)
	var assets []*Asset
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("sort_order ASC, created_at ASC").
		Find(&assets).Error
	return assets, err
}

// SetPrimary atomically demotes the owner's current primary and promotes the
// target. A target that is already primary is a no-op.
func (r *repository) SetPrimary(ctx context.Context, id string) (*Asset, error) {
	var updated *Asset
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a Asset
		if err := tx.Where("id = ?", id).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}
		if !a.IsImage() {
			return ErrNotAnImage
		}
		if a.IsPrimary {
			updated = &a
			return nil
		}

		cond, arg := ownerCondition(a.Owner())
		if err := tx.Model(&Asset{}).
			Where(cond, arg).
			Where("is_primary = ?", true).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&Asset{}).
			Where("id = ?", a.ID).
			Update("is_primary", true).Error; err != nil {
			return err
		}

		a.IsPrimary = true
		updated = &a
		return nil
	})
	if err != nil {
		return nil, translateIntegrityError(err)
	}
	return updated, nil
}

func (r *repository) UpdateMeta(ctx context.Context, id string, title, description string, category Category) (*Asset, error) {
	var updated *Asset
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a Asset
		if err := tx.Where("id = ?", id).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}
		a.Title = title
		a.Description = description
		a.Category = category
		if err := tx.Model(&Asset{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
			"title":       title,
			"description": description,
			"category":    category,
		}).Error; err != nil {
			return err
		}
		updated = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the asset and renumbers the remaining siblings so sort_order
// stays a dense 0..n-1 sequence in the original relative order. Deleting the
// primary deliberately leaves the owner without a flagged primary; reads fall
// back to the lowest sort_order.
func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a Asset
		if err := tx.Where("id = ?", id).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}
			return err
		}

		if err := tx.Where("id = ?", a.ID).Delete(&Asset{}).Error; err != nil {
			return err
		}

		cond, arg := ownerCondition(a.Owner())
		var siblings []*Asset
		if err := tx.
			Where(cond, arg).
			Order("sort_order ASC, created_at ASC").
			Find(&siblings).Error; err != nil {
			return err
		}
		for i, s := range siblings {
			if s.SortOrder == i {
				continue
			}
			if err := tx.Model(&Asset{}).
				Where("id = ?", s.ID).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) DeleteByOwner(ctx context.Context, owner OwnerRef) error {
	cond, arg := ownerCondition(owner)
	return r.db.WithContext(ctx).Where(cond, arg).Delete(&Asset{}).Error
}

// Reorder assigns sort_order by position in orderedIDs. The list must be
// exactly the owner's current asset set; anything else is rejected without
// touching a single row.
func (r *repository) Reorder(ctx context.Context, owner OwnerRef, orderedIDs []string) error {
	cond, arg := ownerCondition(owner)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []string
		if err := tx.Model(&Asset{}).
			Where(cond, arg).
			Pluck("id", &current).Error; err != nil {
			return err
		}

		if len(current) != len(orderedIDs) {
			return ErrInvalidReorderSet
		}
		have := make(map[string]bool, len(current))
		for _, id := range current {
			have[id] = true
		}
		seen := make(map[string]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if !have[id] || seen[id] {
				return ErrInvalidReorderSet
			}
			seen[id] = true
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&Asset{}).
				Where("id = ?", id).
				Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CheckIntegrity verifies the two storage invariants for one owner: at most
// one primary image and a gap-free ascending sort order. A violation means a
// bug in the locking or the transactions, not something to repair here.
func (r *repository) CheckIntegrity(ctx context.Context, owner OwnerRef) error {
	cond, arg := ownerCondition(owner)

	var primaries int64
	if err := r.db.WithContext(ctx).Model(&Asset{}).
		Where(cond, arg).
		Where("is_primary = ?", true).
		Count(&primaries).Error; err != nil {
		return err
	}
	if primaries > 1 {
		return fmt.Errorf("%w: %s has %d primary assets", ErrStorageIntegrity, owner, primaries)
	}

	assets, err := r.ListByOwner(ctx, owner)
	if err != nil {
		return err
	}
	for i, a := range assets {
		if a.SortOrder != i {
			return fmt.Errorf("%w: %s sort order has a gap at position %d", ErrStorageIntegrity, owner, i)
		}
	}
	return nil
}

// translateIntegrityError maps a unique violation on the partial primary
// indexes (Postgres) onto ErrStorageIntegrity. Correct locking keeps this
// from ever firing; when it does, the transaction has already rolled back.
func translateIntegrityError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" &&
		(pgErr.ConstraintName == "idx_media_one_primary_property" || pgErr.ConstraintName == "idx_media_one_primary_client") {
		return fmt.Errorf("%w: %v", ErrStorageIntegrity, err)
	}
	return err
}
