package media

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// UploadInput carries one upload through validation and persistence.
type UploadInput struct {
	Raw         []byte
	FileName    string
	MimeType    string
	Category    string
	Title       string
	Description string
	WantPrimary bool
}

// Store owns the media asset lifecycle: validated upload, thumbnail
// derivation, persistence, ordering and primary-selection rules, retrieval.
// All writes for a given owner are serialized through per-owner locks.
type Store struct {
	repo      Repository
	validator *Validator
	thumb     *Thumbnailer
	locks     *ownerLocks
	events    Publisher
}

// NewStore wires the store. events may be nil when no live feed is attached.
func NewStore(repo Repository, validator *Validator, thumb *Thumbnailer, events Publisher) *Store {
	return &Store{
		repo:      repo,
		validator: validator,
		thumb:     thumb,
		locks:     newOwnerLocks(),
		events:    events,
	}
}

// Upload validates, encodes and persists a new asset for the owner. Thumbnail
// derivation happens before the owner lock is taken — it is the CPU-heavy
// part and must not extend the critical section. A failed derivation is
// logged and the asset is stored without a preview.
func (s *Store) Upload(ctx context.Context, owner OwnerRef, agentID *int64, in UploadInput) (*Asset, error) {
	class := s.validator.Classify(in.MimeType)

	vu, err := s.validator.Validate(in.Raw, in.MimeType, in.FileName, class)
	if err != nil {
		return nil, err
	}

	// Documents carry their own access-control scope; images inherit it from
	// the owning property's agent.
	if class == ClassDocument && agentID == nil {
		return nil, ErrAgentRequired
	}

	category, ok := ParseCategory(in.Category)
	if !ok {
		return nil, ErrInvalidCategory
	}

	encoded := Encode(in.Raw)

	var thumbEncoded string
	var width, height int
	if class == ClassImage {
		thumbEncoded, width, height, err = s.thumb.Derive(in.Raw)
		if err != nil {
			if !errors.Is(err, ErrThumbnailDecode) {
				return nil, err
			}
			log.Printf("media: thumbnail derivation failed for %q (%s), storing without preview: %v", vu.FileName, owner, err)
			thumbEncoded = ""
		}
	}

	asset := &Asset{
		ID:               uuid.New().String(),
		AgentID:          agentID,
		Class:            class,
		FileName:         vu.FileName,
		OriginalFileName: vu.OriginalFileName,
		MimeType:         vu.MimeType,
		SizeBytes:        vu.SizeBytes,
		Content:          encoded,
		ThumbnailContent: thumbEncoded,
		Category:         category,
		Title:            in.Title,
		Description:      in.Description,
		Width:            width,
		Height:           height,
		CreatedAt:        time.Now(),
	}
	switch owner.Kind {
	case OwnerProperty:
		asset.PropertyID = &owner.ID
	case OwnerClient:
		asset.ClientID = &owner.ID
	}

	unlock := s.locks.Lock(owner)
	defer unlock()

	if err := s.repo.Insert(ctx, asset, in.WantPrimary); err != nil {
		return nil, err
	}

	s.publish(owner, Event{Type: "created", Owner: owner.String(), AssetID: asset.ID, SortOrder: asset.SortOrder})
	return asset, nil
}

// Get returns one asset's metadata record.
func (s *Store) Get(ctx context.Context, id string) (*Asset, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByOwner returns the owner's assets ordered by sort order, creation time
// breaking ties.
func (s *Store) ListByOwner(ctx context.Context, owner OwnerRef) ([]*Asset, error) {
	return s.repo.ListByOwner(ctx, owner)
}

// GetOriginal returns the decoded original bytes with their content type and
// download file name.
func (s *Store) GetOriginal(ctx context.Context, id string) (*Asset, []byte, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	raw, err := Decode(a.Content)
	if err != nil {
		return nil, nil, err
	}
	return a, raw, nil
}

// GetThumbnail returns the decoded preview, or the original bytes when the
// asset has no stored preview. The returned mime type matches the bytes.
func (s *Store) GetThumbnail(ctx context.Context, id string) (*Asset, string, []byte, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", nil, err
	}
	if a.HasThumbnail() {
		raw, err := Decode(a.ThumbnailContent)
		if err != nil {
			return nil, "", nil, err
		}
		return a, ThumbnailMimeType, raw, nil
	}
	raw, err := Decode(a.Content)
	if err != nil {
		return nil, "", nil, err
	}
	return a, a.MimeType, raw, nil
}

// GetPrimary returns the owner's flagged primary image; when none is flagged
// the lowest sort order asset stands in for display purposes. Nil without
// error means the owner has no assets at all.
func (s *Store) GetPrimary(ctx context.Context, owner OwnerRef) (*Asset, error) {
	assets, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, nil
	}
	for _, a := range assets {
		if a.IsPrimary {
			return a, nil
		}
	}
	return assets[0], nil
}

// SetPrimary promotes the asset to be its owner's primary image.
func (s *Store) SetPrimary(ctx context.Context, id string) (*Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := a.Owner()

	unlock := s.locks.Lock(owner)
	defer unlock()

	updated, err := s.repo.SetPrimary(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(owner, Event{Type: "primary_changed", Owner: owner.String(), AssetID: updated.ID})
	return updated, nil
}

// UpdateMeta replaces the mutable descriptive fields wholesale. An empty
// category means CategoryOther, not "keep the current one".
func (s *Store) UpdateMeta(ctx context.Context, id, title, description, category string) (*Asset, error) {
	cat, ok := ParseCategory(category)
	if !ok {
		return nil, ErrInvalidCategory
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := a.Owner()

	unlock := s.locks.Lock(owner)
	defer unlock()

	updated, err := s.repo.UpdateMeta(ctx, id, title, description, cat)
	if err != nil {
		return nil, err
	}

	s.publish(owner, Event{Type: "updated", Owner: owner.String(), AssetID: updated.ID})
	return updated, nil
}

// Delete removes the asset and closes the sort order gap among its siblings.
// No new primary is promoted when the primary is deleted; reads fall back to
// the lowest sort order until a caller picks one explicitly.
func (s *Store) Delete(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	owner := a.Owner()

	unlock := s.locks.Lock(owner)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(owner, Event{Type: "deleted", Owner: owner.String(), AssetID: id})
	return nil
}

// DeleteByOwner removes every asset of the owner. Called when the owning
// property or client record is deleted (orphan removal).
func (s *Store) DeleteByOwner(ctx context.Context, owner OwnerRef) error {
	unlock := s.locks.Lock(owner)
	defer unlock()

	return s.repo.DeleteByOwner(ctx, owner)
}

// Reorder rewrites the owner's display order to match orderedIDs exactly.
func (s *Store) Reorder(ctx context.Context, owner OwnerRef, orderedIDs []string) error {
	unlock := s.locks.Lock(owner)
	defer unlock()

	if err := s.repo.Reorder(ctx, owner, orderedIDs); err != nil {
		return err
	}

	s.publish(owner, Event{Type: "reordered", Owner: owner.String()})
	return nil
}

// CheckIntegrity runs the owner-level consistency checks. Used by tests and
// the health surface; a failure is a bug, not an operational condition.
func (s *Store) CheckIntegrity(ctx context.Context, owner OwnerRef) error {
	return s.repo.CheckIntegrity(ctx, owner)
}

func (s *Store) publish(owner OwnerRef, ev Event) {
	if s.events != nil {
		s.events.Publish(owner, ev)
	}
}
