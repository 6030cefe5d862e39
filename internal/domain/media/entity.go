package media

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AssetClass separates property/client images (thumbnail + primary semantics)
// from document attachments (no thumbnail, no primary concept).
type AssetClass string

const (
	ClassImage    AssetClass = "image"
	ClassDocument AssetClass = "document"
)

// Category groups assets for the UI. Image and document categories share one
// enumeration; CategoryOther is the default for both classes.
type Category string

const (
	CategoryExterior    Category = "exterior"
	CategoryInterior    Category = "interior"
	CategoryFloorPlan   Category = "floor_plan"
	CategoryContract    Category = "contract"
	CategoryIDDocument  Category = "id_document"
	CategoryCertificate Category = "certificate"
	CategoryOther       Category = "other"
)

var knownCategories = map[Category]bool{
	CategoryExterior:    true,
	CategoryInterior:    true,
	CategoryFloorPlan:   true,
	CategoryContract:    true,
	CategoryIDDocument:  true,
	CategoryCertificate: true,
	CategoryOther:       true,
}

func ParseCategory(s string) (Category, bool) {
	if s == "" {
		return CategoryOther, true
	}
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, knownCategories[c]
}

// OwnerKind names the entity type an asset is attached to.
type OwnerKind string

const (
	OwnerProperty OwnerKind = "property"
	OwnerClient   OwnerKind = "client"
)

// OwnerRef identifies the single owning entity of an asset.
type OwnerRef struct {
	Kind OwnerKind
	ID   int64
}

func (o OwnerRef) String() string {
	return fmt.Sprintf("%s:%d", o.Kind, o.ID)
}

// ParseOwnerRef parses the "<kind>:<id>" form produced by String.
func ParseOwnerRef(s string) (OwnerRef, error) {
	kind, rawID, ok := strings.Cut(s, ":")
	if !ok {
		return OwnerRef{}, fmt.Errorf("invalid owner ref %q", s)
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return OwnerRef{}, fmt.Errorf("invalid owner ref %q", s)
	}
	k := OwnerKind(kind)
	if (k != OwnerProperty && k != OwnerClient) || id <= 0 {
		return OwnerRef{}, fmt.Errorf("invalid owner ref %q", s)
	}
	return OwnerRef{Kind: k, ID: id}, nil
}

// Asset is a stored media record: an image or a document attachment belonging
// to exactly one property or client. Content and ThumbnailContent hold the
// base64-encoded bytes; SizeBytes is always the decoded (original) length.
type Asset struct {
	ID               string     `gorm:"column:id;primaryKey" json:"id"`
	PropertyID       *int64     `gorm:"column:property_id;index" json:"property_id,omitempty"`
	ClientID         *int64     `gorm:"column:client_id;index" json:"client_id,omitempty"`
	AgentID          *int64     `gorm:"column:agent_id" json:"agent_id,omitempty"`
	Class            AssetClass `gorm:"column:asset_class" json:"asset_class"`
	FileName         string     `gorm:"column:file_name" json:"file_name"`
	OriginalFileName string     `gorm:"column:original_file_name" json:"original_file_name"`
	MimeType         string     `gorm:"column:mime_type" json:"mime_type"`
	SizeBytes        int64      `gorm:"column:size_bytes" json:"size_bytes"`
	Content          string     `gorm:"column:content;type:text" json:"-"`
	ThumbnailContent string     `gorm:"column:thumbnail_content;type:text" json:"-"`
	Category         Category   `gorm:"column:category" json:"category"`
	Title            string     `gorm:"column:title" json:"title,omitempty"`
	Description      string     `gorm:"column:description" json:"description,omitempty"`
	IsPrimary        bool       `gorm:"column:is_primary" json:"is_primary"`
	SortOrder        int        `gorm:"column:sort_order" json:"sort_order"`
	Width            int        `gorm:"column:width" json:"width,omitempty"`
	Height           int        `gorm:"column:height" json:"height,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Asset) TableName() string { return "media_assets" }

// Owner returns the asset's owning entity reference. Exactly one of
// PropertyID/ClientID is set for a valid record.
func (a *Asset) Owner() OwnerRef {
	if a.PropertyID != nil {
		return OwnerRef{Kind: OwnerProperty, ID: *a.PropertyID}
	}
	if a.ClientID != nil {
		return OwnerRef{Kind: OwnerClient, ID: *a.ClientID}
	}
	return OwnerRef{}
}

func (a *Asset) IsImage() bool { return a.Class == ClassImage }

// HasThumbnail reports whether a derived preview was stored. Only image
// assets whose derivation succeeded carry one.
func (a *Asset) HasThumbnail() bool { return a.ThumbnailContent != "" }
