package media

import "time"

// assetView is the client-facing metadata shape: everything except the raw
// content, plus the two derived fetch URLs.
type assetView struct {
	ID               string     `json:"id"`
	Owner            string     `json:"owner"`
	AgentID          *int64     `json:"agent_id,omitempty"`
	Class            AssetClass `json:"asset_class"`
	FileName         string     `json:"file_name"`
	OriginalFileName string     `json:"original_file_name"`
	MimeType         string     `json:"mime_type"`
	SizeBytes        int64      `json:"size_bytes"`
	Category         Category   `json:"category"`
	Title            string     `json:"title,omitempty"`
	Description      string     `json:"description,omitempty"`
	IsPrimary        bool       `json:"is_primary"`
	SortOrder        int        `json:"sort_order"`
	Width            int        `json:"width,omitempty"`
	Height           int        `json:"height,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	OriginalURL      string     `json:"original_url"`
	ThumbnailURL     string     `json:"thumbnail_url"`
	ThumbnailDataURI string     `json:"thumbnail_data_uri,omitempty"`
}

// newAssetView builds the metadata view. When inline is true and the asset
// has a preview, the view embeds it as a data URI so a gallery can render
// without a second fetch.
func newAssetView(a *Asset, inline bool) assetView {
	v := assetView{
		ID:               a.ID,
		Owner:            a.Owner().String(),
		AgentID:          a.AgentID,
		Class:            a.Class,
		FileName:         a.FileName,
		OriginalFileName: a.OriginalFileName,
		MimeType:         a.MimeType,
		SizeBytes:        a.SizeBytes,
		Category:         a.Category,
		Title:            a.Title,
		Description:      a.Description,
		IsPrimary:        a.IsPrimary,
		SortOrder:        a.SortOrder,
		Width:            a.Width,
		Height:           a.Height,
		CreatedAt:        a.CreatedAt,
		OriginalURL:      "/api/v1/media/" + a.ID,
		ThumbnailURL:     "/api/v1/media/" + a.ID + "/thumbnail",
	}
	if inline && a.HasThumbnail() {
		v.ThumbnailDataURI = InlineURI(a.ThumbnailContent, ThumbnailMimeType)
	}
	return v
}

type reorderRequest struct {
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1"`
}

type updateMetaRequest struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category"`
}
