package media

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"realtymedia/internal/pkg/response"
	"realtymedia/internal/pkg/validator"
)

// Handler exposes the media subsystem over HTTP. Raw bytes go out through
// the original/thumbnail endpoints; everything else is metadata.
type Handler struct {
	store *Store
	hub   *Hub
}

func NewHandler(store *Store, hub *Hub) *Handler {
	return &Handler{store: store, hub: hub}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func ownerFromParam(c *gin.Context, kind OwnerKind) (OwnerRef, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_OWNER_ID", "owner id must be a positive integer")
		return OwnerRef{}, false
	}
	return OwnerRef{Kind: kind, ID: id}, true
}

func agentIDFromContext(c *gin.Context) *int64 {
	v, exists := c.Get("agent_id")
	if !exists {
		return nil
	}
	if id, ok := v.(int64); ok {
		return &id
	}
	return nil
}

// Upload godoc
// @Summary Upload a media asset for a property or client
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param category formData string false "Asset category"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param is_primary formData bool false "Make this the primary image"
// @Success 201 {object} map[string]interface{}
// @Failure 400,413,500 {object} map[string]interface{}
func (h *Handler) upload(c *gin.Context, kind OwnerKind) {
	owner, ok := ownerFromParam(c, kind)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "no file provided")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not open uploaded file")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return
	}

	in := UploadInput{
		Raw:         raw,
		FileName:    fileHeader.Filename,
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Category:    c.PostForm("category"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		WantPrimary: c.PostForm("is_primary") == "true" || c.PostForm("is_primary") == "1",
	}

	asset, err := h.store.Upload(c.Request.Context(), owner, agentIDFromContext(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, newAssetView(asset, false))
}

func (h *Handler) UploadForProperty(c *gin.Context) { h.upload(c, OwnerProperty) }
func (h *Handler) UploadForClient(c *gin.Context)   { h.upload(c, OwnerClient) }

// List godoc
// @Summary List an owner's media assets in display order
// @Produce json
// @Security BearerAuth
// @Param inline query bool false "Embed thumbnail data URIs"
// @Success 200 {object} map[string]interface{}
func (h *Handler) list(c *gin.Context, kind OwnerKind) {
	owner, ok := ownerFromParam(c, kind)
	if !ok {
		return
	}

	assets, err := h.store.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		h.respondError(c, err)
		return
	}

	inline := c.Query("inline") == "true" || c.Query("inline") == "1"
	views := make([]assetView, 0, len(assets))
	for _, a := range assets {
		views = append(views, newAssetView(a, inline))
	}
	response.Success(c, http.StatusOK, views)
}

func (h *Handler) ListForProperty(c *gin.Context) { h.list(c, OwnerProperty) }
func (h *Handler) ListForClient(c *gin.Context)   { h.list(c, OwnerClient) }

// GetPrimary godoc
// @Summary Get the owner's primary image (lowest sort order when none is flagged)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
func (h *Handler) getPrimary(c *gin.Context, kind OwnerKind) {
	owner, ok := ownerFromParam(c, kind)
	if !ok {
		return
	}

	asset, err := h.store.GetPrimary(c.Request.Context(), owner)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if asset == nil {
		response.Error(c, http.StatusNotFound, "NO_MEDIA", "owner has no media assets")
		return
	}
	response.Success(c, http.StatusOK, newAssetView(asset, true))
}

func (h *Handler) GetPrimaryForProperty(c *gin.Context) { h.getPrimary(c, OwnerProperty) }
func (h *Handler) GetPrimaryForClient(c *gin.Context)   { h.getPrimary(c, OwnerClient) }

// Reorder godoc
// @Summary Rewrite the owner's display order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400,409 {object} map[string]interface{}
func (h *Handler) reorder(c *gin.Context, kind OwnerKind) {
	owner, ok := ownerFromParam(c, kind)
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "expected {\"ordered_ids\": [...]}")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid reorder request", fieldErrs)
		return
	}

	if err := h.store.Reorder(c.Request.Context(), owner, req.OrderedIDs); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reordered": len(req.OrderedIDs)})
}

func (h *Handler) ReorderForProperty(c *gin.Context) { h.reorder(c, OwnerProperty) }
func (h *Handler) ReorderForClient(c *gin.Context)   { h.reorder(c, OwnerClient) }

// GetOriginal godoc
// @Summary Fetch the original file bytes
// @Produce octet-stream
// @Security BearerAuth
// @Param download query bool false "Force attachment disposition"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
func (h *Handler) GetOriginal(c *gin.Context) {
	asset, raw, err := h.store.GetOriginal(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	download := c.Query("download") == "true" || c.Query("download") == "1"
	response.Binary(c, asset.MimeType, asset.FileName, raw, download)
}

// GetThumbnail godoc
// @Summary Fetch the thumbnail bytes (original when no preview exists)
// @Produce octet-stream
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
func (h *Handler) GetThumbnail(c *gin.Context) {
	asset, mimeType, raw, err := h.store.GetThumbnail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	download := c.Query("download") == "true" || c.Query("download") == "1"
	response.Binary(c, mimeType, asset.FileName, raw, download)
}

// SetPrimary godoc
// @Summary Flag an image as its owner's primary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]interface{}
func (h *Handler) SetPrimary(c *gin.Context) {
	asset, err := h.store.SetPrimary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, newAssetView(asset, false))
}

// UpdateMeta godoc
// @Summary Replace title/description/category
// @Description Full replacement: every field takes the request value, and an
// omitted or empty category resets the asset to "other". Clients keeping a
// category must resend it.
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
func (h *Handler) UpdateMeta(c *gin.Context) {
	var req updateMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid update request")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid update request", fieldErrs)
		return
	}

	asset, err := h.store.UpdateMeta(c.Request.Context(), c.Param("id"), req.Title, req.Description, req.Category)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, newAssetView(asset, false))
}

// Delete godoc
// @Summary Delete an asset and renumber its siblings
// @Produce json
// @Security BearerAuth
// @Success 204
// @Failure 404 {object} map[string]interface{}
func (h *Handler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	response.NoContent(c)
}

// Watch godoc
// @Summary Subscribe to media events for one owner over websocket
// @Param owner query string true "Owner ref, e.g. property:12"
func (h *Handler) Watch(c *gin.Context) {
	owner, err := ParseOwnerRef(c.Query("owner"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_OWNER", err.Error())
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.Subscribe(owner, conn)
	defer h.hub.Unsubscribe(owner, conn)

	// Reads are only used to detect the peer going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAssetNotFound):
		response.Error(c, http.StatusNotFound, "ASSET_NOT_FOUND", "media asset not found")
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, ErrEmptyFile),
		errors.Is(err, ErrUnsupportedType),
		errors.Is(err, ErrExtensionMismatch),
		errors.Is(err, ErrUnsafeFileName),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrNotAnImage),
		errors.Is(err, ErrAgentRequired):
		response.Error(c, http.StatusBadRequest, "INVALID_UPLOAD", err.Error())
	case errors.Is(err, ErrInvalidReorderSet):
		response.Error(c, http.StatusConflict, "INVALID_REORDER_SET", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "media operation failed")
	}
}
