package property

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"realtymedia/internal/pkg/response"
	"realtymedia/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Address     string  `json:"address" validate:"required,max=300"`
	City        string  `json:"city" validate:"required,max=100"`
	Price       float64 `json:"price" validate:"gte=0"`
	Rooms       int     `json:"rooms" validate:"gte=0"`
	AreaSqm     float64 `json:"area_sqm" validate:"gte=0"`
	Description string  `json:"description" validate:"max=5000"`
}

// Create godoc
// @Summary Create a property listing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Router /properties [post]
func (h *Handler) Create(c *gin.Context) {
	agentID, ok := mustAgentID(c)
	if !ok {
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid property payload")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid property payload", fieldErrs)
		return
	}

	p := &Property{
		AgentID:     agentID,
		Address:     req.Address,
		City:        req.City,
		Price:       req.Price,
		Rooms:       req.Rooms,
		AreaSqm:     req.AreaSqm,
		Description: req.Description,
	}
	if err := h.service.Create(c.Request.Context(), p); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not create property")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// Get godoc
// @Summary Get a property by id
// @Produce json
// @Security BearerAuth
// @Router /properties/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "property id must be an integer")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			response.Error(c, http.StatusNotFound, "PROPERTY_NOT_FOUND", "property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not load property")
		return
	}
	response.Success(c, http.StatusOK, p)
}

// ListMine godoc
// @Summary List the authenticated agent's properties
// @Produce json
// @Security BearerAuth
// @Router /properties [get]
func (h *Handler) ListMine(c *gin.Context) {
	agentID, ok := mustAgentID(c)
	if !ok {
		return
	}

	props, err := h.service.ListByAgent(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not list properties")
		return
	}
	response.Success(c, http.StatusOK, props)
}

// Delete godoc
// @Summary Delete a property and all of its media
// @Produce json
// @Security BearerAuth
// @Router /properties/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "property id must be an integer")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			response.Error(c, http.StatusNotFound, "PROPERTY_NOT_FOUND", "property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not delete property")
		return
	}
	response.NoContent(c)
}

func mustAgentID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("agent_id")
	id, ok := v.(int64)
	if !exists || !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing agent identity")
		return 0, false
	}
	return id, true
}
