package client

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
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=30"`
	Notes string `json:"notes" validate:"max=5000"`
}

func (h *Handler) Create(c *gin.Context) {
	agentID, ok := mustAgentID(c)
	if !ok {
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid client payload")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid client payload", fieldErrs)
		return
	}

	cl := &Client{
		AgentID: agentID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Notes:   req.Notes,
	}
	if err := h.service.Create(c.Request.Context(), cl); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not create client")
		return
	}
	response.Success(c, http.StatusCreated, cl)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "client id must be an integer")
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			response.Error(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "client not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not load client")
		return
	}
	response.Success(c, http.StatusOK, cl)
}

func (h *Handler) ListMine(c *gin.Context) {
	agentID, ok := mustAgentID(c)
	if !ok {
		return
	}

	clients, err := h.service.ListByAgent(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not list clients")
		return
	}
	response.Success(c, http.StatusOK, clients)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "client id must be an integer")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			response.Error(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "client not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not delete client")
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
