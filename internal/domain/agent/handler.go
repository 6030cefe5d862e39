package agent

import (
	"errors"
	"net/http"

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

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login godoc
// @Summary Agent login
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400,401 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "expected email and password")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid login request", fieldErrs)
		return
	}

	token, a, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "login failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"agent": a,
	})
}

// Me godoc
// @Summary Current agent profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	id, exists := c.Get("agent_id")
	agentID, ok := id.(int64)
	if !exists || !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing agent identity")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "AGENT_NOT_FOUND", "agent not found")
		return
	}
	response.Success(c, http.StatusOK, a)
}
