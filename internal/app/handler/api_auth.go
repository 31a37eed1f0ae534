package handler

import (
	"net/http"

	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
	"github.com/rafvai/DietShopper/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// issue answers a successful login or registration with a token and a
// cookie session for the same identity.
func (h *Handler) issue(ctx *gin.Context, subject interface{}, data auth.SessionData) {
	token, err := h.JWTService.Generate(data.SubjectID, data.Username, data.Role)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	sessionID, err := h.startSession(ctx, data)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, gin.H{
		data.Role:    subject,
		"token":      token,
		"session_id": sessionID,
	}, 1, gin.H{"role": data.Role})
}

// POST /api/users/register
func (h *Handler) ApiRegisterUser(ctx *gin.Context) {
	var body registration
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	u, err := h.registerUser(ctx.Request.Context(), body)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	h.issue(ctx, u, auth.SessionData{SubjectID: u.ID, Username: u.Username, Role: auth.RoleUser})
}

// POST /api/users/login
func (h *Handler) ApiLogin(ctx *gin.Context) {
	var body credentials
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	u, err := h.authenticateUser(ctx.Request.Context(), body.Username, body.Password)
	if err != nil {
		h.unauthorized(ctx, err)
		return
	}
	h.issue(ctx, u, auth.SessionData{SubjectID: u.ID, Username: u.Username, Role: auth.RoleUser})
}

// POST /api/users/logout
func (h *Handler) ApiLogout(ctx *gin.Context) {
	h.endSession(ctx)
	jsonResponse(ctx, gin.H{"message": "logged out"}, 1, gin.H{})
}

// POST /api/specialists/register
func (h *Handler) ApiRegisterSpecialist(ctx *gin.Context) {
	var body registration
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	s, err := h.registerSpecialist(ctx.Request.Context(), body)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	h.issue(ctx, s, auth.SessionData{SubjectID: s.ID, Username: s.Username, Role: auth.RoleSpecialist})
}

// POST /api/specialists/login
func (h *Handler) ApiLoginSpecialist(ctx *gin.Context) {
	var body credentials
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	s, err := h.authenticateSpecialist(ctx.Request.Context(), body.Username, body.Password)
	if err != nil {
		h.unauthorized(ctx, err)
		return
	}
	h.issue(ctx, s, auth.SessionData{SubjectID: s.ID, Username: s.Username, Role: auth.RoleSpecialist})
}

func (h *Handler) unauthorized(ctx *gin.Context, err error) {
	if apperr.IsValidation(err) {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}
	h.apiError(ctx, err)
}
