package handler

import (
	"net/http"
	"strings"

	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// GET /api/specialists/patients
func (h *Handler) ApiListPatients(ctx *gin.Context) {
	patients, err := h.Repository.ListPatients(ctx.Request.Context(), currentSpecialistID(ctx))
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, patients, int64(len(patients)), gin.H{})
}

// POST /api/specialists/patients {"username": "", "email": ""}
func (h *Handler) ApiAddPatient(ctx *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	err := h.linkPatient(ctx, strings.TrimSpace(body.Username), strings.TrimSpace(body.Email))
	if apperr.IsNotFound(err) {
		h.errorHandler(ctx, http.StatusNotFound, apperr.Invalid(msgPatientInfo))
		return
	}
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonStatus(ctx, http.StatusCreated, gin.H{"username": body.Username}, 1, gin.H{"message": msgPatientAdded})
}

// apiPatient resolves :user_id to one of the caller's patients.
func (h *Handler) apiPatient(ctx *gin.Context) (uint, bool) {
	userID, ok := parseID(ctx.Param("user_id"))
	if !ok {
		h.apiError(ctx, apperr.Invalid("invalid user id"))
		return 0, false
	}
	linked, err := h.Repository.IsPatient(ctx.Request.Context(), currentSpecialistID(ctx), userID)
	if err != nil {
		h.apiError(ctx, err)
		return 0, false
	}
	if !linked {
		h.errorHandler(ctx, http.StatusForbidden, apperr.Invalid(msgNotYourPatient))
		return 0, false
	}
	return userID, true
}

// GET /api/specialists/patients/:user_id/diet-plans
func (h *Handler) ApiPatientDietPlans(ctx *gin.Context) {
	userID, ok := h.apiPatient(ctx)
	if !ok {
		return
	}
	plans, err := h.Repository.ListDietPlans(ctx.Request.Context(), userID)
	if err != nil {
		h.apiError(ctx, err)
		return
	}

	views := make([]*planView, 0, len(plans))
	for _, p := range plans {
		v, err := h.loadPlanView(ctx.Request.Context(), userID, p.ID)
		if err != nil {
			h.apiError(ctx, err)
			return
		}
		views = append(views, v)
	}
	jsonResponse(ctx, views, int64(len(views)), gin.H{"user_id": userID})
}

// POST /api/specialists/patients/:user_id/diet-plans
func (h *Handler) ApiCreatePatientDietPlan(ctx *gin.Context) {
	userID, ok := h.apiPatient(ctx)
	if !ok {
		return
	}
	h.apiCreatePlan(ctx, userID)
}
