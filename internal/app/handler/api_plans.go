package handler

import (
	"net/http"

	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// GET /api/diet-plans
func (h *Handler) ApiListDietPlans(ctx *gin.Context) {
	plans, err := h.Repository.ListDietPlans(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, plans, int64(len(plans)), gin.H{})
}

// POST /api/diet-plans
func (h *Handler) ApiCreateDietPlan(ctx *gin.Context) {
	h.apiCreatePlan(ctx, currentUserID(ctx))
}

func (h *Handler) apiCreatePlan(ctx *gin.Context, ownerID uint) {
	var body planInput
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	days, meals, err := h.reference(ctx.Request.Context())
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	foods, quantities, err := body.cells(days, meals)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	plan, err := h.createPlan(ctx.Request.Context(), ownerID, body.Name, body.Description, days, meals, foods, quantities)
	if err != nil {
		h.apiError(ctx, err)
		return
	}

	view, err := h.loadPlanView(ctx.Request.Context(), ownerID, plan.ID)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonStatus(ctx, http.StatusCreated, view, 1, gin.H{"message": msgPlanAdded})
}

// GET /api/diet-plans/:id
func (h *Handler) ApiGetDietPlan(ctx *gin.Context) {
	planID, ok := parseID(ctx.Param("id"))
	if !ok {
		h.apiError(ctx, apperr.Invalid("invalid diet plan id"))
		return
	}
	view, err := h.loadPlanView(ctx.Request.Context(), currentUserID(ctx), planID)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, view, 1, gin.H{"id": planID})
}

// DELETE /api/diet-plans/:id
func (h *Handler) ApiDeleteDietPlan(ctx *gin.Context) {
	planID, ok := parseID(ctx.Param("id"))
	if !ok {
		h.apiError(ctx, apperr.Invalid("invalid diet plan id"))
		return
	}
	if err := h.Repository.DeleteDietPlan(ctx.Request.Context(), currentUserID(ctx), planID); err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, gin.H{"deleted": planID}, 1, gin.H{})
}

// GET /api/diet-plans/:id/shopping-list
func (h *Handler) ApiShoppingList(ctx *gin.Context) {
	planID, ok := parseID(ctx.Param("id"))
	if !ok {
		h.apiError(ctx, apperr.Invalid("invalid diet plan id"))
		return
	}
	list, err := h.shoppingList(ctx.Request.Context(), currentUserID(ctx), planID)
	if err != nil {
		h.apiError(ctx, err)
		return
	}

	meta := gin.H{"diet_plan_id": planID}
	if len(list) == 0 {
		meta["message"] = msgEmptyPlan
	}
	jsonResponse(ctx, list.Items(), int64(len(list)), meta)
}
