package handler

import (
	"net/http"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type foodItem struct {
	ds.Food
	ImageURL string `json:"image_url,omitempty"`
}

func (h *Handler) foodItems(foods []ds.Food) []foodItem {
	out := make([]foodItem, 0, len(foods))
	for _, f := range foods {
		out = append(out, foodItem{Food: f, ImageURL: h.imageURL(f.ImageKey)})
	}
	return out
}

// GET /api/foods
func (h *Handler) ApiListFoods(ctx *gin.Context) {
	foods, err := h.Repository.ListFoods(ctx.Request.Context())
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, h.foodItems(foods), int64(len(foods)), gin.H{})
}

// POST /api/foods
func (h *Handler) ApiCreateFood(ctx *gin.Context) {
	var body foodInput
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	f, err := h.addFood(ctx, body)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonStatus(ctx, http.StatusCreated, foodItem{Food: *f}, 1, gin.H{})
}

// GET /api/foods/:id/substitutes
func (h *Handler) ApiListSubstitutes(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		h.apiError(ctx, apperr.Invalid("invalid food id"))
		return
	}
	if _, err := h.Repository.GetFood(ctx.Request.Context(), id); err != nil {
		h.apiError(ctx, err)
		return
	}
	subs, err := h.Repository.Substitutes(ctx.Request.Context(), id)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, h.foodItems(subs), int64(len(subs)), gin.H{"food_id": id})
}

// POST /api/foods/:id/substitutes {"substitute_food_id": n}
func (h *Handler) ApiAddSubstitute(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		h.apiError(ctx, apperr.Invalid("invalid food id"))
		return
	}
	var body struct {
		SubstituteFoodID uint `json:"substitute_food_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	for _, fid := range []uint{id, body.SubstituteFoodID} {
		if _, err := h.Repository.GetFood(ctx.Request.Context(), fid); err != nil {
			h.apiError(ctx, err)
			return
		}
	}
	if err := h.Repository.AddSubstitute(ctx.Request.Context(), id, body.SubstituteFoodID); err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, gin.H{"food_id": id, "substitute_food_id": body.SubstituteFoodID}, 1, gin.H{})
}

// POST /api/foods/:id/image (multipart, field "image")
func (h *Handler) ApiUploadFoodImage(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		h.apiError(ctx, apperr.Invalid("invalid food id"))
		return
	}
	f, err := h.Repository.GetFood(ctx.Request.Context(), id)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	if _, err := ctx.FormFile("image"); err != nil {
		h.apiError(ctx, apperr.Invalid("image file is required"))
		return
	}
	if err := h.attachImage(ctx, f); err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, foodItem{Food: *f, ImageURL: h.imageURL(f.ImageKey)}, 1, gin.H{"id": id})
}
