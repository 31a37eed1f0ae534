package handler

import (
	"net/http"
	"strings"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type foodInput struct {
	Name     string  `json:"name" form:"name"`
	Calories int     `json:"calories" form:"calories"`
	Protein  float64 `json:"protein" form:"protein"`
	Carbs    float64 `json:"carbs" form:"carbs"`
	Fats     float64 `json:"fats" form:"fats"`
}

// addFood validates and stores a catalog entry. Names are unique.
func (h *Handler) addFood(ctx *gin.Context, in foodInput) (*ds.Food, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperr.Invalid("Food name is required.")
	}
	if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fats < 0 {
		return nil, apperr.Invalid("Nutritional values cannot be negative.")
	}
	for _, v := range []float64{in.Protein, in.Carbs, in.Fats} {
		if v >= 1000 {
			return nil, apperr.Invalid("Macronutrients must be below 1000.")
		}
	}

	taken, err := h.Repository.FoodNameTaken(ctx.Request.Context(), in.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Invalid("A food named %q already exists.", in.Name)
	}

	f := &ds.Food{Name: in.Name, Calories: in.Calories, Protein: in.Protein, Carbs: in.Carbs, Fats: in.Fats}
	if err := h.Repository.CreateFood(ctx.Request.Context(), f); err != nil {
		return nil, err
	}
	return f, nil
}

// attachImage uploads the "image" form file, if any, for food f.
func (h *Handler) attachImage(ctx *gin.Context, f *ds.Food) error {
	fh, err := ctx.FormFile("image")
	if err != nil {
		return nil
	}
	if h.Storage == nil {
		return apperr.Invalid("Image uploads are disabled.")
	}
	key, err := h.Storage.UploadImage(ctx.Request.Context(), fh, f.Name)
	if err != nil {
		return apperr.Invalid("Could not store image: %s", err.Error())
	}
	if err := h.Repository.UpdateFoodImage(ctx.Request.Context(), f.ID, key); err != nil {
		_ = h.Storage.DeleteImage(ctx.Request.Context(), key)
		return err
	}
	if f.ImageKey != "" {
		_ = h.Storage.DeleteImage(ctx.Request.Context(), f.ImageKey)
	}
	f.ImageKey = key
	return nil
}

func (h *Handler) AddFoodPage(ctx *gin.Context) {
	foods, err := h.Repository.ListFoods(ctx.Request.Context())
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}
	h.render(ctx, http.StatusOK, "add_food.html", gin.H{"foods": foods})
}

func (h *Handler) AddFood(ctx *gin.Context) {
	var in foodInput
	if err := ctx.ShouldBind(&in); err != nil {
		h.redirectWith(ctx, "/add-food", flashError, "Invalid input: nutritional values must be numbers.")
		return
	}

	f, err := h.addFood(ctx, in)
	if err != nil {
		h.foodFailure(ctx, err)
		return
	}
	if err := h.attachImage(ctx, f); err != nil {
		h.foodFailure(ctx, err)
		return
	}

	if sub, ok := parseID(ctx.PostForm("substitute_of")); ok {
		if err := h.Repository.AddSubstitute(ctx.Request.Context(), sub, f.ID); err != nil {
			h.foodFailure(ctx, err)
			return
		}
	}
	h.redirectWith(ctx, "/add-food", flashSuccess, "Food added successfully!")
}

func (h *Handler) foodFailure(ctx *gin.Context, err error) {
	if apperr.IsValidation(err) {
		h.redirectWith(ctx, "/add-food", flashError, err.Error())
		return
	}
	logrus.WithError(err).Error("add food")
	h.redirectWith(ctx, "/add-food", flashError, "An error occurred while adding the food. Please try again.")
}

func (h *Handler) FoodSubstitutes(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		h.redirectWith(ctx, "/add-food", flashInfo, "Food not found.")
		return
	}
	food, err := h.Repository.GetFood(ctx.Request.Context(), id)
	if apperr.IsNotFound(err) {
		h.redirectWith(ctx, "/add-food", flashInfo, "Food not found.")
		return
	}
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}
	subs, err := h.Repository.Substitutes(ctx.Request.Context(), id)
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}
	h.render(ctx, http.StatusOK, "substitutes.html", gin.H{
		"food":        food,
		"imageURL":    h.imageURL(food.ImageKey),
		"substitutes": subs,
	})
}
