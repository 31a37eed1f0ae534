package handler

import (
	"net/http"
	"strings"

	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	msgNoPlans      = "You don't have any diet plan assigned, let's go add a new one!"
	msgChoosePlan   = "Choose your diet plan"
	msgEmptyPlan    = "You don't have any food in the selected diet plan"
	msgSelectPlan   = "Please select a valid diet plan"
	msgPlanNotFound = "Diet plan not found."
	msgPlanDeleted  = "Diet plan deleted."
)

func (h *Handler) ShoppingListPage(ctx *gin.Context) {
	plans, err := h.Repository.ListDietPlans(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}

	data := gin.H{"plans": plans, "message": msgChoosePlan}
	if len(plans) == 0 {
		data["message"] = msgNoPlans
		data["noPlans"] = true
	}
	h.render(ctx, http.StatusOK, "shopping_list.html", data)
}

func (h *Handler) ShoppingList(ctx *gin.Context) {
	planID, ok := parseID(ctx.PostForm("dietPlan"))
	if !ok {
		h.redirectWith(ctx, "/shopping-list", flashError, msgSelectPlan)
		return
	}

	list, err := h.shoppingList(ctx.Request.Context(), currentUserID(ctx), planID)
	if apperr.IsNotFound(err) {
		h.redirectWith(ctx, "/shopping-list", flashInfo, msgSelectPlan)
		return
	}
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}

	data := gin.H{"items": list.Items()}
	if len(list) == 0 {
		data["emptyMessage"] = msgEmptyPlan
	}
	h.render(ctx, http.StatusOK, "shopping_list.html", data)
}

func (h *Handler) DietPlanPage(ctx *gin.Context) {
	plans, err := h.Repository.ListDietPlans(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}
	h.render(ctx, http.StatusOK, "diet_plan.html", gin.H{"plans": plans})
}

func (h *Handler) DietPlan(ctx *gin.Context) {
	userID := currentUserID(ctx)
	planID, ok := parseID(ctx.PostForm("dietPlan"))
	if !ok {
		ctx.Redirect(http.StatusFound, "/diet-plan")
		return
	}

	view, err := h.loadPlanView(ctx.Request.Context(), userID, planID)
	if apperr.IsNotFound(err) {
		h.redirectWith(ctx, "/diet-plan", flashInfo, msgPlanNotFound)
		return
	}
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}

	plans, err := h.Repository.ListDietPlans(ctx.Request.Context(), userID)
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}
	h.render(ctx, http.StatusOK, "diet_plan.html", gin.H{
		"plans": plans,
		"plan":  view.Plan,
		"days":  view.Days,
	})
}

func (h *Handler) DeleteDietPlan(ctx *gin.Context) {
	planID, ok := parseID(ctx.Param("id"))
	if !ok {
		h.redirectWith(ctx, "/diet-plan", flashInfo, msgPlanNotFound)
		return
	}

	err := h.Repository.DeleteDietPlan(ctx.Request.Context(), currentUserID(ctx), planID)
	switch {
	case apperr.IsNotFound(err):
		h.redirectWith(ctx, "/diet-plan", flashInfo, msgPlanNotFound)
	case err != nil:
		logrus.WithError(err).Error("delete diet plan")
		h.redirectWith(ctx, "/diet-plan", flashError, "An error occurred while deleting the diet plan. Please try again.")
	default:
		h.redirectWith(ctx, "/diet-plan", flashSuccess, msgPlanDeleted)
	}
}

func (h *Handler) AddDietPage(ctx *gin.Context) {
	data, err := h.dietFormData(ctx)
	if err != nil {
		logrus.WithError(err).Error("add diet form")
		h.redirectWith(ctx, "/", flashError, msgGenericFailure)
		return
	}
	h.render(ctx, http.StatusOK, "add_diet.html", data)
}

func (h *Handler) AddDiet(ctx *gin.Context) {
	if h.submitDiet(ctx, currentUserID(ctx), "/add-diet") {
		h.redirectWith(ctx, "/diet-plan", flashSuccess, msgPlanAdded)
	}
}

// dietFormData loads what the weekly matrix form needs.
func (h *Handler) dietFormData(ctx *gin.Context) (gin.H, error) {
	days, meals, err := h.reference(ctx.Request.Context())
	if err != nil {
		return nil, err
	}
	foods, err := h.Repository.ListFoods(ctx.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"days": days, "meals": meals, "foods": foods}, nil
}

// submitDiet creates a plan for ownerID from the posted matrix form. On
// failure it flashes and redirects to formPath itself and returns false.
func (h *Handler) submitDiet(ctx *gin.Context, ownerID uint, formPath string) bool {
	name := strings.TrimSpace(ctx.PostForm("dietName"))
	description := strings.TrimSpace(ctx.PostForm("dietDescription"))
	if name == "" || description == "" {
		h.redirectWith(ctx, formPath, flashError, msgPlanHeader)
		return false
	}

	days, meals, err := h.reference(ctx.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("load reference")
		h.redirectWith(ctx, formPath, flashError, msgPlanFailed)
		return false
	}

	foods, quantities := formCells(ctx, days, meals)
	_, err = h.createPlan(ctx.Request.Context(), ownerID, name, description, days, meals, foods, quantities)
	switch {
	case apperr.IsValidation(err):
		h.redirectWith(ctx, formPath, flashError, "Invalid input: "+err.Error())
		return false
	case apperr.IsNotFound(err):
		h.redirectWith(ctx, formPath, flashInfo, msgFoodNotFound)
		return false
	case err != nil:
		logrus.WithError(err).Error("create diet plan")
		h.redirectWith(ctx, formPath, flashError, msgPlanFailed)
		return false
	}
	return true
}

// pageFailure handles unexpected data errors on page loads.
func (h *Handler) pageFailure(ctx *gin.Context, err error) {
	logrus.WithError(err).Error(ctx.Request.URL.Path)
	h.render(ctx, http.StatusInternalServerError, "index.html", gin.H{"error": msgGenericFailure})
}
