package handler

import (
	"github.com/rafvai/DietShopper/internal/app/middleware"
	"github.com/rafvai/DietShopper/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
)

// RegisterAPI registers the JSON API under /api.
func (h *Handler) RegisterAPI(router *gin.Engine) {
	api := router.Group("/api")

	api.POST("/users/register", h.ApiRegisterUser)
	api.POST("/users/login", h.ApiLogin)
	api.POST("/users/logout", h.ApiLogout)
	api.POST("/specialists/register", h.ApiRegisterSpecialist)
	api.POST("/specialists/login", h.ApiLoginSpecialist)

	user := api.Group("", middleware.RequireAPIRole(auth.RoleUser))
	{
		user.GET("/reference", h.ApiReference)

		user.GET("/foods", h.ApiListFoods)
		user.POST("/foods", h.ApiCreateFood)
		user.GET("/foods/:id/substitutes", h.ApiListSubstitutes)
		user.POST("/foods/:id/substitutes", h.ApiAddSubstitute)
		user.POST("/foods/:id/image", h.ApiUploadFoodImage)

		user.GET("/diet-plans", h.ApiListDietPlans)
		user.POST("/diet-plans", h.ApiCreateDietPlan)
		user.GET("/diet-plans/:id", h.ApiGetDietPlan)
		user.DELETE("/diet-plans/:id", h.ApiDeleteDietPlan)
		user.GET("/diet-plans/:id/shopping-list", h.ApiShoppingList)

		user.GET("/measurements", h.ApiListMeasurements)
		user.POST("/measurements", h.ApiCreateMeasurement)
		user.GET("/measurements/compare", h.ApiCompareMeasurements)
		user.GET("/measurements/progress", h.ApiProgress)
		user.GET("/measurements/:id", h.ApiGetMeasurement)
	}

	sp := api.Group("/specialists", middleware.RequireAPIRole(auth.RoleSpecialist))
	{
		sp.GET("/patients", h.ApiListPatients)
		sp.POST("/patients", h.ApiAddPatient)
		sp.GET("/patients/:user_id/diet-plans", h.ApiPatientDietPlans)
		sp.POST("/patients/:user_id/diet-plans", h.ApiCreatePatientDietPlan)
	}
}

// GET /api/reference
func (h *Handler) ApiReference(ctx *gin.Context) {
	days, meals, err := h.reference(ctx.Request.Context())
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, gin.H{"days": days, "meal_types": meals}, int64(len(days)*len(meals)), gin.H{})
}
