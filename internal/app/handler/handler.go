package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/rafvai/DietShopper/internal/app/config"
	"github.com/rafvai/DietShopper/internal/app/middleware"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
	"github.com/rafvai/DietShopper/internal/app/pkg/auth"
	"github.com/rafvai/DietShopper/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ImageStore keeps food pictures. A nil store disables uploads.
type ImageStore interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader, foodName string) (string, error)
	DeleteImage(ctx context.Context, key string) error
	PublicURL(key string) string
}

type Handler struct {
	Repository *repository.Repository
	Config     *config.Config
	JWTService *auth.JWTService
	Sessions   auth.Store
	Storage    ImageStore
}

func NewHandler(r *repository.Repository, cfg *config.Config, jwtSvc *auth.JWTService, sessions auth.Store, images ImageStore) *Handler {
	return &Handler{
		Repository: r,
		Config:     cfg,
		JWTService: jwtSvc,
		Sessions:   sessions,
		Storage:    images,
	}
}

func (h *Handler) authService() *middleware.AuthService {
	return &middleware.AuthService{JWT: h.JWTService, Sessions: h.Sessions}
}

// RegisterMiddleware installs the global chain. Call it before any Register*
// method so every route sees the caller identity.
func (h *Handler) RegisterMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Authenticate(h.authService()))
}

// RegisterHandler registers the user facing HTML pages.
func (h *Handler) RegisterHandler(router *gin.Engine) {
	router.GET("/login", h.LoginPage)
	router.POST("/login", h.Login)
	router.GET("/register", h.RegisterPage)
	router.POST("/register", h.Register)
	router.GET("/logout", h.Logout)

	user := router.Group("/", middleware.RequireRole(auth.RoleUser, "/login"))
	{
		user.GET("/", h.Index)
		user.GET("/shopping-list", h.ShoppingListPage)
		user.POST("/shopping-list", h.ShoppingList)
		user.GET("/diet-plan", h.DietPlanPage)
		user.POST("/diet-plan", h.DietPlan)
		user.POST("/diet-plan/:id/delete", h.DeleteDietPlan)
		user.GET("/add-diet", h.AddDietPage)
		user.POST("/add-diet", h.AddDiet)
		user.GET("/measurements", h.MeasurementsPage)
		user.POST("/measurements", h.Measurements)
		user.GET("/add_measurement", h.AddMeasurementPage)
		user.POST("/add_measurement", h.AddMeasurement)
		user.GET("/progress", h.Progress)
		user.GET("/add-food", h.AddFoodPage)
		user.POST("/add-food", h.AddFood)
		user.GET("/foods/:id/substitutes", h.FoodSubstitutes)
	}

	sp := router.Group("/specialist")
	{
		sp.GET("/login", h.SpecialistLoginPage)
		sp.POST("/login", h.SpecialistLogin)
		sp.GET("/register", h.SpecialistRegisterPage)
		sp.POST("/register", h.SpecialistRegister)
		sp.GET("/logout", h.Logout)
	}
	spAuth := router.Group("/specialist", middleware.RequireRole(auth.RoleSpecialist, "/specialist/login"))
	{
		spAuth.GET("/index", h.SpecialistIndex)
		spAuth.GET("/add-patient", h.AddPatientPage)
		spAuth.POST("/add-patient", h.AddPatient)
		spAuth.GET("/display-patients", h.DisplayPatients)
		spAuth.GET("/display-patients/:patient_id", h.PatientPlans)
		spAuth.POST("/display-patients/:patient_id", h.PatientPlan)
		spAuth.GET("/add-diet", h.SpecialistAddDietPage)
		spAuth.POST("/add-diet", h.SpecialistAddDiet)
	}
}

// RegisterStatic loads templates and serves static assets.
func (h *Handler) RegisterStatic(router *gin.Engine) {
	router.SetFuncMap(templateFuncs())
	router.LoadHTMLGlob(h.Config.TemplatesGlob)
	router.Static("/static", h.Config.StaticDir)
}

// errorHandler logs err and answers with the JSON error envelope.
func (h *Handler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.WithField("request_id", ctx.GetString(middleware.RequestIDKey)).Error(err.Error())
	ctx.JSON(errorStatusCode, gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}

// apiError maps the apperr kinds onto HTTP statuses. Data errors never leak
// their cause to the client.
func (h *Handler) apiError(ctx *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		h.errorHandler(ctx, http.StatusBadRequest, err)
	case apperr.IsNotFound(err):
		h.errorHandler(ctx, http.StatusNotFound, errors.New("not found"))
	default:
		logrus.WithField("request_id", ctx.GetString(middleware.RequestIDKey)).Error(err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"status":      "error",
			"description": "internal error",
		})
	}
}

func jsonResponse(ctx *gin.Context, data interface{}, count int64, meta gin.H) {
	jsonStatus(ctx, http.StatusOK, data, count, meta)
}

func jsonStatus(ctx *gin.Context, status int, data interface{}, count int64, meta gin.H) {
	ctx.JSON(status, gin.H{
		"status": "ok",
		"data":   data,
		"count":  count,
		"meta":   meta,
	})
}

func (h *Handler) imageURL(key string) string {
	if h.Storage == nil {
		return ""
	}
	return h.Storage.PublicURL(key)
}
