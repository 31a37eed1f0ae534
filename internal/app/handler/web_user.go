package handler

import (
	"net/http"
	"strings"

	"github.com/rafvai/DietShopper/internal/app/middleware"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
	"github.com/rafvai/DietShopper/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *Handler) LoginPage(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "login.html", nil)
}

func (h *Handler) Login(ctx *gin.Context) {
	u, err := h.authenticateUser(ctx.Request.Context(), ctx.PostForm("username"), ctx.PostForm("password"))
	if err != nil {
		h.formError(ctx, "login.html", err)
		return
	}

	data := auth.SessionData{SubjectID: u.ID, Username: u.Username, Role: auth.RoleUser}
	if _, err := h.startSession(ctx, data); err != nil {
		h.formError(ctx, "login.html", err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

func (h *Handler) RegisterPage(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "register.html", nil)
}

func (h *Handler) Register(ctx *gin.Context) {
	var in registration
	_ = ctx.ShouldBind(&in)

	u, err := h.registerUser(ctx.Request.Context(), in)
	if err != nil {
		h.formError(ctx, "register.html", err)
		return
	}

	data := auth.SessionData{SubjectID: u.ID, Username: u.Username, Role: auth.RoleUser}
	if _, err := h.startSession(ctx, data); err != nil {
		h.formError(ctx, "register.html", err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// Logout serves both /logout and /specialist/logout.
func (h *Handler) Logout(ctx *gin.Context) {
	h.endSession(ctx)
	if strings.HasPrefix(ctx.Request.URL.Path, "/specialist") {
		ctx.Redirect(http.StatusFound, "/specialist/login")
		return
	}
	ctx.Redirect(http.StatusFound, "/login")
}

// formError redisplays a form with the validation message, or a generic
// one when the failure came from the data layer.
func (h *Handler) formError(ctx *gin.Context, page string, err error) {
	status := http.StatusBadRequest
	msg := err.Error()
	if !apperr.IsValidation(err) {
		logrus.WithError(err).Error(page)
		status = http.StatusInternalServerError
		msg = msgGenericFailure
	}
	h.flash(ctx, flashError, msg)
	h.render(ctx, status, page, nil)
}

func (h *Handler) Index(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "index.html", gin.H{
		"welcome": "Welcome back, " + middleware.CurrentUsername(ctx) + "!",
	})
}
