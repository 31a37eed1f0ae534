package handler

import (
	"net/http"
	"strconv"

	"github.com/rafvai/DietShopper/internal/app/middleware"
	"github.com/rafvai/DietShopper/internal/app/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Flash categories understood by the templates.
const (
	flashError   = "error"
	flashSuccess = "success"
	flashInfo    = "info"
)

const msgGenericFailure = "An error occurred while retrieving data. Please try again later."

// flash queues a message for the next rendered page. Anonymous visitors get
// a cookie session on first use.
func (h *Handler) flash(ctx *gin.Context, category, message string) {
	sessionID := middleware.SessionID(ctx)
	if sessionID == "" {
		sessionID = uuid.NewString()
		if err := h.Sessions.Create(ctx.Request.Context(), sessionID, auth.SessionData{}); err != nil {
			logrus.WithError(err).Warn("flash session")
			return
		}
		h.setSessionCookie(ctx, sessionID)
	}
	if err := h.Sessions.AddFlash(ctx.Request.Context(), sessionID, auth.Flash{Category: category, Message: message}); err != nil {
		logrus.WithError(err).Warn("flash")
	}
}

// render executes a template with the pending flashes and the caller
// identity merged into data.
func (h *Handler) render(ctx *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if sessionID := middleware.SessionID(ctx); sessionID != "" {
		flashes, err := h.Sessions.PopFlashes(ctx.Request.Context(), sessionID)
		if err != nil {
			logrus.WithError(err).Warn("pop flashes")
		}
		data["flashes"] = flashes
	}
	data["username"] = middleware.CurrentUsername(ctx)
	data["role"] = middleware.CurrentRole(ctx)
	ctx.HTML(status, name, data)
}

// startSession replaces whatever session the request carried with a fresh
// authenticated one, as login always starts from a cleared session.
func (h *Handler) startSession(ctx *gin.Context, data auth.SessionData) (string, error) {
	h.endSession(ctx)

	sessionID := uuid.NewString()
	if err := h.Sessions.Create(ctx.Request.Context(), sessionID, data); err != nil {
		return "", err
	}
	h.setSessionCookie(ctx, sessionID)
	return sessionID, nil
}

func (h *Handler) endSession(ctx *gin.Context) {
	if sessionID := middleware.SessionID(ctx); sessionID != "" {
		_ = h.Sessions.Delete(ctx.Request.Context(), sessionID)
	}
	ctx.Set(middleware.SessionIDKey, "")
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}

func (h *Handler) setSessionCookie(ctx *gin.Context, sessionID string) {
	maxAge := int(h.Config.SessionTTL.Seconds())
	ctx.Set(middleware.SessionIDKey, sessionID)
	ctx.SetCookie(middleware.SessionCookie, sessionID, maxAge, "/", "", false, true)
}

// redirectWith flashes message and sends the browser to location.
func (h *Handler) redirectWith(ctx *gin.Context, location, category, message string) {
	h.flash(ctx, category, message)
	ctx.Redirect(http.StatusFound, location)
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func currentUserID(ctx *gin.Context) uint {
	id, _ := middleware.GetCurrentUserID(ctx)
	return id
}

func currentSpecialistID(ctx *gin.Context) uint {
	id, _ := middleware.GetCurrentSpecialistID(ctx)
	return id
}
