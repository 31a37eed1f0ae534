package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rafvai/DietShopper/internal/app/bodycomp"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// GET /api/measurements
func (h *Handler) ApiListMeasurements(ctx *gin.Context) {
	ms, err := h.Repository.ListMeasurements(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, ms, int64(len(ms)), gin.H{})
}

// POST /api/measurements accepts a flat JSON object keyed by field key.
// Values may be numbers or numeric strings.
func (h *Handler) ApiCreateMeasurement(ctx *gin.Context) {
	var body map[string]interface{}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	m, err := bodycomp.Parse(currentUserID(ctx), func(key string) string {
		return jsonScalar(body[key])
	})
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	if err := h.Repository.CreateMeasurement(ctx.Request.Context(), m); err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonStatus(ctx, http.StatusCreated, m, 1, gin.H{"message": msgRecordAdded})
}

// GET /api/measurements/:id
func (h *Handler) ApiGetMeasurement(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		h.apiError(ctx, apperr.Invalid("invalid measurement id"))
		return
	}
	m, err := h.Repository.GetMeasurement(ctx.Request.Context(), currentUserID(ctx), id)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	jsonResponse(ctx, m, 1, gin.H{"id": id})
}

// GET /api/measurements/compare?a=&b=
func (h *Handler) ApiCompareMeasurements(ctx *gin.Context) {
	idA, okA := parseID(ctx.Query("a"))
	idB, okB := parseID(ctx.Query("b"))
	if !okA || !okB {
		h.apiError(ctx, apperr.Invalid(msgSelectBoth))
		return
	}

	userID := currentUserID(ctx)
	a, err := h.Repository.GetMeasurement(ctx.Request.Context(), userID, idA)
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	b, err := h.Repository.GetMeasurement(ctx.Request.Context(), userID, idB)
	if err != nil {
		h.apiError(ctx, err)
		return
	}

	cmp := bodycomp.Compare(*a, *b)
	jsonResponse(ctx, cmp, int64(len(cmp.Rows)), gin.H{"convention": "later minus earlier"})
}

// GET /api/measurements/progress?field=weight
func (h *Handler) ApiProgress(ctx *gin.Context) {
	key := ctx.DefaultQuery("field", "weight")
	field, ok := bodycomp.FieldByKey(key)
	if !ok {
		h.apiError(ctx, apperr.Invalid("unknown field %q", key))
		return
	}
	ms, err := h.Repository.ListMeasurements(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		h.apiError(ctx, err)
		return
	}
	series := bodycomp.Series(ms, field)
	jsonResponse(ctx, series, int64(len(series)), gin.H{"field": field.Key, "label": field.Label, "unit": field.Unit})
}

// jsonScalar renders a decoded JSON value the way a form would submit it.
func jsonScalar(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
