package handler

import (
	"net/http"

	"github.com/rafvai/DietShopper/internal/app/bodycomp"
	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	msgNoRecords      = "You don't have any records. Please add one."
	msgSelectBoth     = "Both measurements must be selected for comparison."
	msgPairNotFound   = "One or both measurements not found."
	msgNoneSelected   = "No measurement selected."
	msgRecordNotFound = "Measurement not found."
	msgRecordAdded    = "Record added successfully!"
)

// fieldValue is one metric of a single measurement, ready for display.
type fieldValue struct {
	Key   string
	Label string
	Unit  string
	Value *float64
}

func fieldValues(m *ds.Measurement) []fieldValue {
	out := make([]fieldValue, len(bodycomp.Fields))
	for i, f := range bodycomp.Fields {
		out[i] = fieldValue{Key: f.Key, Label: f.Label, Unit: f.Unit, Value: f.Value(m)}
	}
	return out
}

func (h *Handler) MeasurementsPage(ctx *gin.Context) {
	ms, err := h.Repository.ListMeasurements(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}
	data := gin.H{"measurements": ms}
	if len(ms) == 0 {
		data["message"] = msgNoRecords
	}
	h.render(ctx, http.StatusOK, "measurements.html", data)
}

// Measurements shows one record, or compares two when the form carries the
// "compare" button.
func (h *Handler) Measurements(ctx *gin.Context) {
	c := ctx.Request.Context()
	userID := currentUserID(ctx)

	ms, err := h.Repository.ListMeasurements(c, userID)
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}

	if _, compare := ctx.GetPostForm("compare"); compare {
		idA, okA := parseID(ctx.PostForm("selected_measurement_1"))
		idB, okB := parseID(ctx.PostForm("selected_measurement_2"))
		if !okA || !okB {
			h.redirectWith(ctx, "/measurements", flashError, msgSelectBoth)
			return
		}
		a, errA := h.Repository.GetMeasurement(c, userID, idA)
		b, errB := h.Repository.GetMeasurement(c, userID, idB)
		if apperr.IsNotFound(errA) || apperr.IsNotFound(errB) {
			h.redirectWith(ctx, "/measurements", flashError, msgPairNotFound)
			return
		}
		if errA != nil || errB != nil {
			h.pageFailure(ctx, firstErr(errA, errB))
			return
		}

		h.render(ctx, http.StatusOK, "measurements.html", gin.H{
			"measurements": ms,
			"comparison":   bodycomp.Compare(*a, *b),
		})
		return
	}

	id, ok := parseID(ctx.PostForm("selected_measurement"))
	if !ok {
		h.redirectWith(ctx, "/measurements", flashError, msgNoneSelected)
		return
	}
	m, err := h.Repository.GetMeasurement(c, userID, id)
	if apperr.IsNotFound(err) {
		h.redirectWith(ctx, "/measurements", flashError, msgRecordNotFound)
		return
	}
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}

	h.render(ctx, http.StatusOK, "measurements.html", gin.H{
		"measurements": ms,
		"selected":     m,
		"values":       fieldValues(m),
	})
}

func (h *Handler) AddMeasurementPage(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "add_measurement.html", gin.H{"fields": bodycomp.Fields})
}

func (h *Handler) AddMeasurement(ctx *gin.Context) {
	m, err := bodycomp.Parse(currentUserID(ctx), ctx.PostForm)
	if err != nil {
		h.redirectWith(ctx, "/add_measurement", flashError, err.Error())
		return
	}
	if err := h.Repository.CreateMeasurement(ctx.Request.Context(), m); err != nil {
		logrus.WithError(err).Error("create measurement")
		h.redirectWith(ctx, "/add_measurement", flashError, "An error occurred while saving the record. Please try again.")
		return
	}
	h.redirectWith(ctx, "/add_measurement", flashSuccess, msgRecordAdded)
}

// Progress renders the series of one field, weight by default.
func (h *Handler) Progress(ctx *gin.Context) {
	key := ctx.DefaultQuery("field", "weight")
	field, ok := bodycomp.FieldByKey(key)
	if !ok {
		h.redirectWith(ctx, "/progress", flashError, "Unknown measurement field.")
		return
	}

	ms, err := h.Repository.ListMeasurements(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		h.pageFailure(ctx, err)
		return
	}
	h.render(ctx, http.StatusOK, "progress.html", gin.H{
		"fields": bodycomp.Fields,
		"field":  field,
		"series": bodycomp.Series(ms, field),
	})
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
