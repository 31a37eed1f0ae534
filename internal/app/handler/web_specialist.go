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

const (
	msgPatientInfo    = "Error, please check patient's info"
	msgPatientAdded   = "Patient added successfully!"
	msgNotYourPatient = "This user is not one of your patients."
)

func (h *Handler) SpecialistLoginPage(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "specialist_login.html", nil)
}

func (h *Handler) SpecialistLogin(ctx *gin.Context) {
	s, err := h.authenticateSpecialist(ctx.Request.Context(), ctx.PostForm("username"), ctx.PostForm("password"))
	if err != nil {
		h.formError(ctx, "specialist_login.html", err)
		return
	}

	data := auth.SessionData{SubjectID: s.ID, Username: s.Username, Role: auth.RoleSpecialist}
	if _, err := h.startSession(ctx, data); err != nil {
		h.formError(ctx, "specialist_login.html", err)
		return
	}
	ctx.Redirect(http.StatusFound, "/specialist/index")
}

func (h *Handler) SpecialistRegisterPage(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "specialist_register.html", nil)
}

func (h *Handler) SpecialistRegister(ctx *gin.Context) {
	var in registration
	_ = ctx.ShouldBind(&in)

	s, err := h.registerSpecialist(ctx.Request.Context(), in)
	if err != nil {
		h.formError(ctx, "specialist_register.html", err)
		return
	}

	data := auth.SessionData{SubjectID: s.ID, Username: s.Username, Role: auth.RoleSpecialist}
	if _, err := h.startSession(ctx, data); err != nil {
		h.formError(ctx, "specialist_register.html", err)
		return
	}
	ctx.Redirect(http.StatusFound, "/specialist/index")
}

func (h *Handler) SpecialistIndex(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "specialist_index.html", gin.H{
		"welcome": "Welcome back, " + middleware.CurrentUsername(ctx) + "!",
	})
}

func (h *Handler) AddPatientPage(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "specialist_add_patient.html", nil)
}

func (h *Handler) AddPatient(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	email := strings.TrimSpace(ctx.PostForm("email"))
	if username == "" || email == "" {
		h.redirectWith(ctx, "/specialist/add-patient", flashError, "You must fill all the fields")
		return
	}

	err := h.linkPatient(ctx, username, email)
	switch {
	case apperr.IsNotFound(err):
		h.redirectWith(ctx, "/specialist/add-patient", flashError, msgPatientInfo)
	case apperr.IsValidation(err):
		h.redirectWith(ctx, "/specialist/add-patient", flashError, err.Error())
	case err != nil:
		logrus.WithError(err).Error("add patient")
		h.redirectWith(ctx, "/specialist/add-patient", flashError, msgGenericFailure)
	default:
		h.redirectWith(ctx, "/specialist/add-patient", flashSuccess, msgPatientAdded)
	}
}

// linkPatient finds the user by username and email and links it to the
// current specialist.
func (h *Handler) linkPatient(ctx *gin.Context, username, email string) error {
	u, err := h.Repository.FindUser(ctx.Request.Context(), username, email)
	if err != nil {
		return err
	}
	_, err = h.Repository.AddPatient(ctx.Request.Context(), currentSpecialistID(ctx), u.ID)
	return err
}

func (h *Handler) DisplayPatients(ctx *gin.Context) {
	patients, err := h.Repository.ListPatients(ctx.Request.Context(), currentSpecialistID(ctx))
	if err != nil {
		h.specialistFailure(ctx, err)
		return
	}
	data := gin.H{"patients": patients}
	if len(patients) == 0 {
		data["message"] = "There aren't any patients associated with the " + middleware.CurrentUsername(ctx) + " username"
	}
	h.render(ctx, http.StatusOK, "specialist_patients.html", data)
}

// ownPatient resolves :patient_id and checks it belongs to the specialist.
// It answers the request itself and returns false otherwise.
func (h *Handler) ownPatient(ctx *gin.Context) (uint, bool) {
	userID, ok := parseID(ctx.Param("patient_id"))
	if !ok {
		h.redirectWith(ctx, "/specialist/display-patients", flashInfo, msgNotYourPatient)
		return 0, false
	}
	linked, err := h.Repository.IsPatient(ctx.Request.Context(), currentSpecialistID(ctx), userID)
	if err != nil {
		h.specialistFailure(ctx, err)
		return 0, false
	}
	if !linked {
		h.redirectWith(ctx, "/specialist/display-patients", flashInfo, msgNotYourPatient)
		return 0, false
	}
	return userID, true
}

func (h *Handler) PatientPlans(ctx *gin.Context) {
	userID, ok := h.ownPatient(ctx)
	if !ok {
		return
	}
	plans, err := h.Repository.ListDietPlans(ctx.Request.Context(), userID)
	if err != nil {
		h.specialistFailure(ctx, err)
		return
	}
	h.render(ctx, http.StatusOK, "specialist_patient_plans.html", gin.H{
		"patientID": userID,
		"plans":     plans,
	})
}

func (h *Handler) PatientPlan(ctx *gin.Context) {
	userID, ok := h.ownPatient(ctx)
	if !ok {
		return
	}
	planID, ok := parseID(ctx.PostForm("diet_plan_id"))
	if !ok {
		h.redirectWith(ctx, "/specialist/display-patients", flashError, "Error retrieving the diet plan")
		return
	}

	view, err := h.loadPlanView(ctx.Request.Context(), userID, planID)
	if apperr.IsNotFound(err) {
		h.redirectWith(ctx, "/specialist/display-patients", flashError, "Error retrieving the diet plan")
		return
	}
	if err != nil {
		h.specialistFailure(ctx, err)
		return
	}
	plans, err := h.Repository.ListDietPlans(ctx.Request.Context(), userID)
	if err != nil {
		h.specialistFailure(ctx, err)
		return
	}
	h.render(ctx, http.StatusOK, "specialist_patient_plans.html", gin.H{
		"patientID": userID,
		"plans":     plans,
		"plan":      view.Plan,
		"days":      view.Days,
	})
}

func (h *Handler) SpecialistAddDietPage(ctx *gin.Context) {
	patients, err := h.Repository.ListPatients(ctx.Request.Context(), currentSpecialistID(ctx))
	if err != nil {
		h.specialistFailure(ctx, err)
		return
	}
	if len(patients) == 0 {
		h.redirectWith(ctx, "/specialist/index", flashError, "An error occurred while retrieving patients associated with "+middleware.CurrentUsername(ctx))
		return
	}

	data, err := h.dietFormData(ctx)
	if err != nil {
		h.specialistFailure(ctx, err)
		return
	}
	data["patients"] = patients
	h.render(ctx, http.StatusOK, "specialist_add_diet.html", data)
}

func (h *Handler) SpecialistAddDiet(ctx *gin.Context) {
	userID, ok := parseID(ctx.PostForm("patient_id"))
	if !ok {
		h.redirectWith(ctx, "/specialist/add-diet", flashError, "All headers fields are required.")
		return
	}
	linked, err := h.Repository.IsPatient(ctx.Request.Context(), currentSpecialistID(ctx), userID)
	if err != nil {
		h.specialistFailure(ctx, err)
		return
	}
	if !linked {
		h.redirectWith(ctx, "/specialist/add-diet", flashError, msgNotYourPatient)
		return
	}

	if h.submitDiet(ctx, userID, "/specialist/add-diet") {
		h.redirectWith(ctx, "/specialist/add-diet", flashSuccess, msgPlanAdded)
	}
}

func (h *Handler) specialistFailure(ctx *gin.Context, err error) {
	logrus.WithError(err).Error(ctx.Request.URL.Path)
	h.render(ctx, http.StatusInternalServerError, "specialist_index.html", gin.H{"error": msgGenericFailure})
}
