package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func (a *testApp) signUp(username string) string {
	a.t.Helper()
	w := a.form("/register", url.Values{
		"username":     {username},
		"email":        {username + "@example.com"},
		"password":     {"secret123"},
		"confirmation": {"secret123"},
	}, "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		a.t.Fatalf("register %s: %d %s", username, w.Code, w.Body.String())
	}
	cookie := sessionCookie(w)
	if cookie == "" {
		a.t.Fatalf("register %s: no session cookie", username)
	}
	return cookie
}

func TestLoginRequired(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/", "/shopping-list", "/add-diet", "/measurements"} {
		w := app.get(path, "")
		if w.Code != http.StatusFound || !strings.HasPrefix(w.Header().Get("Location"), "/login") {
			t.Fatalf("%s: %d -> %q", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)
	app.signUp("anna")

	w := app.form("/login", url.Values{"username": {"anna"}, "password": {"nope"}}, "")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), msgBadCredentials) {
		t.Fatalf("bad login: %d %s", w.Code, w.Body.String())
	}

	w = app.form("/login", url.Values{"username": {"anna"}, "password": {"secret123"}}, "")
	if w.Code != http.StatusFound {
		t.Fatalf("login: %d", w.Code)
	}
	cookie := sessionCookie(w)

	w = app.get("/", cookie)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Welcome back, anna!") {
		t.Fatalf("index: %d %s", w.Code, w.Body.String())
	}

	w = app.get("/logout", cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("logout: %d", w.Code)
	}
	if w := app.get("/", cookie); w.Code != http.StatusFound {
		t.Fatalf("index after logout: %d", w.Code)
	}
}

func TestAddDietForm(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signUp("anna")
	oats, chicken := app.foodID("Oats"), app.foodID("Chicken breast")

	w := app.form("/add-diet", url.Values{
		"dietName":        {"Cut"},
		"dietDescription": {"Four weeks"},
		"food-1-1[]":      {fmt.Sprint(oats), ""},
		"quantity-1-1[]":  {"50", ""},
		"food-1-2[]":      {fmt.Sprint(chicken)},
		"quantity-1-2[]":  {"150"},
		"food-2-1[]":      {fmt.Sprint(oats)},
		"quantity-2-1[]":  {"70"},
	}, cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/diet-plan" {
		t.Fatalf("add diet: %d -> %q", w.Code, w.Header().Get("Location"))
	}
	if body := app.get("/diet-plan", cookie).Body.String(); !strings.Contains(body, msgPlanAdded) {
		t.Fatalf("missing success flash: %s", body)
	}

	plans, err := app.h.Repository.ListDietPlans(context.Background(), 1)
	if err != nil || len(plans) != 1 {
		t.Fatalf("plans = %v, %v", plans, err)
	}

	w = app.form("/shopping-list", url.Values{"dietPlan": {fmt.Sprint(plans[0].ID)}}, cookie)
	body := w.Body.String()
	if w.Code != http.StatusOK || !strings.Contains(body, "Oats") || !strings.Contains(body, "120") {
		t.Fatalf("shopping list: %d %s", w.Code, body)
	}
}

func TestAddDietFormRejectsMismatch(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signUp("anna")
	oats := app.foodID("Oats")

	w := app.form("/add-diet", url.Values{
		"dietName":        {"Cut"},
		"dietDescription": {"Four weeks"},
		"food-1-1[]":      {fmt.Sprint(oats), fmt.Sprint(oats)},
		"quantity-1-1[]":  {"50"},
	}, cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/add-diet" {
		t.Fatalf("mismatch: %d -> %q", w.Code, w.Header().Get("Location"))
	}
	body := app.get("/add-diet", cookie).Body.String()
	if !strings.Contains(body, "Invalid input: Mismatch between number of foods and quantities.") {
		t.Fatalf("missing error flash: %s", body)
	}

	plans, _ := app.h.Repository.ListDietPlans(context.Background(), 1)
	if len(plans) != 0 {
		t.Fatalf("rejected form stored %d plans", len(plans))
	}
}

func TestSpecialistPagesRequireSpecialist(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signUp("anna")

	w := app.get("/specialist/index", cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/specialist/login" {
		t.Fatalf("user on specialist page: %d -> %q", w.Code, w.Header().Get("Location"))
	}
}

func TestAddDietFormUnknownFood(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signUp("anna")

	w := app.form("/add-diet", url.Values{
		"dietName":        {"Cut"},
		"dietDescription": {"Four weeks"},
		"food-1-1[]":      {"9999"},
		"quantity-1-1[]":  {"50"},
	}, cookie)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/add-diet" {
		t.Fatalf("unknown food: %d -> %q", w.Code, w.Header().Get("Location"))
	}
	body := app.get("/add-diet", cookie).Body.String()
	if !strings.Contains(body, `flash-info">`+msgFoodNotFound) {
		t.Fatalf("missing info flash: %s", body)
	}
	plans, _ := app.h.Repository.ListDietPlans(context.Background(), 1)
	if len(plans) != 0 {
		t.Fatalf("unknown food stored %d plans", len(plans))
	}
}

func TestAddMeasurementFormSteps(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signUp("anna")

	body := app.get("/add_measurement", cookie).Body.String()
	for _, want := range []string{
		`name="visceral_fat" min="0" step="1"`,
		`name="weight" min="0" step="0.01" max="999.99" required`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in %s", want, body)
		}
	}
}
