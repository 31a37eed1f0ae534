package bodycomp

import (
	"testing"
	"time"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
)

func f(v float64) *float64 { return &v }

func equal(a, b []*float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if (a[i] == nil) != (b[i] == nil) {
			return false
		}
		if a[i] != nil && *a[i] != *b[i] {
			return false
		}
	}
	return true
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name           string
		later, earlier []*float64
		want           []*float64
	}{
		{"both nil", []*float64{nil, nil}, []*float64{nil, nil}, []*float64{nil, nil}},
		{"pass through", []*float64{f(5), nil}, []*float64{f(3), f(7)}, []*float64{f(2), f(7)}},
		{"rounding", []*float64{f(70.3)}, []*float64{f(69.1)}, []*float64{f(1.2)}},
		{"negative", []*float64{f(60)}, []*float64{f(62.25)}, []*float64{f(-2.25)}},
		{"padded", []*float64{f(1)}, []*float64{f(1), f(4)}, []*float64{f(0), f(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Diff(tt.later, tt.earlier); !equal(got, tt.want) {
				t.Fatalf("Diff = %v, want %v", deref(got), deref(tt.want))
			}
		})
	}
}

func TestDiffSwap(t *testing.T) {
	a := []*float64{f(80), nil, f(12.5), nil}
	b := []*float64{f(78.5), f(20), f(13), nil}
	ab, ba := Diff(a, b), Diff(b, a)
	for i := range ab {
		switch {
		case a[i] != nil && b[i] != nil:
			if *ab[i] != -*ba[i] {
				t.Fatalf("slot %d not antisymmetric: %v vs %v", i, *ab[i], *ba[i])
			}
		case a[i] == nil && b[i] == nil:
			if ab[i] != nil || ba[i] != nil {
				t.Fatalf("slot %d should stay nil", i)
			}
		default:
			if *ab[i] != *ba[i] {
				t.Fatalf("slot %d pass-through changed under swap: %v vs %v", i, *ab[i], *ba[i])
			}
		}
	}
}

func TestDayDifference(t *testing.T) {
	d1 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := DayDifference(d1, d2); got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
	if got := DayDifference(d1, d1); got != 0 {
		t.Fatalf("equal timestamps gave %d", got)
	}
	later := d2.Add(36 * time.Hour)
	if got := DayDifference(later, d2); got != 1 {
		t.Fatalf("sub-day part not discarded: %d", got)
	}
}

func TestIsLater(t *testing.T) {
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !IsLater(feb, jan) {
		t.Fatal("february should be later than january")
	}
	if IsLater(jan, feb) || IsLater(jan, jan) {
		t.Fatal("IsLater must be strict")
	}
}

func TestCompareOrdersChronologically(t *testing.T) {
	jan := ds.Measurement{ID: 1, Height: f(180), Weight: f(82), CreatedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	mar := ds.Measurement{ID: 2, Height: f(180), Weight: f(79.5), BodyFat: f(18), CreatedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}

	for _, c := range []Comparison{Compare(jan, mar), Compare(mar, jan)} {
		if c.Later.ID != 2 || c.Earlier.ID != 1 {
			t.Fatalf("wrong order: later=%d earlier=%d", c.Later.ID, c.Earlier.ID)
		}
		if c.Days != 60 {
			t.Fatalf("days = %d, want 60", c.Days)
		}
		if len(c.Rows) != len(Fields) {
			t.Fatalf("rows = %d", len(c.Rows))
		}
		if w := c.Rows[1]; w.Key != "weight" || *w.Delta != -2.5 {
			t.Fatalf("weight row = %+v", w)
		}
		if bf := c.Rows[3]; bf.Key != "body_fat" || *bf.Delta != 18 {
			t.Fatalf("body fat should pass through: %+v", bf)
		}
		if c.Rows[2].Delta != nil {
			t.Fatal("bmi missing on both sides should be nil")
		}
	}
}

func TestParse(t *testing.T) {
	form := map[string]string{"height": "180", "weight": "81.4", "visceral_fat": "7", "bmr": " 1820 "}
	m, err := Parse(3, func(k string) string { return form[k] })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.UserID != 3 || *m.Weight != 81.4 || *m.VisceralFat != 7 || *m.BMR != 1820 || m.BodyFat != nil {
		t.Fatalf("bad measurement: %+v", m)
	}

	edge := map[string]string{"height": "999.99", "weight": "80"}
	if _, err := Parse(3, func(k string) string { return edge[k] }); err != nil {
		t.Fatalf("999.99 rejected: %v", err)
	}

	bad := []map[string]string{
		{"weight": "80"},
		{"height": "180", "weight": "heavy"},
		{"height": "180", "weight": "80", "visceral_fat": "7.5"},
		{"height": "-1", "weight": "80"},
		{"height": "180", "weight": "1000"},
		{"height": "180", "weight": "80", "body_water": "1200.5"},
	}
	for _, in := range bad {
		if _, err := Parse(3, func(k string) string { return in[k] }); !apperr.IsValidation(err) {
			t.Fatalf("input %v: expected validation error, got %v", in, err)
		}
	}
}

func TestSeries(t *testing.T) {
	weight, _ := FieldByKey("weight")
	bmi, _ := FieldByKey("bmi")
	ms := []ds.Measurement{
		{Weight: f(79), BMI: f(24.4), CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Weight: f(82), CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	pts := Series(ms, weight)
	if len(pts) != 2 || pts[0].Value != 82 || pts[1].Value != 79 {
		t.Fatalf("weight series = %+v", pts)
	}
	if pts := Series(ms, bmi); len(pts) != 1 {
		t.Fatalf("bmi series should skip missing values: %+v", pts)
	}
	if _, ok := FieldByKey("shoe_size"); ok {
		t.Fatal("unknown key found")
	}
}

func deref(s []*float64) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}
