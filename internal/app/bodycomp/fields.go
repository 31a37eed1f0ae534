package bodycomp

import (
	"math"
	"strconv"
	"strings"

	"github.com/rafvai/DietShopper/internal/app/ds"
	"github.com/rafvai/DietShopper/internal/app/pkg/apperr"
)

// Field describes one tracked body metric. Fields is the single source of
// truth for form inputs, display order and comparison order.
type Field struct {
	Key      string
	Label    string
	Unit     string
	Integer  bool
	Required bool

	ptr func(m *ds.Measurement) interface{}
}

// maxDecimal bounds the decimal(5,2) columns.
const maxDecimal = 1000

var Fields = []Field{
	{Key: "height", Label: "Height", Unit: "cm", Required: true, ptr: func(m *ds.Measurement) interface{} { return &m.Height }},
	{Key: "weight", Label: "Weight", Unit: "kg", Required: true, ptr: func(m *ds.Measurement) interface{} { return &m.Weight }},
	{Key: "bmi", Label: "BMI", ptr: func(m *ds.Measurement) interface{} { return &m.BMI }},
	{Key: "body_fat", Label: "Body fat", Unit: "%", ptr: func(m *ds.Measurement) interface{} { return &m.BodyFat }},
	{Key: "fat_free_bw", Label: "Fat free body weight", Unit: "kg", ptr: func(m *ds.Measurement) interface{} { return &m.FatFreeBW }},
	{Key: "subcutaneous_fat", Label: "Subcutaneous fat", Unit: "%", ptr: func(m *ds.Measurement) interface{} { return &m.SubcutaneousFat }},
	{Key: "visceral_fat", Label: "Visceral fat", Integer: true, ptr: func(m *ds.Measurement) interface{} { return &m.VisceralFat }},
	{Key: "body_water", Label: "Body water", Unit: "%", ptr: func(m *ds.Measurement) interface{} { return &m.BodyWater }},
	{Key: "skeletal_muscle", Label: "Skeletal muscle", Unit: "%", ptr: func(m *ds.Measurement) interface{} { return &m.SkeletalMuscle }},
	{Key: "muscle_mass", Label: "Muscle mass", Unit: "kg", ptr: func(m *ds.Measurement) interface{} { return &m.MuscleMass }},
	{Key: "bone_mass", Label: "Bone mass", Unit: "kg", ptr: func(m *ds.Measurement) interface{} { return &m.BoneMass }},
	{Key: "protein", Label: "Protein", Unit: "%", ptr: func(m *ds.Measurement) interface{} { return &m.Protein }},
	{Key: "bmr", Label: "BMR", Unit: "kcal", Integer: true, ptr: func(m *ds.Measurement) interface{} { return &m.BMR }},
}

// FieldByKey looks up a descriptor by its key.
func FieldByKey(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Value reads the field from m as a float, nil when unset.
func (f Field) Value(m *ds.Measurement) *float64 {
	switch p := f.ptr(m).(type) {
	case **float64:
		if *p == nil {
			return nil
		}
		v := **p
		return &v
	case **int:
		if *p == nil {
			return nil
		}
		v := float64(**p)
		return &v
	}
	return nil
}

// Set parses raw into m. Blank input clears optional fields.
func (f Field) Set(m *ds.Measurement, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if f.Required {
			return apperr.Invalid("%s is required.", f.Label)
		}
		f.clear(m)
		return nil
	}

	switch p := f.ptr(m).(type) {
	case **int:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return apperr.Invalid("%s must be a non-negative whole number.", f.Label)
		}
		*p = &n
	case **float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return apperr.Invalid("%s must be a non-negative number.", f.Label)
		}
		if v >= maxDecimal {
			return apperr.Invalid("%s must be below %d.", f.Label, int(maxDecimal))
		}
		*p = &v
	}
	return nil
}

func (f Field) clear(m *ds.Measurement) {
	switch p := f.ptr(m).(type) {
	case **int:
		*p = nil
	case **float64:
		*p = nil
	}
}

// Values returns m's metrics in Fields order, the timestamp excluded.
func Values(m *ds.Measurement) []*float64 {
	out := make([]*float64, len(Fields))
	for i, f := range Fields {
		out[i] = f.Value(m)
	}
	return out
}

// Parse builds a measurement for userID from a key lookup such as a form.
func Parse(userID uint, get func(key string) string) (*ds.Measurement, error) {
	m := &ds.Measurement{UserID: userID}
	for _, f := range Fields {
		if err := f.Set(m, get(f.Key)); err != nil {
			return nil, err
		}
	}
	return m, nil
}
