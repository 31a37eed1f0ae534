package bodycomp

import (
	"math"
	"sort"
	"time"

	"github.com/rafvai/DietShopper/internal/app/ds"
)

// Diff subtracts earlier from later slot by slot. A slot missing on one side
// passes the other value through unchanged; missing on both sides stays nil.
// Shorter input is treated as nil-padded.
func Diff(later, earlier []*float64) []*float64 {
	n := len(later)
	if len(earlier) > n {
		n = len(earlier)
	}
	out := make([]*float64, n)
	for i := 0; i < n; i++ {
		a, b := at(later, i), at(earlier, i)
		switch {
		case a == nil && b == nil:
		case a == nil:
			v := *b
			out[i] = &v
		case b == nil:
			v := *a
			out[i] = &v
		default:
			v := round2(*a - *b)
			out[i] = &v
		}
	}
	return out
}

func at(s []*float64, i int) *float64 {
	if i < len(s) {
		return s[i]
	}
	return nil
}

// DayDifference is the unsigned count of whole days between a and b,
// taken as |floor((a-b) in days)|.
func DayDifference(a, b time.Time) int {
	days := math.Floor(a.Sub(b).Hours() / 24)
	return int(math.Abs(days))
}

// IsLater reports whether a is strictly after b.
func IsLater(a, b time.Time) bool {
	return a.After(b)
}

type Row struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Unit    string   `json:"unit,omitempty"`
	Earlier *float64 `json:"earlier"`
	Later   *float64 `json:"later"`
	Delta   *float64 `json:"delta"`
}

type Comparison struct {
	Earlier ds.Measurement `json:"earlier"`
	Later   ds.Measurement `json:"later"`
	Days    int            `json:"days"`
	Rows    []Row          `json:"rows"`
}

// Compare orders the two snapshots chronologically and reports the
// later-minus-earlier change of every field.
func Compare(a, b ds.Measurement) Comparison {
	later, earlier := a, b
	if IsLater(b.CreatedAt, a.CreatedAt) {
		later, earlier = b, a
	}

	lv, ev := Values(&later), Values(&earlier)
	delta := Diff(lv, ev)

	rows := make([]Row, len(Fields))
	for i, f := range Fields {
		rows[i] = Row{
			Key:     f.Key,
			Label:   f.Label,
			Unit:    f.Unit,
			Earlier: ev[i],
			Later:   lv[i],
			Delta:   delta[i],
		}
	}
	return Comparison{
		Earlier: earlier,
		Later:   later,
		Days:    DayDifference(later.CreatedAt, earlier.CreatedAt),
		Rows:    rows,
	}
}

type Point struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}

// Series returns the chronological progression of one field, skipping
// snapshots where it was not recorded.
func Series(ms []ds.Measurement, f Field) []Point {
	sorted := make([]ds.Measurement, len(ms))
	copy(sorted, ms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	points := make([]Point, 0, len(sorted))
	for i := range sorted {
		if v := f.Value(&sorted[i]); v != nil {
			points = append(points, Point{At: sorted[i].CreatedAt, Value: *v})
		}
	}
	return points
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
