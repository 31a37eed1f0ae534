package handler

import (
	"html/template"
	"strconv"
	"time"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"num":    formatNum,
		"signed": formatSigned,
		"date": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
	}
}

// formatNum prints an optional metric, blank when it was not recorded.
func formatNum(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatSigned(v *float64) string {
	if v == nil {
		return ""
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	if *v > 0 {
		s = "+" + s
	}
	return s
}
