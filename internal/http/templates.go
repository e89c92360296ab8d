package http

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"

	"venuspay-go/internal/upi"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() (*template.Template, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"money":    formatMoney,
		"datetime": formatTimestamp,
		"ago": func(ts int64) string {
			return humanize.Time(time.Unix(ts, 0))
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

func formatMoney(v float64) string {
	return upi.FormatAmount(v)
}

func formatTimestamp(ts int64) string {
	if ts <= 0 {
		return "-"
	}
	return time.Unix(ts, 0).Format(time.DateTime)
}
