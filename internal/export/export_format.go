package export

import (
	"regexp"
	"strconv"
	"time"

	"go-nexushr/internal/employee"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"

	missingValue = "N/A"
	dateLayout   = "02/01/2006"
)

// Document is a generated file ready to be sent as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

var whitespace = regexp.MustCompile(`\s+`)

// SafeFilename replaces every run of whitespace with "_".
func SafeFilename(name string) string {
	return whitespace.ReplaceAllString(name, "_")
}

func orMissing(v string) string {
	if v == "" {
		return missingValue
	}
	return v
}

// LocalizedStatus is the spreadsheet label; anything not Active or
// Inactive is shown as an alert.
func LocalizedStatus(s employee.Status) string {
	switch s {
	case employee.StatusActive:
		return "Activo"
	case employee.StatusInactive:
		return "Inactivo"
	default:
		return "Alerta"
	}
}

func percent(w int) string {
	return strconv.Itoa(w) + "%"
}

func reportDate(t time.Time) string {
	return t.Format(dateLayout)
}
