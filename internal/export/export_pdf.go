package export

import (
	"bytes"
	"fmt"
	"time"

	"go-nexushr/internal/employee"

	"github.com/go-pdf/fpdf"
)

type rgb struct{ r, g, b int }

var (
	brandBlue   = rgb{41, 128, 185}
	rowTint     = rgb{240, 248, 255}
	barTrack    = rgb{240, 240, 240}
	barGreen    = rgb{46, 204, 113}
	barOrange   = rgb{243, 156, 18}
	barRed      = rgb{231, 76, 60}
	tableWidths = []float64{50, 40, 42, 20, 30}
)

// WorkloadBarColor colors the employee sheet bar: green, orange above 70,
// red above 90.
func WorkloadBarColor(workload int) (int, int, int) {
	c := barGreen
	if workload > 70 {
		c = barOrange
	}
	if workload > 90 {
		c = barRed
	}
	return c.r, c.g, c.b
}

func newDocument() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetCreator("NexusHR", true)
	// Core fonts are cp1252; accented labels go through the translator.
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

// WriteTeamPDF renders the team report: heading, grid table and a
// "Página i de n" footer on every page.
func WriteTeamPDF(records []employee.EmployeeResponse, title string, now time.Time) ([]byte, error) {
	pdf, tr := newDocument()
	pdf.SetTitle(title, true)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pageW, pageH := pdf.GetPageSize()
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.Text(14, pageH-10, "Generado por NexusHR System")
		pdf.Text(pageW-30, pageH-10, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())))
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 20)
	pdf.SetTextColor(brandBlue.r, brandBlue.g, brandBlue.b)
	pdf.Text(14, 22, tr("NexusHR - Reporte de Gestión"))

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(14, 32, tr("Reporte: "+title))
	pdf.Text(14, 38, "Fecha: "+reportDate(now))

	pdf.SetXY(14, 45)
	writeTableHeader(pdf, tr)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, r := range records {
		if pdf.GetY()+8 > 277 {
			pdf.AddPage()
			pdf.SetXY(14, 20)
			writeTableHeader(pdf, tr)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0, 0, 0)
		}

		fill := i%2 == 1
		pdf.SetFillColor(rowTint.r, rowTint.g, rowTint.b)
		cells := []string{r.Name, orMissing(r.Role), orMissing(r.Department), percent(r.Workload), string(r.Status)}
		pdf.SetX(14)
		for j, v := range cells {
			pdf.CellFormat(tableWidths[j], 8, tr(v), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

func writeTableHeader(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(brandBlue.r, brandBlue.g, brandBlue.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 200)
	for i, h := range []string{"Empleado", "Rol", "Departamento", "Carga", "Estado"} {
		pdf.CellFormat(tableWidths[i], 8, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

// WriteEmployeePDF renders the single-employee sheet with a workload bar.
func WriteEmployeePDF(r employee.EmployeeResponse, now time.Time) ([]byte, error) {
	pdf, tr := newDocument()
	pdf.SetTitle("Ficha de Empleado", true)
	pdf.AddPage()

	pdf.SetFillColor(brandBlue.r, brandBlue.g, brandBlue.b)
	pdf.Rect(0, 0, 210, 40, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(0, 12)
	pdf.CellFormat(210, 10, "Ficha de Empleado", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetX(0)
	pdf.CellFormat(210, 8, "NexusHR Confidential", "", 1, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	y := 60.0
	detail := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Text(20, y, tr(label+":"))
		pdf.SetFont("Helvetica", "", 14)
		pdf.Text(80, y, tr(value))
		y += 12
	}

	unassigned := func(v string) string {
		if v == "" {
			return "No Asignado"
		}
		return v
	}

	detail("Nombre Completo", r.Name)
	detail("ID de Empleado", r.ID)
	detail("Departamento", unassigned(r.Department))
	detail("Rol / Cargo", unassigned(r.Role))
	detail("Estado Actual", string(r.Status))
	detail("Carga de Trabajo", percent(r.Workload))
	detail("Fecha de Reporte", reportDate(now))

	y += 10
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(barTrack.r, barTrack.g, barTrack.b)
	pdf.RoundedRect(20, y, 170, 10, 3, "1234", "FD")

	if width := float64(employee.ClampWorkload(r.Workload)) / 100 * 170; width > 0 {
		pdf.SetFillColor(WorkloadBarColor(r.Workload))
		pdf.RoundedRect(20, y, width, 10, 3, "1234", "F")
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(20, y+16, tr("Visualización de Carga Operativa"))

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.SetXY(0, 277)
	pdf.CellFormat(210, 6, "Este documento es confidencial y para uso interno exclusivo.", "", 0, "C", false, 0, "")

	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
