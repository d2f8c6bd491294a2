package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"go-nexushr/internal/employee"
)

var csvHeader = []string{"ID", "Nombre", "Rol", "Departamento", "Carga (%)", "Estado", "Fecha Reporte"}

// WriteCSV renders one row per record with the report date on each row.
func WriteCSV(records []employee.EmployeeResponse, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	date := reportDate(now)
	for _, r := range records {
		row := []string{
			r.ID,
			r.Name,
			r.Role,
			r.Department,
			strconv.Itoa(r.Workload),
			string(r.Status),
			date,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
