package employee

const (
	MinWorkload = 0
	MaxWorkload = 100

	// WarningThreshold is exclusive: 91 and above is overloaded.
	WarningThreshold = 90
)

// ClampWorkload bounds any input to [0,100].
func ClampWorkload(w int) int {
	if w < MinWorkload {
		return MinWorkload
	}
	if w > MaxWorkload {
		return MaxWorkload
	}
	return w
}

// ApplyDelta returns clamp(current+delta). The delta is bounded first so the
// sum cannot overflow for any input.
func ApplyDelta(current, delta int) int {
	delta = max(-MaxWorkload, min(delta, MaxWorkload))
	return ClampWorkload(ClampWorkload(current) + delta)
}

// DeriveStatus is the only place status is computed. An explicit disable or
// an empty workload means Inactive; above the threshold means Warning.
func DeriveStatus(workload int, disabled bool) Status {
	workload = ClampWorkload(workload)
	switch {
	case disabled || workload == 0:
		return StatusInactive
	case workload > WarningThreshold:
		return StatusWarning
	default:
		return StatusActive
	}
}

// SetWorkload clamps w, stores it and re-derives the status.
func (e *Employee) SetWorkload(w int) {
	e.Workload = ClampWorkload(w)
	e.Status = DeriveStatus(e.Workload, e.Disabled)
}

// AdjustWorkload applies a relative change, e.g. the +10/-10 table buttons.
func (e *Employee) AdjustWorkload(delta int) {
	e.SetWorkload(ApplyDelta(e.Workload, delta))
}

func (e *Employee) Disable() {
	e.Disabled = true
	e.Status = DeriveStatus(e.Workload, true)
}

// Enable lifts the manual override. A record with no workload stays
// Inactive until workload is assigned.
func (e *Employee) Enable() {
	e.Disabled = false
	e.Status = DeriveStatus(e.Workload, false)
}

// Catalog lists the choices offered by the employee form.
type Catalog struct {
	Roles       []string
	Departments []string
}

// Repair fills these when a record is missing them; they are always valid.
const (
	FallbackDepartment = "General"
	FallbackRole       = "Personal"
)

var DefaultCatalog = Catalog{
	Roles: []string{
		"Frontend Dev", "Backend Dev", "Fullstack Dev", "QA Tester", "Project Manager",
		"UI/UX Designer", "DevOps", "Data Analyst", "Product Owner",
	},
	Departments: []string{"Ingeniería", "Diseño", "Producto", "Marketing", "Ventas", "RRHH"},
}

func (c Catalog) HasRole(role string) bool {
	return role == FallbackRole || contains(c.Roles, role)
}

func (c Catalog) HasDepartment(dept string) bool {
	return dept == FallbackDepartment || contains(c.Departments, dept)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
