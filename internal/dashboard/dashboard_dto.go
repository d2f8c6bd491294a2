package dashboard

const (
	EmptyDepartment = "Sin Dept"
	EmptyRole       = "Sin Rol"
)

// Bar colors of the workload chart.
const (
	ColorRed    = "#ef4444"
	ColorOrange = "#f97316"
	ColorBlue   = "#3b82f6"
)

type StatsResponse struct {
	TotalEmployees  int     `json:"total_employees"`
	ActiveEmployees int     `json:"active_employees"`
	AverageWorkload float64 `json:"average_workload"`
}

type DepartmentWorkload struct {
	Name        string `json:"name"`
	AvgWorkload int    `json:"avg_workload"`
	Headcount   int    `json:"headcount"`
	Color       string `json:"color"`
}

type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ChartsResponse struct {
	WorkloadByDepartment []DepartmentWorkload `json:"workload_by_department"`
	DepartmentHeadcount  []Bucket             `json:"department_headcount"`
	RoleDistribution     []Bucket             `json:"role_distribution"`
}
