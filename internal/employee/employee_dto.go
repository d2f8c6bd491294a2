package employee

type CreateEmployeeRequest struct {
	Name       string `json:"name" binding:"required,notblank,max=255"`
	Role       string `json:"role" binding:"max=120"`
	Department string `json:"department" binding:"max=120"`
	Workload   int    `json:"workload"`
}

type UpdateEmployeeRequest struct {
	Name       string `json:"name" binding:"required,notblank,max=255"`
	Role       string `json:"role" binding:"max=120"`
	Department string `json:"department" binding:"max=120"`
	Workload   int    `json:"workload"`
}

// WorkloadRequest carries either a relative delta or an absolute value.
type WorkloadRequest struct {
	Delta    *int `json:"delta"`
	Workload *int `json:"workload"`
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Workload   int    `json:"workload"`
	Status     Status `json:"status"`
	Disabled   bool   `json:"disabled"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type RepairResponse struct {
	Fixed int `json:"fixed"`
}
