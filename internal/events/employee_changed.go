package events

import "time"

const EmployeeChangesTopic = "hr.employee.changes.v1"

// Change kinds follow the row-level change feed vocabulary.
const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
	ChangeDelete = "DELETE"
)

type EmployeeSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Workload   int    `json:"workload"`
	Status     string `json:"status"`
}

type EmployeeChangedEvent struct {
	EventType  string            `json:"event_type"`
	RequestID  string            `json:"request_id,omitempty"`
	EmployeeID string            `json:"employee_id"`
	Record     *EmployeeSnapshot `json:"record,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
