package employee

import (
	"cmp"
	"slices"
	"strings"
)

const (
	FilterAll      = "All"
	FilterActive   = "Active"
	FilterInactive = "Inactive"
)

// ListQuery is bound from the list and export query strings.
type ListQuery struct {
	Status   string `form:"status"`
	Q        string `form:"q"`
	SortBy   string `form:"sort_by"`
	SortDir  string `form:"sort_dir"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// Filter keeps records matching the status tab and the search term. The
// Active tab includes overloaded (Warning) records.
func Filter(list []EmployeeResponse, status, q string) []EmployeeResponse {
	term := strings.ToLower(strings.TrimSpace(q))

	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		switch status {
		case FilterActive:
			if e.Status == StatusInactive {
				continue
			}
		case FilterInactive:
			if e.Status != StatusInactive {
				continue
			}
		}

		if term != "" &&
			!strings.Contains(strings.ToLower(e.Name), term) &&
			!strings.Contains(strings.ToLower(e.Role), term) &&
			!strings.Contains(strings.ToLower(e.Department), term) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Sort orders list in place. Unknown fields keep the store order.
func Sort(list []EmployeeResponse, sortBy, sortDir string) {
	var less func(a, b EmployeeResponse) int
	switch sortBy {
	case "name":
		less = func(a, b EmployeeResponse) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case "role":
		less = func(a, b EmployeeResponse) int { return cmp.Compare(strings.ToLower(a.Role), strings.ToLower(b.Role)) }
	case "department":
		less = func(a, b EmployeeResponse) int {
			return cmp.Compare(strings.ToLower(a.Department), strings.ToLower(b.Department))
		}
	case "workload":
		less = func(a, b EmployeeResponse) int { return cmp.Compare(a.Workload, b.Workload) }
	case "status":
		less = func(a, b EmployeeResponse) int { return cmp.Compare(a.Status, b.Status) }
	case "created_at":
		less = func(a, b EmployeeResponse) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }
	default:
		return
	}

	if strings.EqualFold(sortDir, "desc") {
		slices.SortStableFunc(list, func(a, b EmployeeResponse) int { return less(b, a) })
		return
	}
	slices.SortStableFunc(list, less)
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Paginate returns the requested window. Page defaults to 1; page size
// defaults to 10 and is capped at 100. A page past the end is empty.
func Paginate(list []EmployeeResponse, page, pageSize int) ([]EmployeeResponse, int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)

	if page-1 > len(list)/pageSize {
		return list[len(list):], page, pageSize
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(list))
	start = min(start, len(list))
	return list[start:end], page, pageSize
}
