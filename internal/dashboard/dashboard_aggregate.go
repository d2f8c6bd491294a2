package dashboard

import (
	"cmp"
	"math"
	"slices"

	"go-nexushr/internal/employee"
)

// Active returns records not marked Inactive; Warning counts as active.
func Active(records []employee.EmployeeResponse) []employee.EmployeeResponse {
	out := make([]employee.EmployeeResponse, 0, len(records))
	for _, r := range records {
		if r.Status != employee.StatusInactive {
			out = append(out, r)
		}
	}
	return out
}

// Stats averages workload over active records only, to one decimal.
func Stats(records []employee.EmployeeResponse) StatsResponse {
	active := Active(records)

	avg := 0.0
	if len(active) > 0 {
		sum := 0
		for _, r := range active {
			sum += r.Workload
		}
		avg = math.Round(float64(sum)/float64(len(active))*10) / 10
	}

	return StatsResponse{
		TotalEmployees:  len(records),
		ActiveEmployees: len(active),
		AverageWorkload: avg,
	}
}

func WorkloadColor(avg int) string {
	switch {
	case avg > 85:
		return ColorRed
	case avg > 65:
		return ColorOrange
	default:
		return ColorBlue
	}
}

func WorkloadByDepartment(records []employee.EmployeeResponse) []DepartmentWorkload {
	type acc struct{ sum, count int }
	totals := map[string]*acc{}
	order := []string{}

	for _, r := range Active(records) {
		name := bucketName(r.Department, EmptyDepartment)
		a, ok := totals[name]
		if !ok {
			a = &acc{}
			totals[name] = a
			order = append(order, name)
		}
		a.sum += r.Workload
		a.count++
	}

	out := make([]DepartmentWorkload, 0, len(order))
	for _, name := range order {
		a := totals[name]
		avg := int(math.Round(float64(a.sum) / float64(a.count)))
		out = append(out, DepartmentWorkload{
			Name:        name,
			AvgWorkload: avg,
			Headcount:   a.count,
			Color:       WorkloadColor(avg),
		})
	}

	slices.SortStableFunc(out, func(a, b DepartmentWorkload) int {
		return cmp.Compare(b.AvgWorkload, a.AvgWorkload)
	})
	return out
}

func DepartmentHeadcount(records []employee.EmployeeResponse) []Bucket {
	return countBy(Active(records), func(r employee.EmployeeResponse) string {
		return bucketName(r.Department, EmptyDepartment)
	})
}

func RoleDistribution(records []employee.EmployeeResponse) []Bucket {
	return countBy(Active(records), func(r employee.EmployeeResponse) string {
		return bucketName(r.Role, EmptyRole)
	})
}

// countBy keeps first-seen order among equal counts.
func countBy(records []employee.EmployeeResponse, key func(employee.EmployeeResponse) string) []Bucket {
	idx := map[string]int{}
	out := []Bucket{}
	for _, r := range records {
		k := key(r)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Bucket{Name: k})
		}
		out[i].Value++
	}

	slices.SortStableFunc(out, func(a, b Bucket) int {
		return cmp.Compare(b.Value, a.Value)
	})
	return out
}

func bucketName(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
