package employee

import "time"

type Employee struct {
	ID           string
	EmployeeCode string
	Name         string
	Department   *string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DepartmentName returns the department name, or "" when unassigned.
func (e Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return *e.Department
}
