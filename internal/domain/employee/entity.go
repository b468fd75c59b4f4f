package employee

// Employee is the employee record as served by the HR API.
type Employee struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department"`
	Position   string `json:"position,omitempty"`
}

type SortField string

const (
	SortByFullName   SortField = "full_name"
	SortByEmployeeID SortField = "employee_id"
	SortByDepartment SortField = "department"
	SortByEmail      SortField = "email"
	SortByPosition   SortField = "position"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
