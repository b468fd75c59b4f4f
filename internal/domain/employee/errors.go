package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrRejected wraps validation failures reported by the HR API
	ErrRejected          = errors.New("employee rejected by HR API")
	ErrNoEmployeesChosen = errors.New("no employees selected")
)
