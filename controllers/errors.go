package controllers

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoPermission  = &CustomError{"You do not have permission"}
	ErrEmptyOrder    = &CustomError{"Order must contain at least one item"}
	ErrTableMismatch = &CustomError{"Table does not belong to this restaurant"}
	ErrSameStatus    = &CustomError{"Order is already in that status"}
)
