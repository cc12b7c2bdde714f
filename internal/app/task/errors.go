package task

import "errors"

var ErrInvalidName = errors.New("task name must be 3 to 80 characters")
var ErrInvalidDescription = errors.New("task description must be 3 to 80 characters")
var ErrInvalidRepeat = errors.New("repeat must be between 0 and 365 days")
var ErrInvalidDueDate = errors.New("due date must use the format YYYY-MM-DD HH:MM:SS")
var ErrParentNotFound = errors.New("parent task not found")
var ErrTaskNotFound = errors.New("task not found")
var ErrInvalidID = errors.New("task id must be an integer")
