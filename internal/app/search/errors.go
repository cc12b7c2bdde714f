package search

import "errors"

var ErrQueryRequired = errors.New("search query is required")
var ErrInvalidDate = errors.New("dates must use YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
var ErrInvalidRange = errors.New("from must not be after to")
var ErrResultsUnavailable = errors.New("google search api key and engine id are not configured")
