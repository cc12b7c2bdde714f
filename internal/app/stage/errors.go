package stage

import "errors"

var ErrInvalidMode = errors.New("invalid staging mode")
