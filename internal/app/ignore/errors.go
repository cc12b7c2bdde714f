package ignore

import "errors"

var ErrTemplatesRequired = errors.New("at least one ignore template is required")
var ErrUnknownTemplate = errors.New("unknown ignore template")
