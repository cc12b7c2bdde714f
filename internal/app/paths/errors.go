package paths

import "errors"

var ErrRepoPathRequired = errors.New("repo path is required")
