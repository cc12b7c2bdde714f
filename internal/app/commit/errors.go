package commit

import "errors"

var ErrNothingToCommit = errors.New("nothing to commit")
var ErrAuthorRequired = errors.New("author name and email are required")
