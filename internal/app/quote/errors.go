package quote

import "errors"

var ErrQuoteRequired = errors.New("quote text is required")
var ErrAuthorRequired = errors.New("quote author is required")
var ErrQuoteNotFound = errors.New("quote not found")
var ErrNoQuotes = errors.New("no quotes stored")
