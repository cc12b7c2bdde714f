package env

import "errors"

var ErrNoSettings = errors.New("no settings provided")
var ErrValueRequired = errors.New("setting value is required")
var ErrUnknownSetting = errors.New("unknown setting")
