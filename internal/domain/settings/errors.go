package settings

import "errors"

var ErrSettingsNotFound = errors.New("attendance settings not found")
