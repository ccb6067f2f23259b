package service

import "errors"

// ErrResetDisabled indicates a reset was attempted without ENABLE_RESET set.
var ErrResetDisabled = errors.New("plantfeed: reset is disabled")
