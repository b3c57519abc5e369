package rules

import "errors"

var (
	errLoopGuardThreshold = errors.New("loop guard threshold must be >= 2")
	errNegativeCap        = errors.New("zone caps must be non-negative")
)
