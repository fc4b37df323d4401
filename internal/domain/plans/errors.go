package plans

import "errors"

var (
	ErrPlanNotFound = errors.New("membership plan not found")
)
