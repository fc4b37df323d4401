package trainers

import "errors"

var (
	ErrTrainerNotFound = errors.New("trainer not found")
)
