package members

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrDuplicateEmail = errors.New("a member with this email already exists")
)
