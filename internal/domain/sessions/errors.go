package sessions

import "errors"

var (
	ErrSessionNotFound = errors.New("workout session not found")
	ErrMemberRequired  = errors.New("please select a member")
	ErrSessionFull     = errors.New("session is fully booked")
	ErrAlreadyBooked   = errors.New("member already booked this session")
	ErrUnknownMember   = errors.New("member not found")
)
