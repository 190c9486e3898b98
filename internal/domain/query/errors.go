package query

import "errors"

var (
	// ErrNotADoubt indicates the message does not contain the trigger keyword.
	ErrNotADoubt = errors.New("message is not a doubt")
	// ErrNoMentorTagged indicates the doubt tags no mentors.
	ErrNoMentorTagged = errors.New("no mentor tagged")
	// ErrDescriptionTooShort indicates the cleaned description is below the minimum length.
	ErrDescriptionTooShort = errors.New("doubt description too short")
)
