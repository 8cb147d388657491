package resume

import "errors"

var (
	ErrUnknownSection  = errors.New("unknown resume section")
	ErrUnknownField    = errors.New("unknown resume field")
	ErrIndexOutOfRange = errors.New("entry index out of range")
	ErrStaleIndex      = errors.New("entry at index does not match expected id")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrInvalidLevel    = errors.New("invalid skill level")
	ErrInvalidValue    = errors.New("invalid field value")
	ErrSchema          = errors.New("resume does not match schema")
)
