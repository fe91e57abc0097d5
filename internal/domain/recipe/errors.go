package recipe

import "errors"

// Domain errors for recipe operations

var (
	ErrUnknownDietaryTag = errors.New("unknown dietary tag")
	ErrMissingID         = errors.New("recipe has no identity")
)
