package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidParam is returned for schema parameters that cannot be used.
var ErrInvalidParam = errors.New("schema: invalid parameter")

func paramError(param, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParam, param, reason)
}
