package narrowphase

import "github.com/pkg/errors"

var (
	ErrInvalidConfig = errors.New("invalid narrowphase configuration")
	ErrNilObject     = errors.New("nil object")
)
