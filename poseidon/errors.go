package poseidon

import "fmt"

// ConfigError reports a malformed parameter block: an unsupported width, a
// round-constant table of the wrong length, or an MDS matrix of the wrong
// shape. It is always returned from construction, never panicked.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("poseidon: invalid parameters: %s", e.Reason)
}

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// ArityError reports that a fixed-arity hash wrapper was called with the
// wrong number of inputs. Mirrors the original's IncorrectWidthForPoseidon.
type ArityError struct {
	Got      int
	Expected int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("poseidon: incorrect width for hash: got %d inputs, expected %d", e.Got, e.Expected)
}
