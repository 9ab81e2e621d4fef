package hamaes

import (
	"errors"
	"fmt"
)

var (
	// ErrUncorrectable reports a verification mismatch that survived the
	// corrector's single-bit repair attempt.
	ErrUncorrectable = errors.New("uncorrectable state fault")

	// ErrUnrecognizedSyndrome reports a nonzero syndrome whose zero-bit
	// pattern falls outside the decode table; the affected byte is left
	// unmodified.
	ErrUnrecognizedSyndrome = errors.New("unrecognized fault syndrome")

	// ErrKeyLength reports a key whose length matches no variant, or not
	// the selected one.
	ErrKeyLength = errors.New("key length does not match variant")

	// ErrIVLength reports an IV/counter block that is not 16 bytes.
	ErrIVLength = errors.New("iv must be one block")

	// ErrInputLength reports a buffer that is not a whole number of blocks
	// where the mode requires it.
	ErrInputLength = errors.New("input length must be a multiple of the block size")
)

// FaultError reports where in the round sequence an unrepaired fault was
// detected. It unwraps to ErrUncorrectable or ErrUnrecognizedSyndrome.
type FaultError struct {
	Step  Step
	Round int
	Err   error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s round %d: %v", e.Step, e.Round, e.Err)
}

func (e *FaultError) Unwrap() error { return e.Err }
