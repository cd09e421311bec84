package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors wrap one of these so callers can branch with errors.Is.
var (
	// ErrValidation marks a request rejected before it reached the stores.
	ErrValidation = errors.New("validation error")
	// ErrStorage marks a failure of the store boundary.
	ErrStorage = errors.New("storage error")
	// ErrTimeout marks a transient store failure: the call ran out of time.
	ErrTimeout = errors.New("storage timeout")
)

var (
	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrInvalidUserID = fmt.Errorf("%w: user id must be positive", ErrValidation)
	// ErrBalanceOverflow rejects a credit the balance cannot hold.
	ErrBalanceOverflow = fmt.Errorf("%w: balance would overflow", ErrValidation)
)
