package errors

import "errors"

// ErrOptimisticLock indicates the row was modified by a concurrent
// operation between read and write; the caller should refresh and retry.
var ErrOptimisticLock = errors.New("record was modified by another operation, refresh and retry")

// ErrDuplicateSlot indicates an exclusive insert found an existing row
// holding the same slot inside its transaction.
var ErrDuplicateSlot = errors.New("slot already taken")
