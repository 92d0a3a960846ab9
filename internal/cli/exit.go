package cli

import (
	"errors"

	"github.com/nimasrn/finance-etl/internal/loader"
)

const (
	ExitOK          = 0
	ExitSetup       = 1
	ExitBatchFailed = 2
)

func ExitCodeForError(err error) int {
	if err == nil {
		return ExitOK
	}
	var be *loader.BatchError
	if errors.As(err, &be) {
		return ExitBatchFailed
	}
	return ExitSetup
}
