package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is the sentinel for missing entities. Callers can test
// with errors.Is regardless of the wrapping message.
var ErrNotFound = gorm.ErrRecordNotFound

func wrapNotFound(err error, entity string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
	}
	return err
}
