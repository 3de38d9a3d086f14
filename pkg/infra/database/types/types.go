package types

import (
	"database/sql/driver"
	"fmt"

	"github.com/lib/pq"
)

// StringArray maps a Go string slice onto a Postgres TEXT[] value.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return pq.Array([]string{}).Value()
	}
	return pq.Array([]string(a)).Value()
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	var strs []string
	if err := pq.Array(&strs).Scan(value); err != nil {
		return fmt.Errorf("failed to scan string array: %w", err)
	}
	*a = strs
	return nil
}
