package pricing

import (
	"errors"
	"fmt"
)

var ErrInvalidLineItem = errors.New("pricing: invalid line item")

// InvalidLineItemError identifies which item of a cart failed validation.
// It matches ErrInvalidLineItem under errors.Is.
type InvalidLineItemError struct {
	Index     int
	ProductID string
	Reason    string
}

func (e *InvalidLineItemError) Error() string {
	return fmt.Sprintf("pricing: invalid line item %d (%s): %s", e.Index, e.ProductID, e.Reason)
}

func (e *InvalidLineItemError) Is(target error) bool {
	return target == ErrInvalidLineItem
}
