package pricing

import "encoding/json"

// PromoStatus says what happened to the promotion code supplied with a cart.
type PromoStatus int

const (
	// PromoNone means no code was supplied.
	PromoNone PromoStatus = iota
	// PromoApplied means the code matched and its discount is included.
	PromoApplied
	// PromoUnrecognized means a code was supplied but is not in the table.
	// The cart is still priced, just without a discount.
	PromoUnrecognized
)

func (s PromoStatus) String() string {
	switch s {
	case PromoApplied:
		return "applied"
	case PromoUnrecognized:
		return "unrecognized"
	default:
		return "none"
	}
}

func (s PromoStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DefaultPromotions is the fixed promotion table: code -> percent off the
// subtotal. Codes are matched exactly, case included.
func DefaultPromotions() map[string]int {
	return map[string]int{
		"WELCOME10": 10,
		"SAVE15":    15,
		"SAVE20":    20,
	}
}
