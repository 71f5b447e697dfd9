// Package paymentmethod holds the payment-method data carried through a flow,
// generic over how the sensitive card number is represented in memory.
package paymentmethod

import (
	"encoding/json"
	"fmt"
)

// Holder is satisfied by every in-memory representation of a card number.
// Implementations must never print the full number from String; Digits is the
// only way to reach the real value.
type Holder[T any] interface {
	comparable
	json.Marshaler
	fmt.Stringer
	// Digits exposes the card number as a decimal string.
	Digits() string
	// FromCardNumber builds a T from the numeric form used on the wire.
	FromCardNumber(number int64) (T, error)
}

// Decodable is the pointer side of a Holder: *T must decode the form T
// marshals to.
type Decodable[T any] interface {
	*T
	json.Unmarshaler
}

var (
	_ = DecodeHolder[MaskedNumber, *MaskedNumber]
	_ = DecodeHolder[PlainNumber, *PlainNumber]
)

// DecodeHolder reads a card number in representation T from its JSON form.
func DecodeHolder[T Holder[T], PT Decodable[T]](data []byte) (T, error) {
	var v T
	if err := PT(&v).UnmarshalJSON(data); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Kind names a payment method variant.
type Kind string

const (
	KindCard Kind = "card"
)
