package paymentmethod

// RawCardNumber wraps the holder and serializes transparently as it.
type RawCardNumber[T Holder[T]] struct {
	Inner T
}

// Peek returns the card number digits.
func (r RawCardNumber[T]) Peek() string {
	return r.Inner.Digits()
}

func (r RawCardNumber[T]) String() string {
	return r.Inner.String()
}

func (r RawCardNumber[T]) Masked() string {
	return r.Inner.String()
}

func (r RawCardNumber[T]) MarshalJSON() ([]byte, error) {
	return r.Inner.MarshalJSON()
}

// Card is the internal card record.
type Card[T Holder[T]] struct {
	Number RawCardNumber[T] `json:"card_number"`
	Issuer *string          `json:"card_issuer,omitempty"`
}

// PaymentMethodData carries exactly one payment method variant.
type PaymentMethodData[T Holder[T]] struct {
	Card *Card[T] `json:"card,omitempty"`
}

// NewCardData wraps c as the active variant.
func NewCardData[T Holder[T]](c Card[T]) PaymentMethodData[T] {
	return PaymentMethodData[T]{Card: &c}
}

// Kind reports the active variant, or "" when none is set.
func (d PaymentMethodData[T]) Kind() Kind {
	switch {
	case d.Card != nil:
		return KindCard
	default:
		return ""
	}
}
