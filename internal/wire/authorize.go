// Package wire defines the front-end request shapes accepted by the service.
package wire

// AuthorizeRequest is the authorize call as received from a client.
type AuthorizeRequest struct {
	Amount        int64             `json:"amount" validate:"gte=0"`
	MinorAmount   int64             `json:"minor_amount" validate:"gt=0"`
	Currency      string            `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	ReferenceID   string            `json:"reference_id,omitempty" validate:"omitempty,max=80"`
	Description   *string           `json:"description,omitempty"`
	ReturnURL     *string           `json:"return_url,omitempty" validate:"omitempty,url"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
}

// PaymentMethod is externally tagged: exactly one variant key is present.
type PaymentMethod struct {
	Card *CardDetails `json:"card,omitempty"`
}

// CardDetails is the raw card as sent by the client.
type CardDetails struct {
	CardNumber int64   `json:"card_number" validate:"gt=0"`
	CardCVC    int64   `json:"card_cvc" validate:"gte=0"`
	CardIssuer *string `json:"card_issuer,omitempty"`
}
