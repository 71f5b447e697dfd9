package paymentmethod

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// PlainNumber is the transparent test representation. It serializes as a JSON
// number and prints its digits.
type PlainNumber int64

func (PlainNumber) FromCardNumber(number int64) (PlainNumber, error) {
	if number <= 0 {
		return 0, fmt.Errorf("card number must be positive, got %d", number)
	}
	return PlainNumber(number), nil
}

func (p PlainNumber) Digits() string {
	return strconv.FormatInt(int64(p), 10)
}

func (p PlainNumber) String() string {
	return p.Digits()
}

func (p PlainNumber) Masked() string {
	return p.Digits()
}

func (p PlainNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(p))
}

func (p *PlainNumber) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("card number: %w", err)
	}
	*p = PlainNumber(n)
	return nil
}
