package paymentmethod

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	domainErrors "github.com/cassiomorais/connector-service/internal/domain/errors"
)

const (
	minCardNumberLen = 13
	maxCardNumberLen = 19

	// lengths in this range are rendered with the first six digits visible
	minMaskedRenderLen = 15
	maxMaskedRenderLen = 19
	visiblePrefixLen   = 6

	typePlaceholder = "*** string ***"
)

// MaskedNumber is the production card number: a validated digit string that
// never renders in full.
type MaskedNumber struct {
	digits string
}

// NewMaskedNumber validates s and wraps it.
func NewMaskedNumber(s string) (MaskedNumber, error) {
	s = strings.TrimSpace(s)
	if err := ValidateCardNumber(s); err != nil {
		return MaskedNumber{}, err
	}
	return MaskedNumber{digits: s}, nil
}

func (MaskedNumber) FromCardNumber(number int64) (MaskedNumber, error) {
	return NewMaskedNumber(strconv.FormatInt(number, 10))
}

func (m MaskedNumber) Digits() string {
	return m.digits
}

func (m MaskedNumber) String() string {
	n := len(m.digits)
	if n < minMaskedRenderLen || n > maxMaskedRenderLen {
		return typePlaceholder
	}
	return m.digits[:visiblePrefixLen] + strings.Repeat("*", n-visiblePrefixLen)
}

// GoString keeps %#v from printing the unexported field.
func (m MaskedNumber) GoString() string {
	return m.String()
}

// Masked is the rendering used by log-safe serializers.
func (m MaskedNumber) Masked() string {
	return m.String()
}

func (m MaskedNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.digits)
}

func (m *MaskedNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("card number: %w", err)
	}
	parsed, err := NewMaskedNumber(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ValidateCardNumber checks length, digits and the Luhn checksum.
func ValidateCardNumber(s string) error {
	if len(s) < minCardNumberLen || len(s) > maxCardNumberLen {
		return fmt.Errorf("%w: length %d outside %d-%d", domainErrors.ErrInvalidCardNumber, len(s), minCardNumberLen, maxCardNumberLen)
	}
	if !isDigits(s) {
		return fmt.Errorf("%w: must be numeric", domainErrors.ErrInvalidCardNumber)
	}
	if !luhnValid(s) {
		return fmt.Errorf("%w: checksum mismatch", domainErrors.ErrInvalidCardNumber)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func luhnValid(s string) bool {
	sum, dbl := 0, false
	for i := len(s) - 1; i >= 0; i-- {
		d := int(s[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return sum%10 == 0
}
