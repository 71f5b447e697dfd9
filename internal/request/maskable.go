package request

// MaskedPlaceholder replaces secret values in logs.
const MaskedPlaceholder = "**MASKED**"

// Maskable is a header value that is either safe to print or secret.
type Maskable struct {
	value  string
	masked bool
}

// NormalValue wraps a value that may be printed.
func NormalValue(v string) Maskable {
	return Maskable{value: v}
}

// MaskedValue wraps a secret value.
func MaskedValue(v string) Maskable {
	return Maskable{value: v, masked: true}
}

func (m Maskable) IsMasked() bool {
	return m.masked
}

// Expose returns the underlying value. Only the HTTP engine should call it.
func (m Maskable) Expose() string {
	return m.value
}

func (m Maskable) String() string {
	if m.masked {
		return MaskedPlaceholder
	}
	return m.value
}

func (m Maskable) GoString() string {
	return m.String()
}

func (m Maskable) Masked() string {
	return m.String()
}
