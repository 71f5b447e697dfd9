//go:build !pcitest

package paymentmethod

// DefaultHolder is the representation production builds run with.
type DefaultHolder = MaskedNumber
