//go:build pcitest

package paymentmethod

// DefaultHolder is swapped for the transparent representation under the
// pcitest build tag.
type DefaultHolder = PlainNumber
