// Package flow declares the payment operations a connector can implement.
package flow

// Authorize reserves funds on a payment method.
type Authorize struct{}

func (Authorize) Name() string { return "authorize" }
