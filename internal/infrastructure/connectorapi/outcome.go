package connectorapi

import "github.com/cassiomorais/connector-service/internal/domain/router"

// Class is the classification of an HTTP status code.
type Class int

const (
	ClassUnexpected Class = iota
	ClassSuccess
	ClassFailure
)

func (c Class) String() string {
	switch c {
	case ClassSuccess:
		return "success"
	case ClassFailure:
		return "failure"
	default:
		return "unexpected"
	}
}

// Classify maps a status code to a class. 200-202, 204 and 302 succeed;
// 400-599 fail; everything else is unexpected.
func Classify(status int) Class {
	switch {
	case status >= 200 && status <= 202, status == 204, status == 302:
		return ClassSuccess
	case status >= 400 && status <= 599:
		return ClassFailure
	default:
		return ClassUnexpected
	}
}

// Outcome is a classified connector reply.
type Outcome struct {
	Success  bool
	Response router.Response
}

func (o Outcome) Class() Class {
	if o.Success {
		return ClassSuccess
	}
	return ClassFailure
}
