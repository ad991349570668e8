package client

import (
	"fmt"
)

type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindStatus    ErrorKind = "status"
	KindDecode    ErrorKind = "decode"
	KindCanceled  ErrorKind = "canceled"
)

// Error describes a failed call against the guest API.
type Error struct {
	Op         string
	Kind       ErrorKind
	StatusCode int // set for KindStatus
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindStatus && e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	case e.Kind == KindStatus:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}
