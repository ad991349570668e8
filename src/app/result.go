package app

import (
	"context"
	"errors"
	"fmt"

	"guest_list_services/src/client"
)

const (
	OpLoad   = "load guests"
	OpAdd    = "add guest"
	OpToggle = "toggle attending"
	OpRemove = "remove guest"
)

type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindStatus    ErrorKind = "status"
	KindDecode    ErrorKind = "decode"
	KindCanceled  ErrorKind = "canceled"
	KindNotFound  ErrorKind = "not_found"
)

type OpError struct {
	Kind       ErrorKind
	StatusCode int
	Detail     string
}

func (e *OpError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Result is what every app operation hands back; Err is nil on success.
type Result struct {
	Op  string
	Err *OpError
}

func (r Result) OK() bool {
	return r.Err == nil
}

func (r Result) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Op + ": " + r.Err.Error()
}

func ok(op string) Result {
	return Result{Op: op}
}

func failed(op string, kind ErrorKind, detail string) Result {
	return Result{Op: op, Err: &OpError{Kind: kind, Detail: detail}}
}

func canceled(op string, detail string) Result {
	return failed(op, KindCanceled, detail)
}

// classify maps a client failure onto a result kind.
func classify(op string, err error) Result {
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		result := failed(op, ErrorKind(apiErr.Kind), apiErr.Error())
		result.Err.StatusCode = apiErr.StatusCode
		return result
	}

	if errors.Is(err, context.Canceled) {
		return canceled(op, err.Error())
	}
	return failed(op, KindTransport, err.Error())
}
