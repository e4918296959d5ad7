package apiclient

import (
	"encoding/json"
	"fmt"
)

// Payload is the envelope every backend response body uses.
type Payload[T any] struct {
	Success *bool  `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    T      `json:"data"`
}

// Succeeded reports success:true.
func (p *Payload[T]) Succeeded() bool {
	return p != nil && p.Success != nil && *p.Success
}

// Failed reports an explicit success:false.
func (p *Payload[T]) Failed() bool {
	return p != nil && p.Success != nil && !*p.Success
}

func (p *Payload[T]) reason(fallback string) string {
	if p != nil {
		if p.Message != "" {
			return p.Message
		}
		if p.Error != "" {
			return p.Error
		}
	}
	return fallback
}

// Failure is an action-level failure with the message shown to the user.
type Failure struct {
	Message string
	Status  int
	Details json.RawMessage
}

func (f *Failure) Error() string {
	return f.Message
}

// Fail builds a Failure with no backend context.
func Fail(message string) *Failure {
	return &Failure{Message: message}
}

// Decode unmarshals the result data into T. Absent data yields the zero value.
func Decode[T any](res *Result) (T, error) {
	var out T
	if res == nil || len(res.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return out, fmt.Errorf("apiclient: decode payload: %w", err)
	}
	return out, nil
}

func transportFailure(res *Result, fallback string) *Failure {
	msg := res.Error
	if msg == "" {
		msg = fallback
	}
	return &Failure{Message: msg, Status: res.Status, Details: res.Details}
}

// Expect requires a transport success and a body with success:true.
// The backend's message, then fallback, explains a failure.
func Expect[T any](res *Result, fallback string) (*Payload[T], error) {
	if !res.OK {
		return nil, transportFailure(res, fallback)
	}
	payload, err := Decode[*Payload[T]](res)
	if err != nil {
		return nil, &Failure{Message: fallback, Status: res.Status}
	}
	if !payload.Succeeded() {
		return nil, &Failure{Message: payload.reason(fallback), Status: res.Status}
	}
	return payload, nil
}

// Tolerate is Expect for reads that only fail on an explicit success:false.
// An empty body yields an empty payload.
func Tolerate[T any](res *Result, fallback string) (*Payload[T], error) {
	if !res.OK {
		return nil, transportFailure(res, fallback)
	}
	payload, err := Decode[*Payload[T]](res)
	if err != nil {
		return nil, &Failure{Message: fallback, Status: res.Status}
	}
	if payload == nil {
		return &Payload[T]{}, nil
	}
	if payload.Failed() {
		return nil, &Failure{Message: payload.reason(fallback), Status: res.Status}
	}
	return payload, nil
}

// ExpectMutation accepts an empty body; any other body must carry
// success:true. It returns the raw body for pass-through.
func ExpectMutation(res *Result, fallback string) (json.RawMessage, error) {
	if !res.OK {
		return nil, transportFailure(res, fallback)
	}
	if len(res.Data) == 0 {
		return nil, nil
	}
	var payload Payload[json.RawMessage]
	if err := json.Unmarshal(res.Data, &payload); err != nil || !payload.Succeeded() {
		return nil, &Failure{Message: payload.reason(fallback), Status: res.Status}
	}
	return res.Data, nil
}

// Inspect is Tolerate for bodies whose data may not match T. An explicit
// success:false still fails with the backend's reason. Otherwise a missing or
// unreadable body, or data of the wrong shape, yields an empty payload and
// the caller judges the data itself.
func Inspect[T any](res *Result, fallback string) (*Payload[T], error) {
	if !res.OK {
		return nil, transportFailure(res, fallback)
	}
	envelope, err := Decode[*Payload[json.RawMessage]](res)
	if err != nil || envelope == nil {
		return &Payload[T]{}, nil
	}
	if envelope.Failed() {
		return nil, &Failure{Message: envelope.reason(fallback), Status: res.Status}
	}
	out := &Payload[T]{Success: envelope.Success, Message: envelope.Message, Error: envelope.Error}
	if len(envelope.Data) > 0 {
		var data T
		if err := json.Unmarshal(envelope.Data, &data); err == nil {
			out.Data = data
		}
	}
	return out, nil
}
