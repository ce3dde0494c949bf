package backdrop

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// envelope is the fixed wrapper every API response arrives in.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// errorBody is the structured shape a non-2xx response may carry.
type errorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    *int   `json:"code"`
}

// decodeEnvelope decodes raw into the standard envelope and then its data
// into T. A failed envelope surfaces the server's message; a successful
// envelope with absent data is ErrInvalidResponse, since the caller
// required a value. Decoding is stateless and idempotent.
func decodeEnvelope[T any](raw []byte) (T, error) {
	var zero T
	env, err := decodeRawEnvelope(raw)
	if err != nil {
		return zero, err
	}
	if !env.Success {
		return zero, &ServerError{Message: env.Message}
	}
	if dataAbsent(env.Data) {
		return zero, fmt.Errorf("%w: missing data", ErrInvalidResponse)
	}
	return decodeStrict[T](env.Data)
}

// decodeOptional is decodeEnvelope for operations where null data is a
// legitimate "no content" outcome. ok is false when data was absent.
func decodeOptional[T any](raw []byte) (T, bool, error) {
	var zero T
	env, err := decodeRawEnvelope(raw)
	if err != nil {
		return zero, false, err
	}
	if !env.Success {
		return zero, false, &ServerError{Message: env.Message}
	}
	if dataAbsent(env.Data) {
		return zero, false, nil
	}
	out, err := decodeStrict[T](env.Data)
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

// decodeAck decodes an envelope whose data does not matter, returning the
// server's message. Used by fire-and-forget actions like cache clears.
func decodeAck(raw []byte) (string, error) {
	env, err := decodeRawEnvelope(raw)
	if err != nil {
		return "", err
	}
	if !env.Success {
		return "", &ServerError{Message: env.Message}
	}
	return env.Message, nil
}

func decodeRawEnvelope(raw []byte) (envelope, error) {
	var env envelope
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	// Decode stops at the end of the first value; anything after it is
	// not an envelope.
	if _, err := dec.Token(); err != io.EOF {
		return envelope{}, fmt.Errorf("%w: trailing data after envelope", ErrInvalidResponse)
	}
	return env, nil
}

// decodeStrict decodes payload bytes into T, failing closed: unknown fields
// are a schema violation, not something to silently drop.
func decodeStrict[T any](data []byte) (T, error) {
	var out T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return out, nil
}

func dataAbsent(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeErrorBody tries to interpret a non-2xx body as the structured
// {error, message, code} shape. ok is false when the body is anything else.
func decodeErrorBody(raw []byte) (string, bool) {
	var body errorBody
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		return "", false
	}
	if !body.Error || body.Message == "" {
		return "", false
	}
	return body.Message, true
}
