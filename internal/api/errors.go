package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Kind classifies a failed call for display. It never drives retries.
type Kind int

const (
	// KindNetwork means no response was received.
	KindNetwork Kind = iota + 1
	// KindClient is a 4xx rejection; Message comes from the response body.
	KindClient
	// KindServer is a 5xx failure.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is returned by every Client method that fails.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindNetwork && e.Err != nil:
		return fmt.Sprintf("backend unreachable: %v", e.Err)
	case e.Details != "":
		return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Details)
	case e.Status != 0:
		return fmt.Sprintf("%d %s", e.Status, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsNetwork(err error) bool { return kindOf(err) == KindNetwork }
func IsClient(err error) bool { return kindOf(err) == KindClient }
func IsServer(err error) bool { return kindOf(err) == KindServer }

func kindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// statusError builds an Error from a non-2xx response, preferring the body's
// message, then its error field, then the status text.
func statusError(resp *http.Response) *Error {
	e := &Error{Status: resp.StatusCode, Kind: KindClient}
	if resp.StatusCode >= http.StatusInternalServerError {
		e.Kind = KindServer
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		e.Message = body.Message
		if e.Message == "" {
			e.Message = body.Error
		}
		e.Details = body.Details
	} else if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 512 {
		e.Message = text
	}
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}
