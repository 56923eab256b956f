package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// exchange is the raw result of one HTTP round trip. Either err is set and
// the rest is zero, or the request completed and status, statusText and body
// hold whatever came back.
type exchange struct {
	status     int
	statusText string
	body       []byte
	err        error
}

// errorMessage extracts the server's error envelope message, falling back to
// the status line text when the body is missing, malformed or empty. The
// delivered failure message is never empty for a completed exchange.
func (ex exchange) errorMessage() string {
	var msg Message
	if err := json.Unmarshal(ex.body, &msg); err == nil && msg.Message != "" {
		return msg.Message
	}
	if ex.statusText != "" {
		return ex.statusText
	}
	return http.StatusText(ex.status)
}

func deliverCreated(ex exchange, cb CreatedMessageCallback) {
	if ex.err != nil {
		cb.OnError(ex.err)
		return
	}
	if ex.status != http.StatusCreated {
		cb.OnFail(ex.errorMessage(), ex.status)
		return
	}
	var created CreatedMessage
	if err := json.Unmarshal(ex.body, &created); err != nil || created.EntityURL == "" {
		// Creation succeeded even if the confirmation body is unusable.
		cb.OnSuccess("", ex.statusText)
		return
	}
	segments := strings.Split(strings.TrimRight(created.EntityURL, "/"), "/")
	cb.OnSuccess(segments[len(segments)-1], created.Message)
}

func deliverMessage(ex exchange, cb MessageCallback) {
	if ex.err != nil {
		cb.OnError(ex.err)
		return
	}
	if ex.status != cb.SuccessCode() {
		cb.OnFail(ex.errorMessage(), ex.status)
		return
	}
	var msg Message
	if err := json.Unmarshal(ex.body, &msg); err != nil || msg.Message == "" {
		cb.OnSuccess(ex.statusText)
		return
	}
	cb.OnSuccess(msg.Message)
}

func deliverResult(ex exchange, cb ResultCallback) {
	if ex.err != nil {
		cb.OnError(ex.err)
		return
	}
	if ex.status != cb.SuccessCode() {
		cb.OnFail(ex.status)
		return
	}
	cb.OnSuccess()
}

func deliverEntity[T any](ex exchange, cb EntityCallback[T]) {
	if ex.err != nil {
		cb.OnException(ex.err)
		return
	}
	cb.OnResponse(ex.status, ex.body)
	if ex.status >= 200 && ex.status < 300 {
		var entity T
		if len(ex.body) > 0 {
			if err := json.Unmarshal(ex.body, &entity); err != nil {
				cb.OnException(fmt.Errorf("decoding %d response: %w", ex.status, err))
				return
			}
		}
		cb.OnReceive(entity)
		return
	}
	var msg Message
	if err := json.Unmarshal(ex.body, &msg); err != nil {
		cb.OnException(fmt.Errorf("decoding %d error response: %w", ex.status, err))
		return
	}
	cb.OnErrorMessage(msg)
}
