package amqp

import (
	"errors"
	"testing"
	"time"
)

func TestDatasetReseededMessageRoundTrip(t *testing.T) {
	msg := NewDatasetReseededMessage(60)
	if msg.Count != 60 {
		t.Fatalf("count %d", msg.Count)
	}
	if msg.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := DatasetReseededMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Count != msg.Count {
		t.Fatalf("count round trip: %d != %d", back.Count, msg.Count)
	}
	if !back.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("timestamp round trip: %v != %v", back.Timestamp, msg.Timestamp)
	}
}

func TestDatasetReseededMessageFromJSONInvalid(t *testing.T) {
	if _, err := DatasetReseededMessageFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestExponentialBackoff(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second}, // capped
		{10, 30 * time.Second},
	}
	for _, tc := range cases {
		if got := exponentialBackoff(tc.attempt); got != tc.want {
			t.Fatalf("attempt %d: expected %v, got %v", tc.attempt, tc.want, got)
		}
	}
}

func TestIsConnectionError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("Exception (320) Reason: connection closed"), true},
		{errors.New("message channel closed"), true},
		{errors.New("unexpected EOF"), true},
		{errors.New("write: broken pipe"), true},
		{errors.New("use of closed network connection"), true},
		{errors.New("access refused"), false},
		{errors.New("marshal message: bad payload"), false},
	}
	for _, tc := range cases {
		if got := isConnectionError(tc.err); got != tc.want {
			t.Fatalf("%v: expected %v, got %v", tc.err, tc.want, got)
		}
	}
}

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	c := &Client{}

	for i := 0; i < maxFailures-1; i++ {
		c.recordFailure()
		if c.isCircuitOpen() {
			t.Fatalf("circuit opened after %d failures", i+1)
		}
	}

	c.recordFailure()
	if !c.isCircuitOpen() {
		t.Fatalf("circuit should be open after %d failures", maxFailures)
	}
}

func TestCircuitBreakerResetsOnSuccess(t *testing.T) {
	c := &Client{}
	for i := 0; i < maxFailures; i++ {
		c.recordFailure()
	}
	if !c.isCircuitOpen() {
		t.Fatalf("circuit should be open")
	}

	c.recordSuccess()
	if c.isCircuitOpen() {
		t.Fatalf("circuit should close after success")
	}
	if c.failureCount != 0 {
		t.Fatalf("failure count not reset: %d", c.failureCount)
	}
}

func TestCircuitBreakerHalfOpenAfterTimeout(t *testing.T) {
	c := &Client{}
	for i := 0; i < maxFailures; i++ {
		c.recordFailure()
	}
	// Age the last failure past the open timeout.
	c.lastFailure = time.Now().Add(-openTimeout - time.Second)

	if c.isCircuitOpen() {
		t.Fatalf("aged circuit should allow a half-open probe")
	}
	if c.state != StateHalfOpen {
		t.Fatalf("expected half-open state, got %d", c.state)
	}
}
