package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/summit-events/rsvp-service/internal/mailer"
)

type mockEmailSender struct {
	sendFunc func(ctx context.Context, to string, content mailer.Content) (string, error)
}

func (m *mockEmailSender) Send(ctx context.Context, to string, content mailer.Content) (string, error) {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, to, content)
	}
	return "msg-123", nil
}

func decodeBody(t *testing.T, resp Response) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	return body
}

const flatEvent = `{"name":"Jane","surname":"Doe","email":"jane@x.com","category":"Summit"}`

const streamEvent = `{
	"Records": [
		{
			"eventID": "1",
			"eventName": "INSERT",
			"dynamodb": {
				"NewImage": {
					"Name": {"S": "Jane"},
					"Surname": {"S": "Doe"},
					"email": {"S": "jane@x.com"},
					"category": {"S": "Summit"}
				}
			}
		}
	]
}`

func TestHandler_FlatEvent(t *testing.T) {
	var sentTo string
	var sentContent mailer.Content
	mock := &mockEmailSender{
		sendFunc: func(ctx context.Context, to string, content mailer.Content) (string, error) {
			sentTo = to
			sentContent = content
			return "msg-123", nil
		},
	}

	h := newHandler(mock)
	resp, err := h.handle(context.Background(), json.RawMessage(flatEvent))

	if err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200; body: %s", resp.StatusCode, resp.Body)
	}
	if sentTo != "jane@x.com" {
		t.Errorf("sent to %q, want jane@x.com", sentTo)
	}
	if sentContent.Subject != "Registration Confirmation: Summit" {
		t.Errorf("subject = %q", sentContent.Subject)
	}

	body := decodeBody(t, resp)
	if body["message"] != "Email sent successfully" {
		t.Errorf("message = %q", body["message"])
	}
	if body["messageId"] == "" {
		t.Error("messageId is empty")
	}
}

func TestHandler_StreamEvent(t *testing.T) {
	var flatContent, streamContent mailer.Content
	h := newHandler(&mockEmailSender{
		sendFunc: func(ctx context.Context, to string, content mailer.Content) (string, error) {
			flatContent = content
			return "msg-123", nil
		},
	})
	if resp, _ := h.handle(context.Background(), json.RawMessage(flatEvent)); resp.StatusCode != http.StatusOK {
		t.Fatalf("flat StatusCode = %d, want 200", resp.StatusCode)
	}

	h = newHandler(&mockEmailSender{
		sendFunc: func(ctx context.Context, to string, content mailer.Content) (string, error) {
			streamContent = content
			return "msg-456", nil
		},
	})
	resp, err := h.handle(context.Background(), json.RawMessage(streamEvent))

	if err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stream StatusCode = %d, want 200; body: %s", resp.StatusCode, resp.Body)
	}
	// Equal field values must render identical email content either way.
	if flatContent != streamContent {
		t.Error("stream envelope rendered different content than the flat shape")
	}
}

func TestHandler_MissingField(t *testing.T) {
	mock := &mockEmailSender{
		sendFunc: func(ctx context.Context, to string, content mailer.Content) (string, error) {
			t.Error("Send must not be called on validation failure")
			return "", nil
		},
	}

	h := newHandler(mock)
	resp, err := h.handle(context.Background(),
		json.RawMessage(`{"name":"Jane","surname":"Doe","category":"Summit"}`))

	if err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d, want 400", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Missing required field: email" {
		t.Errorf("error = %q, want missing email", body["error"])
	}
}

func TestHandler_FieldCheckOrder(t *testing.T) {
	h := newHandler(&mockEmailSender{
		sendFunc: func(ctx context.Context, to string, content mailer.Content) (string, error) {
			t.Error("Send must not be called on validation failure")
			return "", nil
		},
	})

	resp, err := h.handle(context.Background(), json.RawMessage(`{"email":"jane@x.com"}`))
	if err != nil {
		t.Fatalf("handle() error = %v", err)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Missing required field: name" {
		t.Errorf("error = %q, want name reported first", body["error"])
	}
}

func TestHandler_SendFailure(t *testing.T) {
	mock := &mockEmailSender{
		sendFunc: func(ctx context.Context, to string, content mailer.Content) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	h := newHandler(mock)
	resp, err := h.handle(context.Background(), json.RawMessage(flatEvent))

	if err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if !strings.Contains(body["error"], "quota exceeded") {
		t.Errorf("error = %q, want failure description", body["error"])
	}
}

func TestHandler_RecoversFromPanic(t *testing.T) {
	mock := &mockEmailSender{
		sendFunc: func(ctx context.Context, to string, content mailer.Content) (string, error) {
			panic("transport wedged")
		},
	}

	h := newHandler(mock)
	resp, err := h.handle(context.Background(), json.RawMessage(flatEvent))

	if err != nil {
		t.Fatalf("handle() error = %v, want nil even on panic", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if !strings.Contains(body["error"], "transport wedged") {
		t.Errorf("error = %q, want panic description", body["error"])
	}
}

func TestHandler_MalformedPayload(t *testing.T) {
	h := newHandler(&mockEmailSender{
		sendFunc: func(ctx context.Context, to string, content mailer.Content) (string, error) {
			t.Error("Send must not be called for an unparsable payload")
			return "", nil
		},
	})

	resp, err := h.handle(context.Background(), json.RawMessage(`{broken`))

	if err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500", resp.StatusCode)
	}
}
