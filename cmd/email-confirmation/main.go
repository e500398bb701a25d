// Package main implements the booking confirmation email Lambda handler.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/summit-events/rsvp-service/internal/mailer"
	"github.com/summit-events/rsvp-service/internal/notification"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/otel"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// EmailSender defines the interface for delivering rendered email.
type EmailSender interface {
	Send(ctx context.Context, to string, content mailer.Content) (string, error)
}

// Response is the proxy-style envelope returned for every invocation. Body is
// JSON carrying either "error" or "message" plus "messageId".
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// handler implements the confirmation email flow.
type handler struct {
	sender EmailSender
}

// newHandler creates a new handler.
func newHandler(sender EmailSender) *handler {
	return &handler{
		sender: sender,
	}
}

// handle processes one notification event: normalize, validate, render, send.
// It never returns an error to the runtime; every failure becomes a
// status-code response, so an invocation cannot crash its host. Invocations
// are at-least-once and independent; a duplicate delivery sends a duplicate
// confirmation, which is accepted.
func (h *handler) handle(ctx context.Context, raw json.RawMessage) (resp Response, err error) {
	tracer := otel.Tracer("email-confirmation")
	ctx, span := tracer.Start(ctx, "EmailConfirmationHandler")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Recovered from panic", slog.Any("panic", r))
			resp = errorResponse(http.StatusInternalServerError, fmt.Sprintf("Error sending email: %v", r))
			err = nil
		}
	}()

	booking, extractErr := notification.Extract(raw)
	if extractErr != nil {
		logger.ErrorContext(ctx, "Failed to parse event", slog.String("error", extractErr.Error()))
		return errorResponse(http.StatusInternalServerError, "Error sending email: "+extractErr.Error()), nil
	}

	if validateErr := booking.Validate(); validateErr != nil {
		logger.ErrorContext(ctx, "Validation failed", slog.String("error", validateErr.Error()))
		return errorResponse(http.StatusBadRequest, validateErr.Error()), nil
	}

	content := mailer.RenderConfirmation(booking.Name, booking.Surname, booking.Category)

	messageID, sendErr := h.sender.Send(ctx, booking.Email, content)
	if sendErr != nil {
		logger.ErrorContext(ctx, "Failed to send email",
			slog.String("email", booking.Email),
			slog.String("error", sendErr.Error()),
		)
		return errorResponse(http.StatusInternalServerError, "Error sending email: "+sendErr.Error()), nil
	}

	logger.InfoContext(ctx, "Email sent successfully",
		slog.String("email", booking.Email),
		slog.String("message_id", messageID),
	)
	return successResponse(messageID), nil
}

func successResponse(messageID string) Response {
	body, _ := json.Marshal(map[string]string{
		"message":   "Email sent successfully",
		"messageId": messageID,
	})
	return Response{StatusCode: http.StatusOK, Body: string(body)}
}

func errorResponse(status int, message string) Response {
	body, _ := json.Marshal(map[string]string{
		"error": message,
	})
	return Response{StatusCode: status, Body: string(body)}
}

func main() {
	ctx := context.Background()

	tp, err := xrayconfig.NewTracerProvider(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to initialize tracer provider", slog.String("error", err.Error()))
		panic(err)
	}
	otel.SetTracerProvider(tp)

	// Load config from environment
	sender := os.Getenv("SENDER_EMAIL")
	if sender == "" {
		sender = "noreply@example.co.za"
	}

	// Initialize AWS config
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to load AWS config", slog.String("error", err.Error()))
		panic(err)
	}

	sesClient := sesv2.NewFromConfig(cfg)
	h := newHandler(mailer.NewSender(sesClient, sender))
	lambda.Start(otellambda.InstrumentHandler(h.handle, xrayconfig.WithRecommendedOptions(tp)...))
}
