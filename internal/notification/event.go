// Package notification normalizes booking notification events ahead of the
// confirmation email send. An event arrives in one of two wire shapes: a flat
// JSON object carrying the booking fields directly, or a DynamoDB stream
// envelope where the fields sit type-tagged inside Records[0].dynamodb.NewImage.
// Both shapes normalize to the same Booking before any validation runs, so
// nothing downstream branches on shape.
package notification

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// Booking is the canonical internal shape of a notification event.
type Booking struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Category string `json:"category"`
}

// MissingFieldError reports the first required field found empty during
// validation. It is terminal for the invocation: no send is attempted.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

// Extract normalizes a raw notification payload into a Booking. A payload
// with a non-empty Records list carrying a new image is treated as a stream
// envelope; anything else is parsed as the flat shape. Missing or non-string
// image attributes become empty strings and are left to Validate.
func Extract(raw json.RawMessage) (Booking, error) {
	var stream events.DynamoDBEvent
	if err := json.Unmarshal(raw, &stream); err == nil && len(stream.Records) > 0 && stream.Records[0].Change.NewImage != nil {
		image := stream.Records[0].Change.NewImage
		return Booking{
			Name:     imageString(image, "Name"),
			Surname:  imageString(image, "Surname"),
			Email:    imageString(image, "email"),
			Category: imageString(image, "category"),
		}, nil
	}

	var booking Booking
	if err := json.Unmarshal(raw, &booking); err != nil {
		return Booking{}, fmt.Errorf("parse notification payload: %w", err)
	}
	return booking, nil
}

// imageString unwraps a type-tagged string attribute from a stream image.
func imageString(image map[string]events.DynamoDBAttributeValue, name string) string {
	av, ok := image[name]
	if !ok || av.DataType() != events.DataTypeString {
		return ""
	}
	return av.String()
}

// Validate checks the four required fields in fixed order: name, surname,
// email, category.
func (b Booking) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", b.Name},
		{"surname", b.Surname},
		{"email", b.Email},
		{"category", b.Category},
	}
	for _, field := range fields {
		if field.value == "" {
			return &MissingFieldError{Field: field.name}
		}
	}
	return nil
}
