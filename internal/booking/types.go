// Package booking provides types and storage operations for conference RSVP
// booking records.
package booking

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDB attribute names for the booking table. The composite primary key
// is (email, category).
const (
	AttrEmail    = "email"
	AttrCategory = "category"
	AttrName     = "Name"
	AttrSurname  = "Surname"
)

// ErrBookingNotFound is returned when no booking exists for the requested
// key, or when a list-by operation matches nothing.
var ErrBookingNotFound = errors.New("booking not found")

// Item represents a booking stored in DynamoDB. A booking is uniquely
// identified by (Email, Category); the identity fields are immutable once
// written, and only Name and Surname may change afterwards.
type Item struct {
	Email    string
	Category string
	Name     string
	Surname  string
}

// Key returns the DynamoDB primary key for this booking.
func (b *Item) Key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrEmail:    &types.AttributeValueMemberS{Value: b.Email},
		AttrCategory: &types.AttributeValueMemberS{Value: b.Category},
	}
}

// marshalItem converts an Item to a DynamoDB attribute map.
func marshalItem(b *Item) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrEmail:    &types.AttributeValueMemberS{Value: b.Email},
		AttrCategory: &types.AttributeValueMemberS{Value: b.Category},
		AttrName:     &types.AttributeValueMemberS{Value: b.Name},
		AttrSurname:  &types.AttributeValueMemberS{Value: b.Surname},
	}
}

// unmarshalItem converts a DynamoDB attribute map to an Item. Missing or
// non-string attributes become empty strings.
func unmarshalItem(item map[string]types.AttributeValue) *Item {
	return &Item{
		Email:    stringAttr(item, AttrEmail),
		Category: stringAttr(item, AttrCategory),
		Name:     stringAttr(item, AttrName),
		Surname:  stringAttr(item, AttrSurname),
	}
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if av, ok := item[name].(*types.AttributeValueMemberS); ok {
		return av.Value
	}
	return ""
}
