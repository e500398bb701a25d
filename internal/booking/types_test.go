package booking

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestMarshalItem(t *testing.T) {
	item := &Item{
		Email:    "jane@x.com",
		Category: "Summit",
		Name:     "Jane",
		Surname:  "Doe",
	}

	attrs := marshalItem(item)

	want := map[string]string{
		AttrEmail:    "jane@x.com",
		AttrCategory: "Summit",
		AttrName:     "Jane",
		AttrSurname:  "Doe",
	}
	for attr, value := range want {
		s, ok := attrs[attr].(*types.AttributeValueMemberS)
		if !ok {
			t.Fatalf("attribute %q is not a string: %v", attr, attrs[attr])
		}
		if s.Value != value {
			t.Errorf("attribute %q = %q, want %q", attr, s.Value, value)
		}
	}
}

func TestUnmarshalItem(t *testing.T) {
	item := unmarshalItem(map[string]types.AttributeValue{
		AttrEmail:    &types.AttributeValueMemberS{Value: "jane@x.com"},
		AttrCategory: &types.AttributeValueMemberS{Value: "Summit"},
		AttrName:     &types.AttributeValueMemberS{Value: "Jane"},
		AttrSurname:  &types.AttributeValueMemberS{Value: "Doe"},
	})

	if item.Email != "jane@x.com" {
		t.Errorf("Email = %q, want %q", item.Email, "jane@x.com")
	}
	if item.Category != "Summit" {
		t.Errorf("Category = %q, want %q", item.Category, "Summit")
	}
	if item.Name != "Jane" {
		t.Errorf("Name = %q, want %q", item.Name, "Jane")
	}
	if item.Surname != "Doe" {
		t.Errorf("Surname = %q, want %q", item.Surname, "Doe")
	}
}

func TestUnmarshalItem_MissingAttributes(t *testing.T) {
	item := unmarshalItem(map[string]types.AttributeValue{
		AttrEmail: &types.AttributeValueMemberS{Value: "jane@x.com"},
	})

	if item.Email != "jane@x.com" {
		t.Errorf("Email = %q, want %q", item.Email, "jane@x.com")
	}
	if item.Name != "" || item.Surname != "" || item.Category != "" {
		t.Errorf("missing attributes should unmarshal empty, got %+v", item)
	}
}

func TestItemKey(t *testing.T) {
	item := &Item{Email: "jane@x.com", Category: "Summit"}

	key := item.Key()
	if len(key) != 2 {
		t.Fatalf("key has %d attributes, want 2", len(key))
	}
	if email, ok := key[AttrEmail].(*types.AttributeValueMemberS); !ok || email.Value != "jane@x.com" {
		t.Errorf("unexpected email key: %v", key[AttrEmail])
	}
	if category, ok := key[AttrCategory].(*types.AttributeValueMemberS); !ok || category.Value != "Summit" {
		t.Errorf("unexpected category key: %v", key[AttrCategory])
	}
}
