package booking

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBClient defines the interface for DynamoDB operations.
type DynamoDBClient interface {
	GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, input *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, input *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, input *dynamodb.DescribeTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoDBRepository implements booking storage using DynamoDB.
type DynamoDBRepository struct {
	client    DynamoDBClient
	tableName string
}

// NewDynamoDBRepository creates a new DynamoDBRepository.
func NewDynamoDBRepository(client DynamoDBClient, tableName string) *DynamoDBRepository {
	return &DynamoDBRepository{
		client:    client,
		tableName: tableName,
	}
}

// Put writes a booking unconditionally. A second write with the same
// (email, category) overwrites the first; that is accepted behavior, there is
// no uniqueness check.
func (r *DynamoDBRepository) Put(ctx context.Context, item *Item) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      marshalItem(item),
	})
	return err
}

// Get retrieves a single booking by its composite key.
func (r *DynamoDBRepository) Get(ctx context.Context, email, category string) (*Item, error) {
	booking := &Item{Email: email, Category: category}

	output, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       booking.Key(),
	})
	if err != nil {
		return nil, err
	}

	if output.Item == nil {
		return nil, ErrBookingNotFound
	}

	return unmarshalItem(output.Item), nil
}

// Update changes Name and Surname for an existing booking and returns the
// record as re-read after the write, so the caller sees committed state
// rather than the update echo. The existence check and the write are separate
// requests; a concurrent delete between them is a known race, last writer
// wins.
func (r *DynamoDBRepository) Update(ctx context.Context, email, category, name, surname string) (*Item, error) {
	if _, err := r.Get(ctx, email, category); err != nil {
		return nil, err
	}

	booking := &Item{Email: email, Category: category}

	// Name is a reserved word in DynamoDB.
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              booking.Key(),
		UpdateExpression: aws.String("SET #name = :name, Surname = :surname"),
		ExpressionAttributeNames: map[string]string{
			"#name": AttrName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":    &types.AttributeValueMemberS{Value: name},
			":surname": &types.AttributeValueMemberS{Value: surname},
		},
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, email, category)
}

// Delete removes a booking, returning ErrBookingNotFound if no record exists
// for the key. Same check-then-write pattern as Update.
func (r *DynamoDBRepository) Delete(ctx context.Context, email, category string) error {
	if _, err := r.Get(ctx, email, category); err != nil {
		return err
	}

	booking := &Item{Email: email, Category: category}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       booking.Key(),
	})
	return err
}

// ListAll returns every booking in the table. An empty table yields an empty
// slice and no error.
func (r *DynamoDBRepository) ListAll(ctx context.Context) ([]*Item, error) {
	output, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}

	items := make([]*Item, len(output.Items))
	for i, item := range output.Items {
		items[i] = unmarshalItem(item)
	}
	return items, nil
}

// ListByEmail returns all bookings for one email via a key-range query.
// Unlike ListAll, zero matches is ErrBookingNotFound.
func (r *DynamoDBRepository) ListByEmail(ctx context.Context, email string) ([]*Item, error) {
	output, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, err
	}

	if len(output.Items) == 0 {
		return nil, ErrBookingNotFound
	}

	items := make([]*Item, len(output.Items))
	for i, item := range output.Items {
		items[i] = unmarshalItem(item)
	}
	return items, nil
}

// ListByCategory scans the whole table with a filter on the category
// attribute. A category index would make this a query; the scan is an
// accepted inefficiency at this scale. Zero matches is ErrBookingNotFound.
func (r *DynamoDBRepository) ListByCategory(ctx context.Context, category string) ([]*Item, error) {
	output, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("category = :category"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":category": &types.AttributeValueMemberS{Value: category},
		},
	})
	if err != nil {
		return nil, err
	}

	if len(output.Items) == 0 {
		return nil, ErrBookingNotFound
	}

	items := make([]*Item, len(output.Items))
	for i, item := range output.Items {
		items[i] = unmarshalItem(item)
	}
	return items, nil
}

// Ping verifies the booking table is reachable.
func (r *DynamoDBRepository) Ping(ctx context.Context) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	})
	return err
}
