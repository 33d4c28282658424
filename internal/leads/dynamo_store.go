package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(context.Context, *dynamodb.DeleteItemInput, ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// dynamoLead is the item layout; createdat is stored as RFC3339Nano text.
type dynamoLead struct {
	ID         string `dynamodbav:"id"`
	Name       string `dynamodbav:"name"`
	Email      string `dynamodbav:"email"`
	Phone      string `dynamodbav:"phone"`
	LeadSource string `dynamodbav:"leadsource"`
	CreatedAt  string `dynamodbav:"createdat"`
}

// DynamoStore keeps leads in a DynamoDB table keyed by id.
type DynamoStore struct {
	client    dynamoAPI
	tableName string
	now       func() time.Time
}

var _ Store = (*DynamoStore)(nil)

// NewDynamoStore builds a store backed by the provided DynamoDB client.
func NewDynamoStore(client dynamoAPI, tableName string) *DynamoStore {
	if client == nil {
		panic("leads: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("leads: table name cannot be empty")
	}
	return &DynamoStore{
		client:    client,
		tableName: tableName,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListOrdered scans the whole table and orders by createdat descending.
// DynamoDB scans are unordered, so the ordering happens here.
func (s *DynamoStore) ListOrdered(ctx context.Context) ([]Lead, error) {
	items, err := s.scan(ctx, nil)
	if err != nil {
		return nil, err
	}
	return Derive(items, Query{Sort: DefaultSort}), nil
}

// FindIDByEmail scans with an equality filter on email.
func (s *DynamoStore) FindIDByEmail(ctx context.Context, email string) (string, bool, error) {
	filter := &dynamodb.ScanInput{
		FilterExpression:          aws.String("#email = :email"),
		ExpressionAttributeNames:  map[string]string{"#email": "email"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":email": &types.AttributeValueMemberS{Value: email}},
		ProjectionExpression:      aws.String("id, email, createdat"),
	}
	items, err := s.scan(ctx, filter)
	if err != nil {
		return "", false, err
	}
	for _, item := range items {
		if item.Email == email {
			return item.ID, true, nil
		}
	}
	return "", false, nil
}

// Insert writes a new item with a generated id and the current time.
func (s *DynamoStore) Insert(ctx context.Context, form LeadFormData) (*Lead, error) {
	createdAt := s.now()
	record := dynamoLead{
		ID:         uuid.New().String(),
		Name:       form.Name,
		Email:      form.Email,
		Phone:      form.Phone,
		LeadSource: form.LeadSource,
		CreatedAt:  createdAt.Format(time.RFC3339Nano),
	}
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("leads: failed to marshal lead: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("leads: failed to persist lead: %w", err)
	}
	return &Lead{
		ID:         record.ID,
		Name:       record.Name,
		Email:      record.Email,
		Phone:      record.Phone,
		LeadSource: record.LeadSource,
		CreatedAt:  createdAt,
	}, nil
}

// DeleteByID deletes by primary key; DynamoDB ignores missing keys.
func (s *DynamoStore) DeleteByID(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("leads: failed to delete lead: %w", err)
	}
	return nil
}

func (s *DynamoStore) scan(ctx context.Context, base *dynamodb.ScanInput) ([]Lead, error) {
	input := &dynamodb.ScanInput{}
	if base != nil {
		*input = *base
	}
	input.TableName = aws.String(s.tableName)

	out := []Lead{}
	for {
		page, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("leads: failed to scan leads: %w", err)
		}
		var records []dynamoLead
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, fmt.Errorf("leads: failed to unmarshal leads: %w", err)
		}
		for _, rec := range records {
			lead, err := rec.toLead()
			if err != nil {
				return nil, err
			}
			out = append(out, lead)
		}
		if len(page.LastEvaluatedKey) == 0 {
			return out, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

func (r dynamoLead) toLead() (Lead, error) {
	lead := Lead{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		LeadSource: r.LeadSource,
	}
	if r.CreatedAt == "" {
		return lead, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return Lead{}, errors.Join(fmt.Errorf("leads: bad createdat on %s", r.ID), err)
	}
	lead.CreatedAt = ts
	return lead, nil
}
