package catalog

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/oklog/ulid/v2"
)

const (
	keyPrefix  = "BLUEPRINT#"
	metadataSK = "METADATA"
	listPK     = "BLUEPRINTS"
	listIndex  = "GSI1"

	defaultListLimit = 20
	maxListLimit     = 100
)

// DynamoAPI is the subset of the DynamoDB client the store uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Record is the DynamoDB index entry for a published blueprint. The full
// document lives in object storage under ObjectKey.
type Record struct {
	PK          string   `dynamodbav:"PK" json:"-"`
	SK          string   `dynamodbav:"SK" json:"-"`
	GSI1PK      string   `dynamodbav:"GSI1PK" json:"-"`
	GSI1SK      string   `dynamodbav:"GSI1SK" json:"-"`
	BlueprintID string   `dynamodbav:"blueprintId" json:"blueprintId"`
	Idea        string   `dynamodbav:"idea" json:"idea"`
	Themes      []string `dynamodbav:"themes,omitempty" json:"themes,omitempty"`
	Runtime     string   `dynamodbav:"runtime" json:"runtime"`
	SceneCount  int      `dynamodbav:"sceneCount" json:"sceneCount"`
	MidRolls    []string `dynamodbav:"midRolls,omitempty" json:"midRolls,omitempty"`
	ObjectKey   string   `dynamodbav:"objectKey" json:"objectKey"`
	URL         string   `dynamodbav:"url,omitempty" json:"url,omitempty"`
	SizeBytes   int64    `dynamodbav:"sizeBytes,omitempty" json:"sizeBytes,omitempty"`
	CreatedAt   string   `dynamodbav:"createdAt" json:"createdAt"`
}

// Store handles DynamoDB operations for the blueprint index.
type Store struct {
	client    DynamoAPI
	tableName string
}

// NewStore creates a DynamoDB store.
func NewStore(client DynamoAPI, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

// NewBlueprintID generates a ULID for a new blueprint. IDs sort by creation
// time.
func NewBlueprintID(now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generate ulid: %w", err)
	}
	return id.String(), nil
}

func itemKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: keyPrefix + id},
		"SK": &types.AttributeValueMemberS{Value: metadataSK},
	}
}

// Put inserts a new record. Index keys are derived from BlueprintID and
// CreatedAt; an existing record with the same id is never overwritten.
func (s *Store) Put(ctx context.Context, rec Record) error {
	rec.PK = keyPrefix + rec.BlueprintID
	rec.SK = metadataSK
	rec.GSI1PK = listPK
	rec.GSI1SK = rec.CreatedAt + "#" + rec.BlueprintID

	av, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal blueprint record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.tableName,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		return fmt.Errorf("put blueprint record: %w", err)
	}
	return nil
}

// Get retrieves a single record by id. It returns ErrNotFound when no
// record exists.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.tableName,
		Key:       itemKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get blueprint record: %w", err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	var rec Record
	if err := attributevalue.UnmarshalMap(result.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal blueprint record: %w", err)
	}
	return &rec, nil
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.tableName,
		Key:       itemKey(id),
	})
	if err != nil {
		return fmt.Errorf("delete blueprint record: %w", err)
	}
	return nil
}

// List returns records newest first via GSI1. The cursor is the GSI1SK of
// the last record of the previous page.
func (s *Store) List(ctx context.Context, limit int, cursor string) ([]Record, string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	input := &dynamodb.QueryInput{
		TableName:              &s.tableName,
		IndexName:              aws.String(listIndex),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: listPK},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	}

	if cursor != "" {
		// cursor is {createdAt}#{id}
		_, id, ok := strings.Cut(cursor, "#")
		if !ok || id == "" {
			return nil, "", fmt.Errorf("invalid cursor format")
		}
		start := itemKey(id)
		start["GSI1PK"] = &types.AttributeValueMemberS{Value: listPK}
		start["GSI1SK"] = &types.AttributeValueMemberS{Value: cursor}
		input.ExclusiveStartKey = start
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("list blueprints: %w", err)
	}

	var recs []Record
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &recs); err != nil {
		return nil, "", fmt.Errorf("unmarshal blueprint list: %w", err)
	}

	var next string
	if result.LastEvaluatedKey != nil {
		if sk, ok := result.LastEvaluatedKey["GSI1SK"].(*types.AttributeValueMemberS); ok {
			next = sk.Value
		}
	}
	return recs, next, nil
}
