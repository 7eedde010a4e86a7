package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"orderflow/internal/aws"
)

// LogStore writes and reads the append-only event log table. Rows carry a
// ttl attribute consumed by the table's expiry mechanism, so the log is
// ephemeral audit data, not a ledger.
type LogStore struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewLogStore returns a configured LogStore.
func NewLogStore(client aws.DynamoDBAPI, tableName string) *LogStore {
	return &LogStore{
		client:    client,
		tableName: tableName,
	}
}

// Put appends one event log record.
func (s *LogStore) Put(ctx context.Context, rec Record) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal event record: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put event record: %w", err)
	}
	return nil
}

// QueryByOrderID returns every log record in an order's partition, in sort
// key order (chronological, since the sort key embeds the timestamp).
func (s *LogStore) QueryByOrderID(ctx context.Context, orderID string) ([]Record, error) {
	pk := PartitionKey(orderID)
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		KeyConditionExpression: awsString("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query event records: %w", err)
	}

	result := make([]Record, 0, len(out.Items))
	for _, item := range out.Items {
		var rec Record
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal event record: %w", err)
		}
		result = append(result, rec)
	}
	return result, nil
}

func awsString(s string) *string { return &s }
