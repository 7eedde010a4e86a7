package orders

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// mockDynamo is a small in-memory DynamoDB covering the calls the order
// pipeline makes. Items are kept per table, keyed by "pk|sk" for the orders
// table and by "id" for the products table.
type mockDynamo struct {
	mu       sync.Mutex
	tables   map[string]map[string]map[string]types.AttributeValue
	putCalls int
	failPut  bool
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		tables: map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (m *mockDynamo) ensureTable(tbl string) map[string]map[string]types.AttributeValue {
	if _, ok := m.tables[tbl]; !ok {
		m.tables[tbl] = map[string]map[string]types.AttributeValue{}
	}
	return m.tables[tbl]
}

func itemKey(attrs map[string]types.AttributeValue) (string, error) {
	if pk, ok := attrs["pk"].(*types.AttributeValueMemberS); ok {
		if sk, ok := attrs["sk"].(*types.AttributeValueMemberS); ok {
			return pk.Value + "|" + sk.Value, nil
		}
		return pk.Value, nil
	}
	if id, ok := attrs["id"].(*types.AttributeValueMemberS); ok {
		return id.Value, nil
	}
	return "", errors.New("no key attributes")
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	if m.failPut {
		return nil, errors.New("put rejected")
	}
	table := m.ensureTable(*params.TableName)
	k, err := itemKey(params.Item)
	if err != nil {
		return nil, err
	}
	table[k] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := m.ensureTable(*params.TableName)
	k, err := itemKey(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := table[k]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := m.ensureTable(*params.TableName)
	k, err := itemKey(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := table[k]
	if !ok {
		return &dyn.DeleteItemOutput{}, nil
	}
	delete(table, k)
	if params.ReturnValues == types.ReturnValueAllOld {
		return &dyn.DeleteItemOutput{Attributes: item}, nil
	}
	return &dyn.DeleteItemOutput{}, nil
}

func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := m.ensureTable(*params.TableName)
	want := params.ExpressionAttributeValues[":email"].(*types.AttributeValueMemberS).Value
	var items []map[string]types.AttributeValue
	for _, item := range table {
		if pk, ok := item["pk"].(*types.AttributeValueMemberS); ok && pk.Value == want {
			items = append(items, item)
		}
	}
	return &dyn.QueryOutput{Items: items}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := m.ensureTable(*params.TableName)
	var items []map[string]types.AttributeValue
	for _, item := range table {
		items = append(items, item)
	}
	return &dyn.ScanOutput{Items: items}, nil
}

func (m *mockDynamo) BatchGetItem(ctx context.Context, params *dyn.BatchGetItemInput, optFns ...func(*dyn.Options)) (*dyn.BatchGetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := &dyn.BatchGetItemOutput{
		Responses: map[string][]map[string]types.AttributeValue{},
	}
	for tbl, req := range params.RequestItems {
		table := m.ensureTable(tbl)
		for _, key := range req.Keys {
			k, err := itemKey(key)
			if err != nil {
				return nil, err
			}
			if item, ok := table[k]; ok {
				out.Responses[tbl] = append(out.Responses[tbl], item)
			}
		}
	}
	return out, nil
}

// mockSNS records published messages.
type mockSNS struct {
	mu        sync.Mutex
	published []string
	fail      bool
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, errors.New("bus unavailable")
	}
	m.published = append(m.published, *params.Message)
	id := "msg-1"
	return &sns.PublishOutput{MessageId: &id}, nil
}

// mockCloudWatch records emitted metric names.
type mockCloudWatch struct {
	mu      sync.Mutex
	metrics []string
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range params.MetricData {
		m.metrics = append(m.metrics, *d.MetricName)
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}
