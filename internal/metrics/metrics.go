package metrics

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"

	"orderflow/internal/aws"
)

// Emitter pushes operational counters to CloudWatch. Emission failures are
// logged and swallowed; metrics must never fail a request.
type Emitter struct {
	client    aws.CloudWatchAPI
	namespace string
	log       *zap.Logger
}

// NewEmitter returns an Emitter publishing under the given namespace.
func NewEmitter(client aws.CloudWatchAPI, namespace string, log *zap.Logger) *Emitter {
	return &Emitter{
		client:    client,
		namespace: namespace,
		log:       log,
	}
}

// Count increments a named counter with optional dimensions.
func (e *Emitter) Count(ctx context.Context, name string, dimensions map[string]string) {
	value := 1.0
	datum := cwtypes.MetricDatum{
		MetricName: &name,
		Value:      &value,
		Unit:       cwtypes.StandardUnitCount,
	}
	for k, v := range dimensions {
		datum.Dimensions = append(datum.Dimensions, cwtypes.Dimension{Name: &k, Value: &v})
	}

	_, err := e.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &e.namespace,
		MetricData: []cwtypes.MetricDatum{datum},
	})
	if err != nil {
		e.log.Debug("metric emission failed", zap.String("metric", name), zap.Error(err))
	}
}

// EventPublishFailure counts an order event that was lost after its order
// write committed. Operators watch this to detect event log gaps.
func (e *Emitter) EventPublishFailure(ctx context.Context, eventType string) {
	e.Count(ctx, "OrderEventPublishFailed", map[string]string{"EventType": eventType})
}
