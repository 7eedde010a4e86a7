package main

import (
	"context"
	"os"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"orderflow/internal/aws"
	"orderflow/internal/config"
	"orderflow/internal/events"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.LoadConsumer()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	clients, err := aws.NewClients(context.Background())
	if err != nil {
		log.Fatal("failed to init aws clients", zap.Error(err))
	}

	store := events.NewLogStore(clients.DynamoDB, cfg.OrderEventsTable)
	consumer := events.NewConsumer(store, log)

	// RUN_LOCAL=true processes one simulated bus delivery and exits.
	if cfg.RunLocal {
		body := os.Getenv("LOCAL_SNS_BODY")
		if body == "" {
			body = `{"eventType":"ORDER_CREATED","data":{"email":"local@test.com","orderId":"local-order-1","shipping":{"type":"ECONOMIC","carrier":"CORREIOS"},"billing":{"payment":"CASH","totalPrice":10},"productCodes":["P1"],"requestId":"local-request-1"}}`
		}
		event := awsevents.SNSEvent{
			Records: []awsevents.SNSEventRecord{
				{SNS: awsevents.SNSEntity{MessageID: "local-message-1", Message: body}},
			},
		}
		if err := consumer.Handle(context.Background(), event); err != nil {
			log.Fatal("local handler error", zap.Error(err))
		}
		return
	}

	lambda.Start(consumer.Handle)
}
