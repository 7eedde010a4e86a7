package main

import (
	"context"
	"net/http"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"orderflow/internal/aws"
	"orderflow/internal/config"
	"orderflow/internal/events"
	"orderflow/internal/handlers"
	"orderflow/internal/metrics"
	"orderflow/internal/orders"
	"orderflow/internal/products"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterOrdersRoutes(r, cfg)

	return r
}

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	clients, err := aws.NewClients(context.Background())
	if err != nil {
		log.Fatal("failed to init aws clients", zap.Error(err))
	}

	store := orders.NewStore(clients.DynamoDB, cfg.OrdersTable)
	catalog := products.NewStore(clients.DynamoDB, cfg.ProductsTable)
	publisher := events.NewPublisher(clients.SNS, cfg.EventsTopicARN)
	emitter := metrics.NewEmitter(clients.CloudWatch, "OrderFlow", log)
	service := orders.NewService(store, catalog, publisher, emitter, log)

	r := setupRouter(handlers.HandlerConfig{
		Service: service,
		Logger:  log,
	})

	// RUN_LOCAL=true runs a plain HTTP server for development.
	if cfg.RunLocal {
		addr := ":8080"
		log.Info("running local server", zap.String("addr", addr))
		if err := r.Run(addr); err != nil {
			log.Fatal("failed to run local server", zap.Error(err))
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req awsevents.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
