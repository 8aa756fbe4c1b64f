package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-order-ingestor/internal/aws"
	"github.com/imrishuroy/go-order-ingestor/internal/config"
	"github.com/imrishuroy/go-order-ingestor/internal/handlers"
	"github.com/imrishuroy/go-order-ingestor/internal/ingest"
	"github.com/imrishuroy/go-order-ingestor/internal/logging"
	"github.com/imrishuroy/go-order-ingestor/internal/orders"
)

func setupRouter(ingester handlers.Ingester) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterOrdersRoutes(r, ingester)

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := logging.New(cfg.LogLevel, nil)

	clients, err := aws.NewAWSClients(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	pcfg := ingest.Config{
		Store:  orders.NewStore(clients.DynamoDB, cfg.OrdersTable),
		Table:  cfg.OrdersTable,
		Logger: logger,
	}
	if cfg.MetricsNamespace != "" {
		pcfg.Metrics = aws.NewMetricsRecorder(clients.CloudWatch, cfg.MetricsNamespace, logger)
	}

	r := setupRouter(ingest.NewProcessor(pcfg))

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if cfg.RunLocal {
		addr := ":8080"
		logger.Info("running local server", "addr", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
