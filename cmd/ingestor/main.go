package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/go-order-ingestor/internal/aws"
	"github.com/imrishuroy/go-order-ingestor/internal/config"
	"github.com/imrishuroy/go-order-ingestor/internal/ingest"
	"github.com/imrishuroy/go-order-ingestor/internal/logging"
	"github.com/imrishuroy/go-order-ingestor/internal/orders"
)

const sampleEvent = `{"orderId":"local-order-1","userId":"local-user-1","itemName":"Widget","quantity":1,"status":"CREATED","timestamp":"2024-01-01T00:00:00Z"}`

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
	processor := ingest.NewProcessor(pcfg)

	// RUN_LOCAL=true feeds a single event through the handler, from LOCAL_EVENT
	// when set (direct or batch form) or a built-in direct-form sample.
	if cfg.RunLocal {
		event := os.Getenv("LOCAL_EVENT")
		if event == "" {
			event = sampleEvent
		}
		resp, err := processor.Handle(context.Background(), json.RawMessage(event))
		if err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		logger.Info("local invocation finished", "status_code", resp.StatusCode, "body", resp.Body)
		return
	}

	lambda.Start(processor.Handle)
}
