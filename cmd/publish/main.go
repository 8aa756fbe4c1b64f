// Command publish sends one order notification to the orders queue, wrapped the
// way a topic subscription would deliver it. Useful against LocalStack.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/imrishuroy/go-order-ingestor/internal/aws"
	"github.com/imrishuroy/go-order-ingestor/internal/config"
	"github.com/imrishuroy/go-order-ingestor/internal/ingest"
	"github.com/imrishuroy/go-order-ingestor/internal/orders"
)

type options struct {
	queueURL  string
	topicArn  string
	orderID   string
	userID    string
	itemName  string
	quantity  string
	status    string
	timestamp string
}

func parseFlags(cfg config.Config, args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	fs.StringVar(&o.queueURL, "queue-url", cfg.QueueURL, "orders queue URL (defaults to ORDERS_QUEUE_URL)")
	fs.StringVar(&o.topicArn, "topic-arn", "arn:aws:sns:"+cfg.Region+":000000000000:orders", "topic ARN recorded in the envelope")
	fs.StringVar(&o.orderID, "order-id", "", "order id (random when empty)")
	fs.StringVar(&o.userID, "user-id", "user-1", "user id")
	fs.StringVar(&o.itemName, "item", "Widget", "item name")
	fs.StringVar(&o.quantity, "quantity", "1", "quantity")
	fs.StringVar(&o.status, "status", orders.StatusCreated, "order status")
	fs.StringVar(&o.timestamp, "timestamp", "", "timestamp (now, RFC3339, when empty)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

// buildBody returns the queue message body and the order id it carries.
func buildBody(o options, now time.Time) (string, string, error) {
	rec := orders.OrderRecord{
		OrderID:   o.orderID,
		UserID:    o.userID,
		ItemName:  o.itemName,
		Quantity:  orders.Quantity(o.quantity),
		Status:    o.status,
		Timestamp: orders.StringTimestamp(o.timestamp),
	}
	if rec.OrderID == "" {
		rec.OrderID = uuid.NewString()
	}
	if o.timestamp == "" {
		rec.Timestamp = orders.StringTimestamp(now.UTC().Format(time.RFC3339))
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return "", "", err
	}
	body, err := ingest.WrapNotification(payload, uuid.NewString(), o.topicArn, now)
	if err != nil {
		return "", "", err
	}
	return body, rec.OrderID, nil
}

func main() {
	cfg := config.FromEnv()
	opts, err := parseFlags(cfg, os.Args[1:])
	if err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	body, orderID, err := buildBody(opts, time.Now())
	if err != nil {
		log.Fatalf("build message: %v", err)
	}

	ctx := context.Background()
	clients, err := aws.NewAWSClients(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	msgID, err := aws.NewPublisher(clients.SQS, opts.queueURL).SendOrderMessage(ctx, body, map[string]string{
		"order_id": orderID,
	})
	if err != nil {
		log.Fatalf("publish: %v", err)
	}
	log.Printf("published order=%s message_id=%s", orderID, msgID)
}
