package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/lambdacontext"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-order-ingestor/internal/orders"
	"github.com/imrishuroy/go-order-ingestor/internal/validation"
)

// SuccessMessage is the confirmation text returned on success.
const SuccessMessage = "Successfully processed messages"

// Response is the invocation result.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// RecordWriter upserts one order record. *orders.Store implements it.
type RecordWriter interface {
	Put(ctx context.Context, rec orders.OrderRecord) error
}

// Metrics receives ingestion counters. *aws.MetricsRecorder implements it.
type Metrics interface {
	OrdersIngested(ctx context.Context, n int)
	IngestFailed(ctx context.Context, kind string)
}

type noopMetrics struct{}

func (noopMetrics) OrdersIngested(context.Context, int) {}
func (noopMetrics) IngestFailed(context.Context, string) {}

// Config holds the processor's collaborators. It is fixed at construction.
type Config struct {
	Store   RecordWriter
	Table   string
	Logger  *slog.Logger
	Metrics Metrics
}

// Processor unwraps inbound events, extracts order records and upserts them.
// It holds no mutable state and is safe to share across invocations.
type Processor struct {
	store    RecordWriter
	table    string
	logger   *slog.Logger
	metrics  Metrics
	validate *validatorv10.Validate
}

// NewProcessor creates a processor from cfg.
func NewProcessor(cfg Config) *Processor {
	p := &Processor{
		store:    cfg.Store,
		table:    cfg.Table,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		validate: validation.New(),
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.metrics == nil {
		p.metrics = noopMetrics{}
	}
	return p
}

// Handle processes one inbound event, direct or batch form. Payloads are
// written one at a time in delivery order. The first failure stops the
// invocation and is returned unchanged in kind so the platform redelivers.
func (p *Processor) Handle(ctx context.Context, raw json.RawMessage) (Response, error) {
	logger := p.requestLogger(ctx)

	written := 0
	for payload, err := range Normalize(raw) {
		if err == nil {
			err = p.ingestRaw(ctx, logger, payload)
		}
		if err != nil {
			p.fail(ctx, logger, err)
			p.metrics.OrdersIngested(ctx, written)
			return Response{}, err
		}
		written++
	}

	p.metrics.OrdersIngested(ctx, written)
	return successResponse(), nil
}

// Ingest validates and stores a single already-decoded payload.
func (p *Processor) Ingest(ctx context.Context, payload validation.OrderPayload) error {
	logger := p.requestLogger(ctx)
	if err := p.ingest(ctx, logger, payload); err != nil {
		p.fail(ctx, logger, err)
		return err
	}
	p.metrics.OrdersIngested(ctx, 1)
	return nil
}

// Reject records a payload that could not be decoded before reaching Ingest.
// It logs and counts the failure like any other and returns it as a decode error.
func (p *Processor) Reject(ctx context.Context, cause error) error {
	err := fmt.Errorf("%w: order payload: %v", ErrEnvelopeDecode, cause)
	p.fail(ctx, p.requestLogger(ctx), err)
	return err
}

func (p *Processor) ingestRaw(ctx context.Context, logger *slog.Logger, raw json.RawMessage) error {
	var payload validation.OrderPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: order payload: %v", ErrEnvelopeDecode, err)
	}
	return p.ingest(ctx, logger, payload)
}

func (p *Processor) ingest(ctx context.Context, logger *slog.Logger, payload validation.OrderPayload) error {
	if err := p.validate.Struct(payload); err != nil {
		if missing := validation.MissingFields(err); len(missing) > 0 {
			return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
		}
		return fmt.Errorf("%w: order payload: %v", ErrEnvelopeDecode, err)
	}
	rec := payload.Record()

	logger.InfoContext(ctx, "processing order",
		"order_id", rec.OrderID,
		"user_id", rec.UserID,
		"item_name", rec.ItemName)

	if err := p.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("%w: order %s: %w", ErrStoreWrite, rec.OrderID, err)
	}

	logger.InfoContext(ctx, "order saved",
		"order_id", rec.OrderID,
		"table", p.table)
	return nil
}

func (p *Processor) fail(ctx context.Context, logger *slog.Logger, err error) {
	attrs := []any{"kind", Kind(err), "error", err.Error()}
	if code := awsErrorCode(err); code != "" {
		attrs = append(attrs, "aws_error_code", code)
	}
	logger.ErrorContext(ctx, "error processing message", attrs...)
	p.metrics.IngestFailed(ctx, Kind(err))
}

func (p *Processor) requestLogger(ctx context.Context) *slog.Logger {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return p.logger.With("aws_request_id", lc.AwsRequestID)
	}
	return p.logger
}

func successResponse() Response {
	body, _ := json.Marshal(SuccessMessage)
	return Response{StatusCode: 200, Body: string(body)}
}
