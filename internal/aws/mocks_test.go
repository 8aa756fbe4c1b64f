package aws

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// fakeSQS records every SendMessage call.
type fakeSQS struct {
	mu    sync.Mutex
	sent  []*sqs.SendMessageInput
	fail  error
	msgID string
}

func (f *fakeSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	f.sent = append(f.sent, in)
	id := f.msgID
	return &sqs.SendMessageOutput{MessageId: &id}, nil
}

// fakeCloudWatch records every PutMetricData call.
type fakeCloudWatch struct {
	mu   sync.Mutex
	puts []*cloudwatch.PutMetricDataInput
	fail bool
}

func (f *fakeCloudWatch) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("throttled")
	}
	f.puts = append(f.puts, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}
