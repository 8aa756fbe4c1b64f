package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// Exact key names read while unwrapping. Lookups go through maps because
// encoding/json matches struct tags case-insensitively.
const (
	recordsKey   = "Records"
	bodyKey      = "body"
	messageIDKey = "messageId"
	messageKey   = "Message"
)

// Normalize turns a raw inbound event into its order payloads.
//
// An event with a top-level "Records" key is a queue batch: each record body
// holds a notification whose Message field holds the order payload. Any other
// JSON object is itself the order payload.
//
// The sequence is lazy and stops after the first error, so a consumer that
// writes as it iterates has written every payload before the malformed one and
// none after it.
func Normalize(raw []byte) iter.Seq2[json.RawMessage, error] {
	return func(yield func(json.RawMessage, error) bool) {
		var top map[string]json.RawMessage
		if err := json.Unmarshal(raw, &top); err != nil {
			yield(nil, fmt.Errorf("%w: event: %v", ErrEnvelopeDecode, err))
			return
		}
		if top == nil {
			yield(nil, fmt.Errorf("%w: event is null", ErrEnvelopeDecode))
			return
		}

		records, batch := top[recordsKey]
		if !batch {
			yield(json.RawMessage(raw), nil)
			return
		}

		var msgs []map[string]json.RawMessage
		if err := json.Unmarshal(records, &msgs); err != nil {
			yield(nil, fmt.Errorf("%w: Records: %v", ErrEnvelopeDecode, err))
			return
		}
		if msgs == nil && bytes.Equal(bytes.TrimSpace(records), []byte("null")) {
			yield(nil, fmt.Errorf("%w: Records is null", ErrEnvelopeDecode))
			return
		}

		for i, msg := range msgs {
			payload, err := unwrapRecord(msg)
			if err != nil {
				yield(nil, fmt.Errorf("record %d (message_id=%s): %w", i+1, messageID(msg), err))
				return
			}
			if !yield(payload, nil) {
				return
			}
		}
	}
}

// unwrapRecord peels the queue body and the notification envelope off one record.
func unwrapRecord(msg map[string]json.RawMessage) (json.RawMessage, error) {
	body, err := stringField(msg, bodyKey)
	if err != nil {
		return nil, err
	}

	var note map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &note); err != nil {
		return nil, fmt.Errorf("%w: body: %v", ErrEnvelopeDecode, err)
	}
	message, err := stringField(note, messageKey)
	if err != nil {
		return nil, err
	}

	payload := json.RawMessage(message)
	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: Message is not valid JSON", ErrEnvelopeDecode)
	}
	return payload, nil
}

// stringField returns obj[key] as a string. An absent key is ErrMissingField,
// a non-string value is ErrEnvelopeDecode.
func stringField(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", fmt.Errorf("%w: %s is not a string", ErrEnvelopeDecode, key)
	}
	return *s, nil
}

func messageID(msg map[string]json.RawMessage) string {
	var id string
	_ = json.Unmarshal(msg[messageIDKey], &id)
	return id
}

// WrapNotification builds a queue message body carrying payload inside a
// notification envelope, the shape a topic-to-queue subscription delivers.
func WrapNotification(payload []byte, messageID, topicArn string, at time.Time) (string, error) {
	if !json.Valid(payload) {
		return "", fmt.Errorf("%w: payload is not valid JSON", ErrEnvelopeDecode)
	}
	body, err := json.Marshal(events.SNSEntity{
		Type:      "Notification",
		MessageID: messageID,
		TopicArn:  topicArn,
		Message:   string(payload),
		Timestamp: at.UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal notification: %w", err)
	}
	return string(body), nil
}
