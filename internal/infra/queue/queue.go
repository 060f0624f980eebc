// Package queue delivers background jobs such as horoscope prewarming to a
// handler, either in-process or through a Valkey list.
package queue

import (
	"context"
	"encoding/json"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
)

// Handler executes one job.
type Handler func(ctx context.Context, name string, payload map[string]any)

// HandlerQueue supports setting a handler for job delivery.
type HandlerQueue interface {
	horoscope.JobQueue
	SetHandler(handler Handler)
	// Close stops delivery and waits for in-flight jobs.
	Close() error
}

type jobEnvelope struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload"`
}

func payloadMap(payload any) map[string]any {
	switch typed := payload.(type) {
	case map[string]any:
		return typed
	case map[string]string:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out
	default:
		return map[string]any{}
	}
}

func encodeJob(name string, payload any) (string, error) {
	encoded, err := json.Marshal(jobEnvelope{Name: name, Payload: payloadMap(payload)})
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodeJob(raw string) (jobEnvelope, error) {
	var job jobEnvelope
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return jobEnvelope{}, err
	}
	if job.Payload == nil {
		job.Payload = map[string]any{}
	}
	return job, nil
}
