package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUndeliverable marks a job that will never succeed and must not be
// requeued.
var ErrUndeliverable = errors.New("undeliverable email job")

// Deliver decodes a queued job, renders it and hands it to sender.
// Decode and render failures wrap ErrUndeliverable; send failures do not.
func Deliver(ctx context.Context, sender Sender, body []byte, timeout time.Duration) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUndeliverable, err)
	}
	subject, text, html, err := Compose(job)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUndeliverable, err)
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sender.Send(c, job.To, subject, text, html)
}
