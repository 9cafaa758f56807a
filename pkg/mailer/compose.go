package mailer

import (
	"errors"
	"fmt"

	"github.com/oksasatya/go-commerce-user/pkg/mailer/templates"
)

var ErrEmptyJob = errors.New("email job has neither template nor subject")

// Compose turns a queued job into subject, text and html bodies.
func Compose(job EmailJob) (subject, text, html string, err error) {
	if job.To == "" {
		return "", "", "", errors.New("email job has no recipient")
	}
	if job.Template != "" {
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return "", "", "", fmt.Errorf("render %s: %w", job.Template, err)
		}
		return subject, text, html, nil
	}
	// Raw jobs are only enqueued by hand, e.g. an operator resend.
	if job.Subject == "" || (job.Text == "" && job.HTML == "") {
		return "", "", "", ErrEmptyJob
	}
	return job.Subject, job.Text, job.HTML, nil
}
