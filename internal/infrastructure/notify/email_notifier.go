package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/oops"

	"github.com/oksasatya/go-commerce-user/config"
	"github.com/oksasatya/go-commerce-user/internal/application"
	"github.com/oksasatya/go-commerce-user/pkg/mailer"
	mailtpl "github.com/oksasatya/go-commerce-user/pkg/mailer/templates"
)

const publishTimeout = 5 * time.Second

// Publisher puts a JSON message on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier turns account events into queued email jobs for the worker.
type EmailNotifier struct {
	Pub Publisher
	Cfg *config.Config
}

func NewEmailNotifier(pub Publisher, cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{Pub: pub, Cfg: cfg}
}

func (n *EmailNotifier) Notify(ctx context.Context, ev application.AccountEvent) error {
	job, err := n.job(ev)
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := n.Pub.PublishJSON(c, job); err != nil {
		return oops.
			Code("EMAIL_PUBLISH_FAILED").
			With("event", ev.Type).
			With("template", job.Template).
			Wrap(err)
	}
	return nil
}

func (n *EmailNotifier) job(ev application.AccountEvent) (mailer.EmailJob, error) {
	opts := []mailtpl.Option{
		mailtpl.WithIP(ev.Meta.IP),
		mailtpl.WithUserAgent(ev.Meta.UserAgent),
		mailtpl.WithTime(ev.OccurredAt),
	}
	var (
		tpl  string
		data map[string]any
	)
	switch ev.Type {
	case application.EventAccountSignedUp:
		tpl = mailtpl.AccountSignedUp
		data = mailtpl.NewAccountSignedUpData(n.Cfg, ev.MaskedName, ev.LoginID, ev.Email, opts...)
	case application.EventPasswordChanged:
		tpl = mailtpl.PasswordChanged
		data = mailtpl.NewPasswordChangedData(n.Cfg, ev.MaskedName, ev.LoginID, ev.Email, opts...)
	default:
		return mailer.EmailJob{}, fmt.Errorf("no email template for event %q", ev.Type)
	}
	return mailer.EmailJob{To: ev.Email, Template: tpl, Data: data}, nil
}

var _ application.Notifier = (*EmailNotifier)(nil)
