package templates

import (
	"time"

	"github.com/oksasatya/go-commerce-user/config"
)

type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

// NewBaseEmailData fills the shared fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, maskedName, loginID, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:    maskedName,
		LoginID: loginID,
		Email:   email,
		Type:    typ,

		AppName:     cfg.AppName,
		CompanyName: cfg.CompanyName,
		SupportURL:  cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewAccountSignedUpData(cfg *config.Config, maskedName, loginID, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, AccountSignedUp, maskedName, loginID, email, opts...))
}

func NewPasswordChangedData(cfg *config.Config, maskedName, loginID, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, PasswordChanged, maskedName, loginID, email, opts...))
}
