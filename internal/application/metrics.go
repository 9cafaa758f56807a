package application

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oksasatya/go-commerce-user/internal/domain/errs"
)

const (
	opSignUp         = "sign_up"
	opGetMe          = "get_me"
	opChangePassword = "change_password"
)

// Metrics counts use-case outcomes.
type Metrics struct {
	Operations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_operations_total",
			Help: "Account use-case invocations by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations)
	}
	return m
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = strings.ToLower(string(errs.KindOf(err)))
	}
	m.Operations.WithLabelValues(op, outcome).Inc()
}
