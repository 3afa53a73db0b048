package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes of BodyParser.Process, as counted by Metrics.
const (
	OutcomeContractViolation = "contract_violation"
	OutcomeIgnored           = "ignored"
	OutcomeParsed            = "parsed"
	OutcomePassthrough       = "passthrough"
	OutcomeRejected          = "rejected"
)

// Metrics counts BodyParser outcomes in the "reqbody_body_parser_outcomes_total" counter,
// labelled by outcome and by the registered mime type involved.
// Passthroughs carry an empty mime type label
// so unregistered content types sent by clients never become labels.
//
// A nil *Metrics counts nothing.
type Metrics struct {
	outcomes *prometheus.CounterVec
}

// NewMetrics constructs a *Metrics and registers its collectors with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reqbody",
			Subsystem: "body_parser",
			Name:      "outcomes_total",
			Help:      "Requests handled by the body parser, by outcome and mime type.",
		}, []string{"outcome", "mime"}),
	}

	if reg != nil {
		if err := reg.Register(m.outcomes); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Collector exposes the underlying collector, e.g., for testutil.
func (m *Metrics) Collector() *prometheus.CounterVec { return m.outcomes }

func (m *Metrics) observe(outcome, mime string) {
	if m == nil {
		return
	}

	m.outcomes.WithLabelValues(outcome, mime).Inc()
}
