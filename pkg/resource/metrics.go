/*
Copyright 2025 Codenotary Inc. All rights reserved.

SPDX-License-Identifier: BUSL-1.1
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://mariadb.com/bsl11/

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package resource

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricsNamespace = "docadmin"

const (
	opQuery  = "query"
	opCreate = "create"
)

// Metrics counts requests dispatched by the hooks. A nil *Metrics records
// nothing.
type Metrics struct {
	Requests *prometheus.CounterVec
	InFlight *prometheus.GaugeVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the hook metrics in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "requests_total",
				Help:      "Number of settled requests per resource, operation and status.",
			},
			[]string{"resource", "op", "status"},
		),
		InFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "requests_in_flight",
				Help:      "Number of dispatched requests not settled yet.",
			},
			[]string{"resource", "op"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "request_duration_seconds",
				Help:      "Time from dispatch to settlement of requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"resource", "op"},
		),
	}
}

func (m *Metrics) dispatched(resource, op string) time.Time {
	if m != nil {
		m.InFlight.WithLabelValues(resource, op).Inc()
	}
	return time.Now()
}

func (m *Metrics) settled(resource, op string, start time.Time, err error) {
	if m == nil {
		return
	}

	status := StatusSuccess
	if err != nil {
		status = StatusFailed
	}

	m.InFlight.WithLabelValues(resource, op).Dec()
	m.Requests.WithLabelValues(resource, op, status.String()).Inc()
	m.Duration.WithLabelValues(resource, op).Observe(time.Since(start).Seconds())
}
