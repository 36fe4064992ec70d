// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package evalcount

import (
	"github.com/prometheus/client_golang/prometheus"
)

type collector struct {
	counter *Counter
	values  *prometheus.Desc
	grads   *prometheus.Desc
}

// NewCollector exposes the counts of c as the counters
// <namespace>_value_evaluations_total and <namespace>_gradient_evaluations_total.
func NewCollector(namespace string, c *Counter) prometheus.Collector {
	return &collector{
		counter: c,
		values: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "value_evaluations_total"),
			"Number of objective value evaluations.", nil, nil),
		grads: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "gradient_evaluations_total"),
			"Number of gradient evaluations.", nil, nil),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.values
	ch <- c.grads
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.values, prometheus.CounterValue, float64(c.counter.Values()))
	ch <- prometheus.MustNewConstMetric(c.grads, prometheus.CounterValue, float64(c.counter.Grads()))
}
