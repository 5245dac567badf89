// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package metric

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// namingMeterProvider records the names of the meters it hands out
type namingMeterProvider struct {
	noop.MeterProvider
	names []string
}

func (p *namingMeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	p.names = append(p.names, name)
	return p.MeterProvider.Meter(name, opts...)
}

func TestProvider(t *testing.T) {
	t.Run("With the global meter provider", func(t *testing.T) {
		global := new(namingMeterProvider)
		previous := otel.GetMeterProvider()
		otel.SetMeterProvider(global)
		t.Cleanup(func() { otel.SetMeterProvider(previous) })

		for _, provider := range []*Provider{New(), New(WithMeterProvider(nil))} {
			assert.Equal(t, global, provider.meterProvider)
			assert.NotNil(t, provider.Meter())
		}
		assert.Equal(t, []string{instrumentationName, instrumentationName}, global.names)
	})
	t.Run("With a custom meter provider", func(t *testing.T) {
		custom := new(namingMeterProvider)
		provider := New(WithMeterProvider(custom))
		assert.Equal(t, custom, provider.meterProvider)
		assert.Equal(t, []string{instrumentationName}, custom.names)
	})
}

func TestResolutionMetric(t *testing.T) {
	resolutionMetric, err := NewResolutionMetric(New(WithMeterProvider(noop.NewMeterProvider())).Meter())
	require.NoError(t, err)
	require.NotNil(t, resolutionMetric.Resolutions())

	for _, kind := range []string{KindCodec, KindBaseCodec, KindCopier, KindBaseCopier} {
		for _, outcome := range []string{OutcomeHit, OutcomeResolved, OutcomeNotFound, OutcomeRejected} {
			assert.NotPanics(t, func() { resolutionMetric.Record(context.Background(), kind, outcome) })
		}
	}
}
