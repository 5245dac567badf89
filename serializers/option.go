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

package serializers

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/wirecodec/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a CodecProvider.
	Apply(*CodecProvider)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(provider *CodecProvider)

// Apply applies the option
func (f OptionFunc) Apply(p *CodecProvider) {
	f(p)
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(p *CodecProvider) {
		if logger != nil {
			p.logger = logger
		}
	})
}

// WithMeterProvider sets the meter provider of the resolution metrics.
// The global meter provider is used by default.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(p *CodecProvider) {
		p.meterProvider = provider
	})
}

// WithShards sets the number of shards of the resolution caches.
// A non-positive count picks one shard per available processor.
func WithShards(shards int) Option {
	return OptionFunc(func(p *CodecProvider) {
		p.shards = shards
	})
}
