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
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Resolution kinds
const (
	KindCodec      = "codec"
	KindBaseCodec  = "base_codec"
	KindCopier     = "copier"
	KindBaseCopier = "base_copier"
)

// Resolution outcomes
const (
	OutcomeHit      = "hit"
	OutcomeResolved = "resolved"
	OutcomeNotFound = "not_found"
	OutcomeRejected = "rejected"
)

// ResolutionMetric counts codec and copier resolutions
type ResolutionMetric struct {
	// Specifies the total number of resolutions by kind and outcome
	resolutions metric.Int64Counter
}

// NewResolutionMetric creates an instance of ResolutionMetric
func NewResolutionMetric(meter metric.Meter) (*ResolutionMetric, error) {
	resolutionMetric := new(ResolutionMetric)
	var err error
	if resolutionMetric.resolutions, err = meter.Int64Counter(
		"wirecodec.resolutions",
		metric.WithDescription("Total number of codec and copier resolutions"),
	); err != nil {
		return nil, fmt.Errorf("failed to create resolutions instrument, %w", err)
	}
	return resolutionMetric, nil
}

// Resolutions returns the resolutions counter
func (x *ResolutionMetric) Resolutions() metric.Int64Counter {
	return x.resolutions
}

// Record counts one resolution
func (x *ResolutionMetric) Record(ctx context.Context, kind, outcome string) {
	x.resolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}
