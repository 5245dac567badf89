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
	"context"
	"reflect"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Warmup resolves the codecs and copiers of the given types concurrently so
// that the first operations on them do not pay for resolution. It also makes
// the types resolvable by name. Failures of every type are combined.
// Cancelling the context stops scheduling further types.
func (p *CodecProvider) Warmup(ctx context.Context, typs ...reflect.Type) error {
	if err := p.Initialize(); err != nil {
		return err
	}

	var (
		mu   sync.Mutex
		errs error
	)

	eg := new(errgroup.Group)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for _, typ := range typs {
		if ctx.Err() != nil {
			break
		}

		eg.Go(func() error {
			if _, err := p.GetCodec(typ); err != nil {
				p.logger.Warnf("failed to warm up codec of type=(%s): %v", typ, err)
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
				return nil
			}
			if _, err := p.GetCopier(typ); err != nil {
				p.logger.Warnf("failed to warm up copier of type=(%s): %v", typ, err)
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = eg.Wait()
	return multierr.Append(errs, ctx.Err())
}
