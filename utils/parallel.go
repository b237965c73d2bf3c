/*
 Copyright 2026 LoftFS Authors.

 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package utils

import "context"

// ParallelLimiter bounds the number of in-flight operations against a
// remote backend.
type ParallelLimiter struct {
	ch chan struct{}
}

func NewParallelLimiter(limit int) *ParallelLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &ParallelLimiter{ch: make(chan struct{}, limit)}
}

func (l *ParallelLimiter) Acquire(ctx context.Context) error {
	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *ParallelLimiter) Release() {
	<-l.ch
}
