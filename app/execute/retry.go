/*
 * Copyright (C) 2019-2025 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package execute

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
)

// newBackoff builds the jitter free doubling backoff of a request. It stops after maxAttempts passes, once the
// elapsed time exceeds timeout, or when ctx is done
func newBackoff(ctx context.Context, settings client.Settings, timeout time.Duration) backoff.BackOffContext {
	exponential := &backoff.ExponentialBackOff{
		InitialInterval:     settings.InitialBackoff,
		MaxElapsedTime:      timeout,
		MaxInterval:         settings.MaxBackoff,
		Multiplier:          2,
		RandomizationFactor: 0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	exponential.Reset()

	maxRetries := settings.MaxAttempts - 1
	if maxRetries < 0 {
		maxRetries = 0
	}

	return backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(maxRetries)), ctx)
}
