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

package network

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

const recentlyPingedWindow = 15 * time.Minute

type healthState int

const (
	healthUnused healthState = iota
	healthHealthy
	healthUnhealthy
)

// HealthConfig controls the backoff applied to a node after a failed request
type HealthConfig struct {
	MaxAttempts int
	MaxBackoff  time.Duration
	MinBackoff  time.Duration
}

// DefaultHealthConfig is 250ms doubling up to 1h, with a warning past 10 consecutive failures
var DefaultHealthConfig = HealthConfig{
	MaxAttempts: 10,
	MaxBackoff:  time.Hour,
	MinBackoff:  250 * time.Millisecond,
}

type nodeHealth struct {
	attempts  int
	backoff   *backoff.ExponentialBackOff
	healthyAt time.Time
	state     healthState
	usedAt    time.Time
}

func newNodeHealth(config HealthConfig) *nodeHealth {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     config.MinBackoff,
		MaxElapsedTime:      0,
		MaxInterval:         config.MaxBackoff,
		Multiplier:          2,
		RandomizationFactor: 0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return &nodeHealth{backoff: b}
}

func (h *nodeHealth) isHealthy(now time.Time) bool {
	if h.state != healthUnhealthy {
		return true
	}

	return !h.healthyAt.After(now)
}

func (h *nodeHealth) recentlyPinged(now time.Time) bool {
	switch h.state {
	case healthHealthy:
		return now.Sub(h.usedAt) < recentlyPingedWindow
	case healthUnhealthy:
		return h.healthyAt.After(now)
	default:
		return false
	}
}

func (h *nodeHealth) markHealthy(now time.Time) {
	h.attempts = 0
	h.backoff.Reset()
	h.state = healthHealthy
	h.usedAt = now
}

// markUnhealthy pushes healthyAt out by the next backoff interval and returns it
func (h *nodeHealth) markUnhealthy(now time.Time) time.Duration {
	interval := h.backoff.NextBackOff()
	if interval == backoff.Stop {
		interval = h.backoff.MaxInterval
	}

	h.attempts++
	h.healthyAt = now.Add(interval)
	h.state = healthUnhealthy
	return interval
}
