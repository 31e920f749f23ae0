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

package mirror

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const connectionResetMessage = "error reading a body from connection: connection reset"

type state int

const (
	stateStart state = iota
	stateRunning
	stateFinished
)

// request is a streaming mirror node request of wire items W. It holds the resume state of the stream
type request[W any] interface {
	name() string
	connect(ctx context.Context, mirrorTransport transport.MirrorTransport, address string) (
		transport.Stream[W],
		error,
	)
	// shouldRetry tells if the stream is reconnected, within the time budget, after it failed with s
	shouldRetry(s *status.Status) bool
	// update records a delivered item so a reconnect resumes after it
	update(item W)
}

// source produces the items of a subscription, io.EOF once it's complete
type source[T any] interface {
	next(ctx context.Context) (T, error)
	close()
}

// Query is a mirror node request whose items are T
type Query[T any] interface {
	subscribe(ctx context.Context, c *client.Client, timeout time.Duration) (source[T], error)
}

// Subscription is a single pass iterator over the items of a mirror node query. Reconnections are transparent and
// no item is delivered twice
type Subscription[T any] struct {
	source source[T]
}

// Next returns the next item, io.EOF when the stream completed. Any other error ends the subscription
func (s *Subscription[T]) Next(ctx context.Context) (T, error) {
	return s.source.next(ctx)
}

// Close ends the subscription and its stream
func (s *Subscription[T]) Close() {
	s.source.close()
}

// Subscribe starts a subscription, ctx bounds the lifetime of the subscription
func Subscribe[T any](ctx context.Context, c *client.Client, query Query[T]) (*Subscription[T], error) {
	return SubscribeWithTimeout(ctx, c, query, 0)
}

// SubscribeWithTimeout is Subscribe with timeout as the retry budget of the retryable failures, 0 uses the client
// SubscriptionTimeout
func SubscribeWithTimeout[T any](ctx context.Context, c *client.Client, query Query[T], timeout time.Duration) (
	*Subscription[T],
	error,
) {
	src, err := query.subscribe(ctx, c, timeout)
	if err != nil {
		return nil, err
	}

	return &Subscription[T]{source: src}, nil
}

// SubscribeFunc calls onItem for every item until the stream completes, an error returned by onItem ends it
func SubscribeFunc[T any](ctx context.Context, c *client.Client, query Query[T], onItem func(T) error) error {
	return subscribeFunc(ctx, c, query, 0, onItem)
}

func subscribeFunc[T any](
	ctx context.Context,
	c *client.Client,
	query Query[T],
	timeout time.Duration,
	onItem func(T) error,
) error {
	subscription, err := SubscribeWithTimeout(ctx, c, query, timeout)
	if err != nil {
		return err
	}
	defer subscription.Close()

	for {
		item, err := subscription.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err = onItem(item); err != nil {
			return err
		}
	}
}

// Execute collects every item until the stream completes
func Execute[T any](ctx context.Context, c *client.Client, query Query[T]) ([]T, error) {
	return ExecuteWithTimeout(ctx, c, query, 0)
}

// ExecuteWithTimeout is Execute with the retry budget of SubscribeWithTimeout
func ExecuteWithTimeout[T any](ctx context.Context, c *client.Client, query Query[T], timeout time.Duration) (
	[]T,
	error,
) {
	var items []T
	err := subscribeFunc(ctx, c, query, timeout, func(item T) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// stream runs the connection state machine of a request. Outages are retried forever, the failures the request
// marks retryable are retried until the time budget runs out. Both backoffs restart once a connection delivers its
// first item, a gRPC stream reports the server status on the first read rather than on connect
type stream[W any] struct {
	addresses       []string
	attempts        int
	bounded         backoff.BackOff
	cancel          context.CancelFunc
	cancelAll       context.CancelFunc
	ctx             context.Context
	mirrorTransport transport.MirrorTransport
	mu              sync.Mutex
	outage          backoff.BackOff
	received        bool
	request         request[W]
	state           state
	stream          transport.Stream[W]
}

// newStream creates the stream of r, timeout is the retry budget and falls back to the client SubscriptionTimeout
// when 0
func newStream[W any](ctx context.Context, c *client.Client, r request[W], timeout time.Duration) (*stream[W], error) {
	addresses, err := c.MirrorNetwork()
	if err != nil {
		return nil, err
	}

	settings := c.Settings()
	if timeout <= 0 {
		timeout = settings.SubscriptionTimeout
	}

	ctx, cancelAll := context.WithCancel(ctx)
	return &stream[W]{
		addresses:       addresses,
		bounded:         newBackoff(settings, timeout),
		cancelAll:       cancelAll,
		ctx:             ctx,
		mirrorTransport: c.MirrorTransport(),
		outage:          newBackoff(settings, 0),
		request:         r,
		state:           stateStart,
	}, nil
}

func newBackoff(settings client.Settings, maxElapsedTime time.Duration) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = settings.InitialBackoff
	exponential.MaxInterval = settings.MaxBackoff
	exponential.MaxElapsedTime = maxElapsedTime
	exponential.Reset()
	return exponential
}

func (s *stream[W]) next(ctx context.Context) (W, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero W
	for {
		if s.state == stateFinished {
			return zero, io.EOF
		}

		if err := s.contextErr(ctx); err != nil {
			s.finish()
			return zero, err
		}

		if s.state == stateStart {
			if err := s.connect(); err != nil {
				if err = s.handle(ctx, err); err != nil {
					return zero, err
				}
				continue
			}
		}

		item, err := s.recv(ctx)
		switch {
		case err == nil:
			if !s.received {
				s.bounded.Reset()
				s.outage.Reset()
				s.received = true
			}
			s.request.update(item)
			return item, nil
		case err == io.EOF:
			s.finish()
			return zero, io.EOF
		default:
			if err = s.handle(ctx, err); err != nil {
				return zero, err
			}
		}
	}
}

// close ends the stream, a read blocked in another goroutine returns the cancellation
func (s *stream[W]) close() {
	s.cancelAll()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish()
}

func (s *stream[W]) connect() error {
	streamCtx, cancel := context.WithCancel(s.ctx)
	address := s.addresses[s.attempts%len(s.addresses)]
	s.attempts++

	stream, err := s.request.connect(streamCtx, s.mirrorTransport, address)
	if err != nil {
		cancel()
		return err
	}

	log.Debugf("Connected %s to mirror node %s", s.request.name(), address)
	s.cancel = cancel
	s.received = false
	s.stream = stream
	s.state = stateRunning
	return nil
}

// recv reads the next item, cancelling ctx aborts the read
func (s *stream[W]) recv(ctx context.Context) (W, error) {
	stop := context.AfterFunc(ctx, s.cancel)
	defer stop()

	return s.stream.Recv()
}

// handle decides what follows a failed connection or read. It returns nil when the stream is to be reconnected
func (s *stream[W]) handle(ctx context.Context, err error) error {
	s.closeStream()
	if ctxErr := s.contextErr(ctx); ctxErr != nil {
		s.finish()
		return ctxErr
	}

	grpcStatus := status.Convert(err)
	var wait time.Duration
	switch {
	case isMirrorOutage(grpcStatus):
		wait = s.outage.NextBackOff()
		log.Warnf("Reconnecting %s in %s after mirror node outage: %s", s.request.name(), wait, grpcStatus.Message())
		reconnectCounter.WithLabelValues(s.request.name(), "outage").Inc()
	case s.request.shouldRetry(grpcStatus):
		wait = s.bounded.NextBackOff()
		if wait == backoff.Stop {
			s.finish()
			return &hErrors.TimedOutError{Cause: grpcStatusError(grpcStatus)}
		}
		log.Infof("Reconnecting %s in %s after %s", s.request.name(), wait, grpcStatus.Code())
		reconnectCounter.WithLabelValues(s.request.name(), "retry").Inc()
	default:
		s.finish()
		return grpcStatusError(grpcStatus)
	}

	if err = sleep(ctx, s.ctx, wait); err != nil {
		s.finish()
		return err
	}

	s.state = stateStart
	return nil
}

func (s *stream[W]) closeStream() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.stream = nil
}

// finish ends the stream, later reads return io.EOF without any network call
func (s *stream[W]) finish() {
	s.closeStream()
	s.state = stateFinished
}

func (s *stream[W]) contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.ctx.Err()
}

func isMirrorOutage(s *status.Status) bool {
	switch s.Code() {
	case codes.Unavailable, codes.ResourceExhausted, codes.Aborted:
		return true
	case codes.Unknown:
		return s.Message() == connectionResetMessage
	default:
		return false
	}
}

func grpcStatusError(s *status.Status) error {
	return &hErrors.GrpcStatusError{Code: s.Code(), Message: s.Message()}
}

func sleep(ctx, subscriptionCtx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-subscriptionCtx.Done():
		return subscriptionCtx.Err()
	case <-timer.C:
		return nil
	}
}
