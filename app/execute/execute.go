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
	"math/rand/v2"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/status"
)

var errNoHealthyNodes = errors.New("no healthy nodes")

// Execute sends the request to the selected nodes until one gives a final answer. Every selected node is tried once
// per pass, passes are separated by the client backoff. The timeout bounds the whole execution, zero means the
// client request timeout. When attempts or time run out the error is a TimedOutError with the last failure
func Execute[Req, Resp, T any](
	ctx context.Context,
	c *client.Client,
	executable Executable[Req, Resp, T],
	timeout time.Duration,
) (T, error) {
	var zero T
	start := time.Now()
	settings := c.Settings()

	if settings.AutoValidateChecksums {
		if err := executable.ValidateChecksums(c.LedgerId()); err != nil {
			return zero, err
		}
	}

	if timeout <= 0 {
		timeout = settings.RequestTimeout
	}

	operator := c.Operator()
	explicitTransactionId := executable.TransactionId()
	var transactionId *types.TransactionId
	if executable.RequiresTransactionId() {
		switch {
		case explicitTransactionId != nil:
			id := *explicitTransactionId
			transactionId = &id
		case operator != nil:
			id := types.GenerateTransactionId(operator.AccountId)
			transactionId = &id
		default:
			return zero, hErrors.ErrNoPayerAccountOrTransactionId
		}
	}

	regenerate := settings.RegenerateTransactionId
	if override := executable.RegenerateTransactionId(); override != nil {
		regenerate = *override
	}

	e := &execution[Req, Resp, T]{
		canRegenerate: regenerate && explicitTransactionId == nil && operator != nil && transactionId != nil,
		client:        c,
		executable:    executable,
		operator:      operator,
		settings:      settings,
		transactionId: transactionId,
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := backoff.RetryNotifyWithData(func() (T, error) {
		return e.pass(execCtx)
	}, newBackoff(execCtx, settings, timeout), e.notify)

	switch {
	case err == nil:
		e.observe(start, "success")
		return result, nil
	case ctx.Err() != nil:
		e.observe(start, "canceled")
		return zero, ctx.Err()
	case e.permanent && execCtx.Err() == nil:
		e.observe(start, "error")
		log.Errorf("Failed to execute %s: %s", executable.Name(), err)
		return zero, err
	default:
		cause := e.lastErr
		if cause == nil {
			cause = err
		}

		e.observe(start, "timeout")
		log.Errorf("Timed out executing %s after %s: %v", executable.Name(), time.Since(start), cause)
		return zero, &hErrors.TimedOutError{Cause: cause}
	}
}

// execution is the state of one Execute call. It's confined to the calling goroutine
type execution[Req, Resp, T any] struct {
	canRegenerate bool
	client        *client.Client
	executable    Executable[Req, Resp, T]
	lastErr       error
	operator      *client.Operator
	passes        int
	permanent     bool
	settings      client.Settings
	transactionId *types.TransactionId
}

func (e *execution[Req, Resp, T]) pass(ctx context.Context) (T, error) {
	var zero T
	e.passes++

	explicit := e.executable.NodeAccountIds()
	nodes, err := e.client.Network().SelectNodes(explicit, time.Now())
	if err != nil {
		return zero, e.fail(err)
	}

	if len(explicit) == 0 {
		nodes = e.pingStale(ctx, nodes)
	}

	if len(nodes) == 0 {
		log.Debugf("No healthy node for %s in pass %d", e.executable.Name(), e.passes)
		return zero, errNoHealthyNodes
	}

	for _, nodeAccountId := range nodes {
		result, a, err := e.attempt(ctx, nodeAccountId)
		attemptCounter.WithLabelValues(e.executable.Name(), a.String()).Inc()

		switch a {
		case actionRespond:
			return result, nil
		case actionNextNode, actionNextNodeUnhealthy, actionRegenerate:
			e.lastErr = err
		case actionBackoff:
			e.lastErr = err
			return zero, err
		default:
			return zero, e.fail(err)
		}
	}

	return zero, e.lastErr
}

// attempt sends the request to one node and classifies the outcome
func (e *execution[Req, Resp, T]) attempt(ctx context.Context, nodeAccountId types.AccountId) (T, action, error) {
	var zero T
	name := e.executable.Name()

	addresses := e.client.Network().Addresses(nodeAccountId)
	if len(addresses) == 0 {
		return zero, actionFail, &hErrors.NodeAccountUnknownError{NodeAccountId: nodeAccountId}
	}
	address := addresses[rand.IntN(len(addresses))]

	logger := log.WithFields(log.Fields{"request": name, "node": nodeAccountId.String(), "pass": e.passes})
	request, err := e.executable.MakeRequest(e.transactionId, nodeAccountId)
	if err != nil {
		return zero, actionFail, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, e.settings.GrpcDeadline)
	response, err := e.executable.Execute(attemptCtx, e.client.Transport(), address, request)
	cancel()

	if err != nil {
		a := classifyTransportError(ctx, err, e.executable.IsPaid())
		switch a {
		case actionNextNodeUnhealthy:
			e.markUnhealthy(nodeAccountId)
		case actionFailUnhealthy:
			e.markUnhealthy(nodeAccountId)
			err = toGrpcStatusError(err)
		case actionFailCanceled:
			err = ctx.Err()
		case actionFail:
			err = toGrpcStatusError(err)
		}

		logger.Warnf("Failed to send request to %s: %s", address, err)
		return zero, a, err
	}

	e.client.Network().MarkHealthy(nodeAccountId, time.Now())

	precheckStatus := e.executable.PrecheckStatus(response)
	if !types.IsStatusRecognized(precheckStatus) {
		return zero, actionFail, &hErrors.ResponseStatusUnrecognizedError{Status: int32(precheckStatus)}
	}

	a := classifyPrecheck(precheckStatus, e.canRegenerate, e.executable.ShouldRetryPrecheck)
	switch a {
	case actionRespond:
		if e.executable.ShouldRetry(response) {
			logger.Debug("Received a response that isn't final yet")
			return zero, actionBackoff, errors.Errorf("%s response from node %s isn't final", name, nodeAccountId)
		}

		result, err := e.executable.MakeResponse(response, request, nodeAccountId, e.transactionId)
		if err != nil {
			return zero, actionFail, err
		}

		logger.Debug("Executed request")
		return result, actionRespond, nil
	case actionRegenerate:
		err = e.executable.MakeErrorPrecheck(precheckStatus, e.transactionId, response)
		regenerated := types.GenerateTransactionId(e.operator.AccountId)
		logger.Warnf("Regenerated expired transaction id %s as %s", e.transactionId, regenerated)
		e.transactionId = &regenerated
		return zero, a, err
	case actionNextNode, actionBackoff:
		err = e.executable.MakeErrorPrecheck(precheckStatus, e.transactionId, response)
		logger.Warnf("Received precheck status %s", precheckStatus)
		return zero, a, err
	default:
		return zero, actionFail, e.executable.MakeErrorPrecheck(precheckStatus, e.transactionId, response)
	}
}

// pingStale drops the nodes that weren't used recently and fail a ping
func (e *execution[Req, Resp, T]) pingStale(ctx context.Context, nodes []types.AccountId) []types.AccountId {
	network := e.client.Network()
	pinged := make([]types.AccountId, 0, len(nodes))
	for _, nodeAccountId := range nodes {
		if !network.RecentlyPinged(nodeAccountId, time.Now()) {
			if err := pingOnce(ctx, e.client, e.settings, nodeAccountId); err != nil {
				log.Warnf("Skipped node %s after failed ping: %s", nodeAccountId, err)
				continue
			}
		}

		pinged = append(pinged, nodeAccountId)
	}

	return pinged
}

func (e *execution[Req, Resp, T]) fail(err error) error {
	e.permanent = true
	return backoff.Permanent(err)
}

func (e *execution[Req, Resp, T]) markUnhealthy(nodeAccountId types.AccountId) {
	e.client.Network().MarkUnhealthy(nodeAccountId, time.Now())
	unhealthyCounter.WithLabelValues(nodeAccountId.String()).Inc()
}

func (e *execution[Req, Resp, T]) notify(err error, next time.Duration) {
	if errors.Is(err, errNoHealthyNodes) {
		err = e.lastErr
	}

	backoffHistogram.WithLabelValues(e.executable.Name()).Observe(next.Seconds())
	log.Infof("Retrying %s in %s after pass %d: %v", e.executable.Name(), next, e.passes, err)
}

func (e *execution[Req, Resp, T]) observe(start time.Time, outcome string) {
	requestDurationHistogram.WithLabelValues(e.executable.Name(), outcome).Observe(time.Since(start).Seconds())
}

func toGrpcStatusError(err error) error {
	if s, ok := status.FromError(err); ok {
		return &hErrors.GrpcStatusError{Code: s.Code(), Message: s.Message()}
	}
	return err
}
