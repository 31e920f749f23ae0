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

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// action is what the engine does after one attempt on one node
type action int

const (
	// actionRespond decodes the response and finishes
	actionRespond action = iota
	// actionNextNode tries the next node of the pass right away
	actionNextNode
	// actionNextNodeUnhealthy marks the node unhealthy then tries the next node
	actionNextNodeUnhealthy
	// actionRegenerate regenerates the expired transaction id then tries the next node
	actionRegenerate
	// actionBackoff ends the pass, the whole request is retried after the backoff
	actionBackoff
	// actionFail ends the request with the error
	actionFail
	// actionFailUnhealthy marks the node unhealthy and ends the request
	actionFailUnhealthy
	// actionFailCanceled ends the request with the context error
	actionFailCanceled
)

var actionNames = map[action]string{
	actionRespond:           "respond",
	actionNextNode:          "next_node",
	actionNextNodeUnhealthy: "next_node_unhealthy",
	actionRegenerate:        "regenerate",
	actionBackoff:           "backoff",
	actionFail:              "fail",
	actionFailUnhealthy:     "fail_unhealthy",
	actionFailCanceled:      "canceled",
}

func (a action) String() string {
	return actionNames[a]
}

// precheckActions is the action table for precheck codes with a fixed meaning. Any other code is retried only when
// the request asks for it
var precheckActions = map[types.Status]action{
	types.StatusOk:                actionRespond,
	types.StatusBusy:              actionNextNode,
	types.StatusPlatformNotActive: actionNextNode,
}

// classifyPrecheck picks the action for a precheck code. shouldRetry is the request specific widening of the
// retryable codes
func classifyPrecheck(status types.Status, canRegenerate bool, shouldRetry func(types.Status) bool) action {
	if a, ok := precheckActions[status]; ok {
		return a
	}

	if status == types.StatusTransactionExpired && canRegenerate {
		return actionRegenerate
	}

	if shouldRetry(status) {
		return actionBackoff
	}

	return actionFail
}

// classifyTransportError picks the action for a failed node call. ctx is the caller context, a cancellation of the
// attempt itself isn't a failure of the caller
func classifyTransportError(ctx context.Context, err error, paid bool) action {
	if ctx.Err() != nil {
		return actionFailCanceled
	}

	s, ok := status.FromError(err)
	if !ok {
		return actionFail
	}

	switch s.Code() {
	case codes.Unavailable, codes.ResourceExhausted:
		return actionNextNodeUnhealthy
	case codes.Canceled:
		// canceled by a proxy in between
		return actionNextNodeUnhealthy
	case codes.DeadlineExceeded:
		return actionNextNode
	case codes.Internal:
		if !transport.IsHtmlResponse(err) {
			return actionFail
		}

		if paid {
			return actionFailUnhealthy
		}
		return actionNextNodeUnhealthy
	default:
		return actionFail
	}
}
