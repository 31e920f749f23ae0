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

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/codec"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

// Executable is a request the engine can send to consensus nodes. Req is the wire request built for one node, Resp
// the wire response and T the decoded result
type Executable[Req, Resp, T any] interface {
	// Name labels the request in logs and metrics
	Name() string
	// NodeAccountIds are the explicit nodes of the request, empty to let the engine pick
	NodeAccountIds() []types.AccountId
	// TransactionId is the explicit transaction id of the request, nil when unset
	TransactionId() *types.TransactionId
	RequiresTransactionId() bool
	// RegenerateTransactionId overrides the client default when not nil
	RegenerateTransactionId() *bool
	// IsPaid tells if the request costs the payer, the outcome of a failed paid request is unknown
	IsPaid() bool
	ValidateChecksums(ledgerId types.LedgerId) error

	MakeRequest(transactionId *types.TransactionId, nodeAccountId types.AccountId) (Req, error)
	Execute(ctx context.Context, nodeTransport transport.Transport, address string, request Req) (Resp, error)
	PrecheckStatus(response Resp) types.Status
	ShouldRetryPrecheck(status types.Status) bool
	ShouldRetry(response Resp) bool
	MakeResponse(response Resp, request Req, nodeAccountId types.AccountId, transactionId *types.TransactionId) (
		T,
		error,
	)
	MakeErrorPrecheck(status types.Status, transactionId *types.TransactionId, response Resp) error
}

// TransactionExecutable is an Executable submitting a signed transaction
type TransactionExecutable[T any] interface {
	Executable[*codec.SignedTransaction, *services.TransactionResponse, T]
}

// QueryExecutable is an Executable sending a query
type QueryExecutable[T any] interface {
	Executable[*services.Query, *services.Response, T]
}

// ExecuteTransaction runs a transaction executable, see Execute
func ExecuteTransaction[T any](
	ctx context.Context,
	c *client.Client,
	executable TransactionExecutable[T],
	timeout time.Duration,
) (T, error) {
	return Execute[*codec.SignedTransaction, *services.TransactionResponse, T](ctx, c, executable, timeout)
}

// ExecuteQuery runs a query executable, see Execute
func ExecuteQuery[T any](
	ctx context.Context,
	c *client.Client,
	executable QueryExecutable[T],
	timeout time.Duration,
) (T, error) {
	return Execute[*services.Query, *services.Response, T](ctx, c, executable, timeout)
}
