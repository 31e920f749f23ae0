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

package query

import (
	"context"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

// TransactionReceiptQuery gets the receipt of a transaction. It's free and waits until the network reached consensus
// on the transaction
type TransactionReceiptQuery struct {
	Query
	includeChildren   bool
	includeDuplicates bool
	queriedId         *types.TransactionId
	validateStatus    bool
}

func NewTransactionReceiptQuery() *TransactionReceiptQuery {
	return &TransactionReceiptQuery{}
}

func (q *TransactionReceiptQuery) TransactionId() *types.TransactionId {
	return q.queriedId
}

func (q *TransactionReceiptQuery) SetTransactionId(transactionId types.TransactionId) {
	q.queriedId = &transactionId
}

// SetIncludeChildren asks for the receipts of the child transactions, listed in Children
func (q *TransactionReceiptQuery) SetIncludeChildren(includeChildren bool) {
	q.includeChildren = includeChildren
}

// SetIncludeDuplicates asks for the receipts of duplicate submissions, listed in Duplicates
func (q *TransactionReceiptQuery) SetIncludeDuplicates(includeDuplicates bool) {
	q.includeDuplicates = includeDuplicates
}

// SetValidateStatus makes Execute fail with ReceiptStatusError when the receipt status isn't SUCCESS
func (q *TransactionReceiptQuery) SetValidateStatus(validateStatus bool) {
	q.validateStatus = validateStatus
}

func (q *TransactionReceiptQuery) Execute(ctx context.Context, c *client.Client) (types.TransactionReceipt, error) {
	return q.ExecuteWithTimeout(ctx, c, 0)
}

func (q *TransactionReceiptQuery) ExecuteWithTimeout(ctx context.Context, c *client.Client, timeout time.Duration) (
	types.TransactionReceipt,
	error,
) {
	if q.queriedId == nil {
		return types.TransactionReceipt{}, hErrors.ErrMissingTransactionId
	}

	receipt, err := run[types.TransactionReceipt](ctx, c, &q.Query, q, timeout)
	if err != nil {
		return types.TransactionReceipt{}, err
	}

	if q.validateStatus && receipt.Status != types.StatusSuccess {
		return types.TransactionReceipt{}, &hErrors.ReceiptStatusError{Status: receipt.Status, TransactionId: q.queriedId}
	}

	return receipt, nil
}

func (q *TransactionReceiptQuery) GetCost(ctx context.Context, c *client.Client) (types.HbarAmount, error) {
	return getCost[types.TransactionReceipt](ctx, c, &q.Query, q, 0)
}

func (q *TransactionReceiptQuery) name() string {
	return "TransactionReceiptQuery"
}

func (q *TransactionReceiptQuery) method() transport.QueryMethod {
	return transport.TransactionGetReceipt
}

func (q *TransactionReceiptQuery) isPaymentRequired() bool {
	return false
}

func (q *TransactionReceiptQuery) toQuery(header *services.QueryHeader) *services.Query {
	return &services.Query{
		Query: &services.Query_TransactionGetReceipt{
			TransactionGetReceipt: &services.TransactionGetReceiptQuery{
				Header:               header,
				TransactionID:        q.queriedId.ToProto(),
				IncludeDuplicates:    q.includeDuplicates,
				IncludeChildReceipts: q.includeChildren,
			},
		},
	}
}

func (q *TransactionReceiptQuery) shouldRetryPrecheck(status types.Status) bool {
	return status == types.StatusReceiptNotFound || status == types.StatusRecordNotFound
}

// shouldRetry is true until the network reached consensus on the transaction
func (q *TransactionReceiptQuery) shouldRetry(response *services.Response) bool {
	receipt := response.GetTransactionGetReceipt().GetReceipt()
	return receipt != nil && receipt.GetStatus() == types.StatusUnknown
}

func (q *TransactionReceiptQuery) makeResponse(response *services.Response) (types.TransactionReceipt, error) {
	receipt, err := types.TransactionReceiptFromResponse(response.GetTransactionGetReceipt(), q.queriedId)
	if err != nil {
		return types.TransactionReceipt{}, hErrors.NewFromProtobufError(err)
	}

	return receipt, nil
}

func (q *TransactionReceiptQuery) transactionId() *types.TransactionId {
	return q.queriedId
}

func (q *TransactionReceiptQuery) validateChecksums(ledgerId types.LedgerId) error {
	return q.queriedId.ValidateChecksum(ledgerId)
}
