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
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/codec"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

// TransactionRecordQuery gets the record of a transaction. It's paid by the operator
type TransactionRecordQuery struct {
	Query
	includeChildren   bool
	includeDuplicates bool
	queriedId         *types.TransactionId
	validateStatus    bool
}

func NewTransactionRecordQuery() *TransactionRecordQuery {
	return &TransactionRecordQuery{}
}

func (q *TransactionRecordQuery) TransactionId() *types.TransactionId {
	return q.queriedId
}

func (q *TransactionRecordQuery) SetTransactionId(transactionId types.TransactionId) {
	q.queriedId = &transactionId
}

func (q *TransactionRecordQuery) SetIncludeChildren(includeChildren bool) {
	q.includeChildren = includeChildren
}

func (q *TransactionRecordQuery) SetIncludeDuplicates(includeDuplicates bool) {
	q.includeDuplicates = includeDuplicates
}

// SetValidateStatus makes Execute fail with RecordStatusError when the receipt status isn't SUCCESS
func (q *TransactionRecordQuery) SetValidateStatus(validateStatus bool) {
	q.validateStatus = validateStatus
}

func (q *TransactionRecordQuery) Execute(ctx context.Context, c *client.Client) (types.TransactionRecord, error) {
	return q.ExecuteWithTimeout(ctx, c, 0)
}

func (q *TransactionRecordQuery) ExecuteWithTimeout(ctx context.Context, c *client.Client, timeout time.Duration) (
	types.TransactionRecord,
	error,
) {
	if q.queriedId == nil {
		return types.TransactionRecord{}, hErrors.ErrMissingTransactionId
	}

	record, err := run[types.TransactionRecord](ctx, c, &q.Query, q, timeout)
	if err != nil {
		return types.TransactionRecord{}, err
	}

	if q.validateStatus && record.Receipt.Status != types.StatusSuccess {
		return types.TransactionRecord{}, &hErrors.RecordStatusError{
			Status:        record.Receipt.Status,
			TransactionId: *q.queriedId,
		}
	}

	return record, nil
}

func (q *TransactionRecordQuery) GetCost(ctx context.Context, c *client.Client) (types.HbarAmount, error) {
	return getCost[types.TransactionRecord](ctx, c, &q.Query, q, 0)
}

func (q *TransactionRecordQuery) name() string {
	return "TransactionRecordQuery"
}

func (q *TransactionRecordQuery) method() transport.QueryMethod {
	return transport.TransactionGetRecord
}

func (q *TransactionRecordQuery) isPaymentRequired() bool {
	return true
}

func (q *TransactionRecordQuery) toQuery(header *services.QueryHeader) *services.Query {
	return &services.Query{
		Query: &services.Query_TransactionGetRecord{
			TransactionGetRecord: &services.TransactionGetRecordQuery{
				Header:              header,
				TransactionID:       q.queriedId.ToProto(),
				IncludeDuplicates:   q.includeDuplicates,
				IncludeChildRecords: q.includeChildren,
			},
		},
	}
}

func (q *TransactionRecordQuery) shouldRetryPrecheck(status types.Status) bool {
	return status == types.StatusReceiptNotFound || status == types.StatusRecordNotFound
}

// shouldRetry is true until the record carries a final receipt
func (q *TransactionRecordQuery) shouldRetry(response *services.Response) bool {
	if status := codec.QueryPrecheck(response); status == types.StatusRecordNotFound {
		return true
	}

	receipt := response.GetTransactionGetRecord().GetTransactionRecord().GetReceipt()
	if receipt == nil {
		return false
	}

	switch receipt.GetStatus() {
	case types.StatusUnknown, types.StatusBusy, types.StatusReceiptNotFound:
		return true
	default:
		return false
	}
}

func (q *TransactionRecordQuery) makeResponse(response *services.Response) (types.TransactionRecord, error) {
	record, err := types.TransactionRecordFromResponse(response.GetTransactionGetRecord())
	if err != nil {
		return types.TransactionRecord{}, hErrors.NewFromProtobufError(err)
	}

	return record, nil
}

func (q *TransactionRecordQuery) transactionId() *types.TransactionId {
	return q.queriedId
}

func (q *TransactionRecordQuery) validateChecksums(ledgerId types.LedgerId) error {
	return q.queriedId.ValidateChecksum(ledgerId)
}
