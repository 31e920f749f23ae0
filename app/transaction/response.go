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

package transaction

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/query"
)

// Response is the acknowledgement of a node that accepted a transaction, it doesn't tell the transaction outcome
type Response struct {
	Hash           []byte
	NodeAccountId  types.AccountId
	TransactionId  types.TransactionId
	ValidateStatus bool
}

func (r *Response) HashString() string {
	return hex.EncodeToString(r.Hash)
}

// ReceiptQuery is the query for the receipt of the transaction, sent to the node that accepted it
func (r *Response) ReceiptQuery() *query.TransactionReceiptQuery {
	receiptQuery := query.NewTransactionReceiptQuery()
	receiptQuery.SetTransactionId(r.TransactionId)
	receiptQuery.SetNodeAccountIds([]types.AccountId{r.NodeAccountId})
	receiptQuery.SetValidateStatus(r.ValidateStatus)
	return receiptQuery
}

// RecordQuery is the query for the record of the transaction, sent to the node that accepted it
func (r *Response) RecordQuery() *query.TransactionRecordQuery {
	recordQuery := query.NewTransactionRecordQuery()
	recordQuery.SetTransactionId(r.TransactionId)
	recordQuery.SetNodeAccountIds([]types.AccountId{r.NodeAccountId})
	recordQuery.SetValidateStatus(r.ValidateStatus)
	return recordQuery
}

func (r *Response) GetReceipt(ctx context.Context, c *client.Client) (types.TransactionReceipt, error) {
	return r.GetReceiptWithTimeout(ctx, c, 0)
}

// GetReceiptWithTimeout waits for the receipt, it fails with ReceiptStatusError when the transaction didn't succeed and
// ValidateStatus is set
func (r *Response) GetReceiptWithTimeout(ctx context.Context, c *client.Client, timeout time.Duration) (
	types.TransactionReceipt,
	error,
) {
	return r.ReceiptQuery().ExecuteWithTimeout(ctx, c, timeout)
}

func (r *Response) GetRecord(ctx context.Context, c *client.Client) (types.TransactionRecord, error) {
	return r.GetRecordWithTimeout(ctx, c, 0)
}

// GetRecordWithTimeout waits for the receipt then gets the record, paid by the client operator
func (r *Response) GetRecordWithTimeout(ctx context.Context, c *client.Client, timeout time.Duration) (
	types.TransactionRecord,
	error,
) {
	if _, err := r.GetReceiptWithTimeout(ctx, c, timeout); err != nil {
		return types.TransactionRecord{}, err
	}

	return r.RecordQuery().ExecuteWithTimeout(ctx, c, timeout)
}
