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
	"fmt"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/codec"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

type chunkPosition struct {
	index int
	total int
}

// chunkExecutable submits one body of a frozen transaction, the whole transaction when it isn't chunked
type chunkExecutable struct {
	chunk                *chunkPosition
	initialTransactionId *types.TransactionId
	transaction          *Transaction
	transactionId        *types.TransactionId
}

func (e *chunkExecutable) Name() string {
	if e.chunk == nil || e.chunk.total == 1 {
		return e.transaction.frozenData.name()
	}

	return fmt.Sprintf("%s[%d/%d]", e.transaction.frozenData.name(), e.chunk.index+1, e.chunk.total)
}

func (e *chunkExecutable) NodeAccountIds() []types.AccountId {
	return e.transaction.nodeAccountIds
}

func (e *chunkExecutable) TransactionId() *types.TransactionId {
	return e.transactionId
}

func (e *chunkExecutable) RequiresTransactionId() bool {
	return true
}

// RegenerateTransactionId is false once the body was signed manually or the id is derived from a previous chunk
func (e *chunkExecutable) RegenerateTransactionId() *bool {
	if len(e.transaction.signatures) != 0 || e.initialTransactionId != nil {
		regenerate := false
		return &regenerate
	}

	return e.transaction.regenerateTransactionId
}

func (e *chunkExecutable) IsPaid() bool {
	return true
}

func (e *chunkExecutable) ValidateChecksums(types.LedgerId) error {
	// validated at freeze
	return nil
}

func (e *chunkExecutable) MakeRequest(transactionId *types.TransactionId, nodeAccountId types.AccountId) (
	*codec.SignedTransaction,
	error,
) {
	if transactionId == nil {
		return nil, hErrors.ErrNoPayerAccountOrTransactionId
	}

	t := e.transaction
	var current *chunk
	if chunked, ok := t.frozenData.(chunkedData); ok {
		position := e.chunk
		if position == nil {
			position = &chunkPosition{total: chunked.chunkData().usedChunks()}
		}

		initialTransactionId := *transactionId
		if e.initialTransactionId != nil {
			initialTransactionId = *e.initialTransactionId
		}

		var err error
		current, err = newChunk(chunked.chunkData(), position.index, position.total, initialTransactionId,
			*transactionId, nodeAccountId)
		if err != nil {
			return nil, err
		}
	}

	body, err := t.body(t.frozenData, *transactionId, nodeAccountId, current)
	if err != nil {
		return nil, err
	}

	return t.sign(body)
}

func (e *chunkExecutable) Execute(
	ctx context.Context,
	nodeTransport transport.Transport,
	address string,
	request *codec.SignedTransaction,
) (*services.TransactionResponse, error) {
	return nodeTransport.SubmitTransaction(ctx, address, e.transaction.frozenData.method(), request.Transaction)
}

func (e *chunkExecutable) PrecheckStatus(response *services.TransactionResponse) types.Status {
	status, _ := codec.TransactionPrecheck(response)
	return status
}

func (e *chunkExecutable) ShouldRetryPrecheck(types.Status) bool {
	return false
}

func (e *chunkExecutable) ShouldRetry(*services.TransactionResponse) bool {
	return false
}

func (e *chunkExecutable) MakeResponse(
	_ *services.TransactionResponse,
	request *codec.SignedTransaction,
	nodeAccountId types.AccountId,
	transactionId *types.TransactionId,
) (*Response, error) {
	return &Response{
		Hash:           request.Hash,
		NodeAccountId:  nodeAccountId,
		TransactionId:  *transactionId,
		ValidateStatus: true,
	}, nil
}

func (e *chunkExecutable) MakeErrorPrecheck(
	status types.Status,
	transactionId *types.TransactionId,
	_ *services.TransactionResponse,
) error {
	if transactionId == nil {
		return &hErrors.PrecheckError{Kind: hErrors.PrecheckTransactionNoId, Status: status}
	}

	return &hErrors.PrecheckError{Kind: hErrors.PrecheckTransaction, Status: status, TransactionId: transactionId}
}
