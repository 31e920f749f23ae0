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
	"bytes"
	"context"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/execute"
	log "github.com/sirupsen/logrus"
)

// chunkData is the payload of a chunked kind with its chunk limits, zero limits take the client defaults at freeze
type chunkData struct {
	chunkSize int
	maxChunks int
	payload   []byte
}

func (c *chunkData) setChunkSize(chunkSize int) error {
	if chunkSize <= 0 {
		return hErrors.ErrChunkSizeZero
	}

	c.chunkSize = chunkSize
	return nil
}

func (c *chunkData) applyDefaults(chunkSize, maxChunks int) {
	if c.chunkSize == 0 {
		c.chunkSize = chunkSize
	}

	if c.maxChunks == 0 {
		c.maxChunks = maxChunks
	}
}

// usedChunks is the number of chunks of the payload, an empty payload still takes one chunk
func (c *chunkData) usedChunks() int {
	return usedChunks(len(c.payload), c.chunkSize)
}

// chunk returns the bytes of the chunk at index, [index*chunkSize, min((index+1)*chunkSize, len))
func (c *chunkData) chunk(index int) []byte {
	start := index * c.chunkSize
	if start >= len(c.payload) {
		return nil
	}

	return c.payload[start:min(start+c.chunkSize, len(c.payload))]
}

func (c *chunkData) validate() error {
	if c.chunkSize <= 0 {
		return hErrors.ErrChunkSizeZero
	}

	if used := c.usedChunks(); used > c.maxChunks {
		return &hErrors.ChunkCountExceededError{UsedChunks: used, MaxChunks: c.maxChunks}
	}

	return nil
}

func (c chunkData) clone() chunkData {
	c.payload = bytes.Clone(c.payload)
	return c
}

func usedChunks(payloadSize, chunkSize int) int {
	if payloadSize == 0 || chunkSize <= 0 {
		return 1
	}

	return (payloadSize + chunkSize - 1) / chunkSize
}

// chunk is what one submission carries of a chunked kind
type chunk struct {
	info    types.ChunkInfo
	payload []byte
}

func newChunk(
	data *chunkData,
	index, total int,
	initialTransactionId, transactionId types.TransactionId,
	nodeAccountId types.AccountId,
) (*chunk, error) {
	info, err := types.NewChunkInfo(index, total, initialTransactionId, transactionId, &nodeAccountId)
	if err != nil {
		return nil, err
	}

	return &chunk{info: info, payload: data.chunk(index)}, nil
}

// firstChunk is the first chunk of a frozen chunked transaction, nil when the kind isn't chunked
func (t *Transaction) firstChunk(transactionId types.TransactionId, nodeAccountId types.AccountId) (*chunk, error) {
	chunked, ok := t.frozenData.(chunkedData)
	if !ok {
		return nil, nil
	}

	data := chunked.chunkData()
	return newChunk(data, 0, data.usedChunks(), transactionId, transactionId, nodeAccountId)
}

// executeChunks submits the chunks in order, each one resolved before the next is sent. The first chunk has the
// transaction id of the transaction, or one generated for the operator, and is the initial transaction id of every
// chunk. Later chunks get a fresh id of the same payer with a later valid start
func executeChunks(
	ctx context.Context,
	c *client.Client,
	t *Transaction,
	chunked chunkedData,
	timeoutPerChunk time.Duration,
) ([]*Response, error) {
	data := chunked.chunkData()
	if err := data.validate(); err != nil {
		return nil, err
	}

	total := data.usedChunks()
	responses := make([]*Response, 0, total)
	var initialTransactionId *types.TransactionId
	transactionId := t.transactionId
	for index := 0; index < total; index++ {
		response, err := execute.ExecuteTransaction[*Response](ctx, c, &chunkExecutable{
			chunk:                &chunkPosition{index: index, total: total},
			initialTransactionId: initialTransactionId,
			transaction:          t,
			transactionId:        transactionId,
		}, timeoutPerChunk)
		if err != nil {
			return nil, err
		}

		if chunked.waitForReceipt() {
			if _, err = response.GetReceiptWithTimeout(ctx, c, timeoutPerChunk); err != nil {
				return nil, err
			}
		}

		log.Debugf("Submitted chunk %d of %d of %s as %s", index+1, total, chunked.name(), response.TransactionId)
		responses = append(responses, response)

		if initialTransactionId == nil {
			initial := response.TransactionId
			initialTransactionId = &initial
		}

		next := nextChunkTransactionId(response.TransactionId)
		transactionId = &next
	}

	return responses, nil
}

// nextChunkTransactionId derives the id of the chunk after the one with the id previous: a freshly generated id of
// the payer, moved past the previous valid start if needed
func nextChunkTransactionId(previous types.TransactionId) types.TransactionId {
	next := types.GenerateTransactionId(previous.AccountId)
	next.Scheduled = previous.Scheduled
	next.Nonce = previous.Nonce
	if !next.ValidStart.After(previous.ValidStart) {
		return previous.Next()
	}

	return next
}
