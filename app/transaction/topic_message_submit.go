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
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

type topicMessageSubmitData struct {
	chunks  chunkData
	topicId types.EntityId
}

// TopicMessageSubmitTransaction submits a message to a topic. A message larger than the chunk size is split in
// chunks, each chunk is submitted once the previous one reached consensus
type TopicMessageSubmitTransaction struct {
	Transaction
	data *topicMessageSubmitData
}

func NewTopicMessageSubmitTransaction() *TopicMessageSubmitTransaction {
	t := &TopicMessageSubmitTransaction{data: &topicMessageSubmitData{}}
	t.Transaction = newTransaction(t.data)
	return t
}

func (t *TopicMessageSubmitTransaction) TopicId() types.EntityId {
	return t.data.topicId
}

func (t *TopicMessageSubmitTransaction) Message() []byte {
	return t.data.chunks.payload
}

func (t *TopicMessageSubmitTransaction) SetTopicId(topicId types.EntityId) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.topicId = topicId
	return nil
}

func (t *TopicMessageSubmitTransaction) SetMessage(message []byte) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.chunks.payload = append([]byte(nil), message...)
	return nil
}

func (t *TopicMessageSubmitTransaction) SetChunkSize(chunkSize int) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	return t.data.chunks.setChunkSize(chunkSize)
}

func (t *TopicMessageSubmitTransaction) SetMaxChunks(maxChunks int) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.chunks.maxChunks = maxChunks
	return nil
}

func (d *topicMessageSubmitData) name() string {
	return "TopicMessageSubmitTransaction"
}

func (d *topicMessageSubmitData) method() transport.TransactionMethod {
	return transport.ConsensusSubmitMessage
}

func (d *topicMessageSubmitData) defaultMaxTransactionFee() types.HbarAmount {
	return types.NewHbar(2)
}

func (d *topicMessageSubmitData) fillBody(body *services.TransactionBody, chunk *chunk) error {
	data := &services.ConsensusSubmitMessageTransactionBody{TopicID: d.topicId.ToTopicID()}
	if chunk != nil {
		data.Message = chunk.payload
		// a message in a single chunk has no chunk info
		if !chunk.info.IsSingle() {
			data.ChunkInfo = chunk.info.ToProto()
		}
	}

	body.Data = &services.TransactionBody_ConsensusSubmitMessage{ConsensusSubmitMessage: data}
	return nil
}

func (d *topicMessageSubmitData) validateChecksums(ledgerId types.LedgerId) error {
	return d.topicId.ValidateChecksum(ledgerId)
}

func (d *topicMessageSubmitData) clone() Data {
	return &topicMessageSubmitData{chunks: d.chunks.clone(), topicId: d.topicId}
}

func (d *topicMessageSubmitData) chunkData() *chunkData {
	return &d.chunks
}

func (d *topicMessageSubmitData) defaultChunkSize(settings client.Settings) int {
	return settings.ChunkSize
}

func (d *topicMessageSubmitData) waitForReceipt() bool {
	return true
}
