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

package types

import (
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/pkg/errors"
)

// ChunkInfo describes the position of one chunk of a chunked transaction
type ChunkInfo struct {
	Current              int
	Total                int
	InitialTransactionId TransactionId
	CurrentTransactionId TransactionId
	NodeAccountId        *AccountId
}

func NewChunkInfo(current, total int, initial, currentId TransactionId, nodeAccountId *AccountId) (ChunkInfo, error) {
	if total <= 0 || current < 0 || current >= total {
		return ChunkInfo{}, errors.Errorf("invalid chunk %d of %d", current, total)
	}

	return ChunkInfo{
		Current:              current,
		Total:                total,
		InitialTransactionId: initial,
		CurrentTransactionId: currentId,
		NodeAccountId:        nodeAccountId,
	}, nil
}

// SingleChunk is the chunk info of a transaction that isn't split
func SingleChunk(transactionId TransactionId, nodeAccountId *AccountId) ChunkInfo {
	return ChunkInfo{
		Total:                1,
		InitialTransactionId: transactionId,
		CurrentTransactionId: transactionId,
		NodeAccountId:        nodeAccountId,
	}
}

func (c ChunkInfo) IsSingle() bool {
	return c.Total == 1
}

// ToProto returns the wire chunk info; chunk numbers on the wire are 1-based
func (c ChunkInfo) ToProto() *services.ConsensusMessageChunkInfo {
	return &services.ConsensusMessageChunkInfo{
		InitialTransactionID: c.InitialTransactionId.ToProto(),
		Total:                int32(c.Total),
		Number:               int32(c.Current + 1),
	}
}
