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
	"time"

	"github.com/hashgraph/hedera-sdk-go/v2/proto/mirror"
	"golang.org/x/exp/slices"
)

// TopicMessageChunk is the per chunk metadata of a reassembled topic message
type TopicMessageChunk struct {
	ConsensusTimestamp time.Time
	ContentSize        int
	RunningHash        []byte
	SequenceNumber     uint64
}

// TopicMessage is a fully reassembled message. Chunks is only set for messages submitted in more than one chunk
type TopicMessage struct {
	ConsensusTimestamp time.Time
	Contents           []byte
	RunningHash        []byte
	RunningHashVersion uint64
	SequenceNumber     uint64
	Chunks             []TopicMessageChunk
	TransactionId      *TransactionId
}

type topicMessagePart struct {
	consensusTimestamp time.Time
	contents           []byte
	runningHash        []byte
	runningHashVersion uint64
	sequenceNumber     uint64
	initialId          *TransactionId
	number             int32
	total              int32
}

// TopicMessageAssembler groups the chunks streamed by the mirror node by initial transaction id and emits a message
// once every chunk of it arrived. Not safe for concurrent use
type TopicMessageAssembler struct {
	pending map[string][]topicMessagePart
}

func NewTopicMessageAssembler() *TopicMessageAssembler {
	return &TopicMessageAssembler{pending: make(map[string][]topicMessagePart)}
}

// Add consumes one streamed response and returns the completed message, if any
func (a *TopicMessageAssembler) Add(pb *mirror.ConsensusTopicResponse) (*TopicMessage, error) {
	part, err := topicMessagePartFromProto(pb)
	if err != nil {
		return nil, err
	}

	if part.total <= 1 {
		message := part.toMessage()
		return &message, nil
	}

	if part.initialId == nil {
		return nil, errNilProto("ConsensusTopicResponse.chunkInfo.initialTransactionID")
	}

	key := part.initialId.String()
	parts := append(a.pending[key], part)
	if len(parts) < int(part.total) {
		a.pending[key] = parts
		return nil, nil
	}

	delete(a.pending, key)
	message := assembleTopicMessage(parts)
	return &message, nil
}

// Pending returns the number of messages still waiting for chunks
func (a *TopicMessageAssembler) Pending() int {
	return len(a.pending)
}

func topicMessagePartFromProto(pb *mirror.ConsensusTopicResponse) (topicMessagePart, error) {
	if pb == nil || pb.ConsensusTimestamp == nil {
		return topicMessagePart{}, errNilProto("ConsensusTopicResponse.consensusTimestamp")
	}

	part := topicMessagePart{
		consensusTimestamp: TimestampFromProto(pb.ConsensusTimestamp),
		contents:           pb.Message,
		runningHash:        pb.RunningHash,
		runningHashVersion: pb.RunningHashVersion,
		sequenceNumber:     pb.SequenceNumber,
		number:             1,
		total:              1,
	}

	if chunkInfo := pb.ChunkInfo; chunkInfo != nil {
		part.number = chunkInfo.Number
		part.total = chunkInfo.Total
		if chunkInfo.InitialTransactionID != nil {
			initialId, err := TransactionIdFromProto(chunkInfo.InitialTransactionID)
			if err != nil {
				return topicMessagePart{}, err
			}
			part.initialId = &initialId
		}
	}

	return part, nil
}

func (p topicMessagePart) toMessage() TopicMessage {
	return TopicMessage{
		ConsensusTimestamp: p.consensusTimestamp,
		Contents:           p.contents,
		RunningHash:        p.runningHash,
		RunningHashVersion: p.runningHashVersion,
		SequenceNumber:     p.sequenceNumber,
		TransactionId:      p.initialId,
	}
}

func (p topicMessagePart) toChunk() TopicMessageChunk {
	return TopicMessageChunk{
		ConsensusTimestamp: p.consensusTimestamp,
		ContentSize:        len(p.contents),
		RunningHash:        p.runningHash,
		SequenceNumber:     p.sequenceNumber,
	}
}

// assembleTopicMessage concatenates contents in chunk order, the header fields come from the last chunk
func assembleTopicMessage(parts []topicMessagePart) TopicMessage {
	slices.SortFunc(parts, func(a, b topicMessagePart) int { return int(a.number) - int(b.number) })

	size := 0
	chunks := make([]TopicMessageChunk, 0, len(parts))
	for _, part := range parts {
		size += len(part.contents)
		chunks = append(chunks, part.toChunk())
	}

	contents := make([]byte, 0, size)
	for _, part := range parts {
		contents = append(contents, part.contents...)
	}

	message := parts[len(parts)-1].toMessage()
	message.Contents = contents
	message.Chunks = chunks
	return message
}
