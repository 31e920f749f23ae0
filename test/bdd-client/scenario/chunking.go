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

package scenario

import (
	"bytes"
	"context"

	"github.com/cucumber/godog"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/mirror"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transaction"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/thanhpk/randstr"
)

func (f *engineFeature) submitTopicMessage(ctx context.Context, size int) error {
	f.payload = randstr.Bytes(size)

	tx := transaction.NewTopicMessageSubmitTransaction()
	if err := tx.SetTopicId(topicId); err != nil {
		return err
	}
	if err := tx.SetMessage(f.payload); err != nil {
		return err
	}

	f.responses, f.err = tx.ExecuteAll(ctx, f.client)
	if f.err != nil {
		log.Infof("Failed to submit topic message of %d bytes: %s", size, f.err)
	} else {
		log.Infof("Submitted topic message of %d bytes in %d chunks", size, len(f.responses))
	}
	return nil
}

func (f *engineFeature) chunksAreSubmittedInOrder(count int) error {
	submissions := f.network.submitted(transport.ConsensusSubmitMessage)
	return assertAll(func(t *asserter) {
		assert.Len(t, submissions, count)

		var contents []byte
		for i, s := range submissions {
			submit := s.body.GetConsensusSubmitMessage()
			contents = append(contents, submit.GetMessage()...)
			if count > 1 {
				assert.Equal(t, int32(i+1), submit.GetChunkInfo().GetNumber())
				assert.Equal(t, int32(count), submit.GetChunkInfo().GetTotal())
			} else {
				assert.Nil(t, submit.GetChunkInfo())
			}
		}
		assert.True(t, bytes.Equal(f.payload, contents), "chunks don't add up to the message")
	})
}

func (f *engineFeature) everyChunkSharesTheInitialTransactionId() error {
	if f.err != nil {
		return f.err
	}

	initial := f.responses[0].TransactionId
	submissions := f.network.submitted(transport.ConsensusSubmitMessage)
	return assertAll(func(t *asserter) {
		var previous *types.TransactionId
		for _, s := range submissions {
			current, err := types.TransactionIdFromProto(s.body.GetTransactionID())
			assert.NoError(t, err)

			chunkInfo := s.body.GetConsensusSubmitMessage().GetChunkInfo()
			if chunkInfo == nil {
				assert.True(t, current.Equal(initial), "transaction id %s isn't the initial one", current)
				continue
			}

			chunkInitial, err := types.TransactionIdFromProto(chunkInfo.GetInitialTransactionID())
			assert.NoError(t, err)
			assert.True(t, chunkInitial.Equal(initial), "chunk has initial transaction id %s", chunkInitial)
			if previous != nil {
				assert.True(t, current.ValidStart.After(previous.ValidStart), "valid start doesn't increase")
			}
			previous = &current
		}
	})
}

func (f *engineFeature) theMirrorNodeReturnsTheMessageReassembled(ctx context.Context) error {
	messages, err := mirror.NewTopicMessageQuery(topicId).Execute(ctx, f.client)
	if err != nil {
		return err
	}

	chunks := len(f.network.submitted(transport.ConsensusSubmitMessage))
	return assertAll(func(t *asserter) {
		if !assert.Len(t, messages, 1) {
			return
		}

		message := messages[0]
		assert.True(t, bytes.Equal(f.payload, message.Contents), "reassembled message differs")
		if chunks > 1 {
			assert.Len(t, message.Chunks, chunks)
			assert.NotNil(t, message.TransactionId)
		} else {
			assert.Empty(t, message.Chunks)
		}
	})
}

func (f *engineFeature) theSubmissionFailsWithAChunkCountError() error {
	var chunkErr *hErrors.ChunkCountExceededError
	if !errors.As(f.err, &chunkErr) {
		return errors.Errorf("Expected a chunk count error, got %v", f.err)
	}
	return nil
}

func (f *engineFeature) theSubmissionFailsWithReceiptStatus(name string) error {
	var receiptErr *hErrors.ReceiptStatusError
	if !errors.As(f.err, &receiptErr) {
		return errors.Errorf("Expected a receipt status error, got %v", f.err)
	}

	if receiptErr.Status.String() != name {
		return errors.Errorf("Expected receipt status %s, got %s", name, receiptErr.Status)
	}
	return nil
}

func (f *engineFeature) noTransactionIsSubmitted() error {
	if count := len(f.network.submitted(transport.ConsensusSubmitMessage)); count != 0 {
		return errors.Errorf("Expected no submission, got %d", count)
	}
	return nil
}

func initializeChunkingSteps(ctx *godog.ScenarioContext, f *engineFeature) {
	ctx.Step(`^I submit a topic message of (\d+) bytes$`, f.submitTopicMessage)
	ctx.Step(`^(\d+) chunks? (?:is|are) submitted in order$`, f.chunksAreSubmittedInOrder)
	ctx.Step(`^every chunk shares the initial transaction id$`, f.everyChunkSharesTheInitialTransactionId)
	ctx.Step(`^the mirror node returns the message reassembled$`, f.theMirrorNodeReturnsTheMessageReassembled)
	ctx.Step(`^the submission fails with a chunk count error$`, f.theSubmissionFailsWithAChunkCountError)
	ctx.Step(`^the submission fails with receipt status (\w+)$`, f.theSubmissionFailsWithReceiptStatus)
	ctx.Step(`^no transaction is submitted$`, f.noTransactionIsSubmitted)
}
