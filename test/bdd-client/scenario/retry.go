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
	"context"

	"github.com/cucumber/godog"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transaction"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func (f *engineFeature) nodeAnswersBusy(node string, times int) error {
	address, err := f.address(node)
	if err != nil {
		return err
	}

	f.network.mu.Lock()
	defer f.network.mu.Unlock()
	f.network.busy[address] = times
	return nil
}

func (f *engineFeature) nodeIsUnavailable(node string) error {
	address, err := f.address(node)
	if err != nil {
		return err
	}

	f.network.mu.Lock()
	defer f.network.mu.Unlock()
	f.network.unavailable[address] = true
	return nil
}

func (f *engineFeature) submitTransfer(ctx context.Context, tinybars int64, recipient string) error {
	recipientId, err := types.AccountIdFromString(recipient)
	if err != nil {
		return err
	}

	amount := types.HbarFromTinybars(tinybars)
	tx := transaction.NewTransferTransaction()
	if err = tx.AddHbarTransfer(operatorId, amount.Negated()); err != nil {
		return err
	}
	if err = tx.AddHbarTransfer(recipientId, amount); err != nil {
		return err
	}

	// nodes in account order so the first attempt always goes to the lowest node
	if err = tx.SetNodeAccountIds(f.client.Network().NodeAccountIds()); err != nil {
		return err
	}

	response, err := tx.Execute(ctx, f.client)
	f.err = err
	if err != nil {
		log.Infof("Failed to submit transfer of %d tinybars to %s: %s", tinybars, recipient, err)
		return nil
	}

	log.Infof("Submitted transfer %s to node %s", response.TransactionId, response.NodeAccountId)
	f.responses = []*transaction.Response{response}
	return nil
}

func (f *engineFeature) theTransferIsSubmittedTimes(times int) error {
	submissions := f.network.submitted(transport.CryptoTransfer)
	return assertAll(func(t *asserter) {
		assert.Len(t, submissions, times)
		if len(submissions) == 0 {
			return
		}

		first := submissions[0].body.GetTransactionID()
		for _, s := range submissions[1:] {
			assert.Equal(t, first.GetTransactionValidStart().GetSeconds(),
				s.body.GetTransactionID().GetTransactionValidStart().GetSeconds())
		}
	})
}

func (f *engineFeature) theTransferWasAcceptedByNode(node string) error {
	if f.err != nil {
		return f.err
	}

	nodeAccountId, err := types.AccountIdFromString(node)
	if err != nil {
		return err
	}

	if actual := f.responses[0].NodeAccountId; !actual.Equal(nodeAccountId) {
		return errors.Errorf("Expected node %s to accept the transfer, got %s", node, actual)
	}
	return nil
}

func initializeRetrySteps(ctx *godog.ScenarioContext, f *engineFeature) {
	ctx.Step(`^node (\S+) answers BUSY (\d+) times?$`, f.nodeAnswersBusy)
	ctx.Step(`^node (\S+) is unavailable$`, f.nodeIsUnavailable)
	ctx.Step(`^I submit a transfer of (\d+) tinybars to (\S+)$`, f.submitTransfer)
	ctx.Step(`^the transfer is submitted (\d+) times?$`, f.theTransferIsSubmittedTimes)
	ctx.Step(`^the transfer was accepted by node (\S+)$`, f.theTransferWasAcceptedByNode)
}
