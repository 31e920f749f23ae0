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
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

type topicCreateData struct {
	adminKey         *types.PublicKey
	autoRenewAccount *types.AccountId
	autoRenewPeriod  time.Duration
	memo             string
	submitKey        *types.PublicKey
}

// TopicCreateTransaction creates a consensus topic, a topic without a submit key accepts messages from anyone
type TopicCreateTransaction struct {
	Transaction
	data *topicCreateData
}

func NewTopicCreateTransaction() *TopicCreateTransaction {
	t := &TopicCreateTransaction{data: &topicCreateData{autoRenewPeriod: defaultAutoRenewPeriod}}
	t.Transaction = newTransaction(t.data)
	return t
}

func (t *TopicCreateTransaction) SetTopicMemo(memo string) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.memo = memo
	return nil
}

func (t *TopicCreateTransaction) SetAdminKey(key types.PublicKey) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.adminKey = &key
	return nil
}

func (t *TopicCreateTransaction) SetSubmitKey(key types.PublicKey) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.submitKey = &key
	return nil
}

func (t *TopicCreateTransaction) SetAutoRenewPeriod(autoRenewPeriod time.Duration) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.autoRenewPeriod = autoRenewPeriod
	return nil
}

func (t *TopicCreateTransaction) SetAutoRenewAccountId(accountId types.AccountId) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.autoRenewAccount = &accountId
	return nil
}

func (d *topicCreateData) name() string {
	return "TopicCreateTransaction"
}

func (d *topicCreateData) method() transport.TransactionMethod {
	return transport.ConsensusCreateTopic
}

func (d *topicCreateData) defaultMaxTransactionFee() types.HbarAmount {
	return types.NewHbar(25)
}

func (d *topicCreateData) fillBody(body *services.TransactionBody, _ *chunk) error {
	data := &services.ConsensusCreateTopicTransactionBody{
		Memo:            d.memo,
		AutoRenewPeriod: types.DurationToProto(d.autoRenewPeriod),
	}

	var err error
	if d.adminKey != nil {
		if data.AdminKey, err = d.adminKey.ToProtoKey(); err != nil {
			return err
		}
	}

	if d.submitKey != nil {
		if data.SubmitKey, err = d.submitKey.ToProtoKey(); err != nil {
			return err
		}
	}

	if d.autoRenewAccount != nil {
		data.AutoRenewAccount = d.autoRenewAccount.ToProto()
	}

	body.Data = &services.TransactionBody_ConsensusCreateTopic{ConsensusCreateTopic: data}
	return nil
}

func (d *topicCreateData) validateChecksums(ledgerId types.LedgerId) error {
	if d.autoRenewAccount == nil {
		return nil
	}
	return d.autoRenewAccount.ValidateChecksum(ledgerId)
}

func (d *topicCreateData) clone() Data {
	cloned := *d
	return &cloned
}
