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

type accountCreateData struct {
	alias                         []byte
	autoRenewPeriod               time.Duration
	declineReward                 bool
	initialBalance                types.HbarAmount
	key                           *types.PublicKey
	maxAutomaticTokenAssociations int32
	memo                          string
	receiverSignatureRequired     bool
}

// AccountCreateTransaction creates an account owned by a key
type AccountCreateTransaction struct {
	Transaction
	data *accountCreateData
}

func NewAccountCreateTransaction() *AccountCreateTransaction {
	t := &AccountCreateTransaction{data: &accountCreateData{autoRenewPeriod: defaultAutoRenewPeriod}}
	t.Transaction = newTransaction(t.data)
	return t
}

func (t *AccountCreateTransaction) SetKey(key types.PublicKey) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.key = &key
	return nil
}

func (t *AccountCreateTransaction) SetInitialBalance(initialBalance types.HbarAmount) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.initialBalance = initialBalance
	return nil
}

func (t *AccountCreateTransaction) SetReceiverSignatureRequired(required bool) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.receiverSignatureRequired = required
	return nil
}

func (t *AccountCreateTransaction) SetAutoRenewPeriod(autoRenewPeriod time.Duration) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.autoRenewPeriod = autoRenewPeriod
	return nil
}

func (t *AccountCreateTransaction) SetAccountMemo(memo string) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.memo = memo
	return nil
}

func (t *AccountCreateTransaction) SetMaxAutomaticTokenAssociations(max int32) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.maxAutomaticTokenAssociations = max
	return nil
}

func (t *AccountCreateTransaction) SetDeclineStakingReward(decline bool) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.declineReward = decline
	return nil
}

// SetAlias sets the alias of the account, the serialized key or the evm address it's known as
func (t *AccountCreateTransaction) SetAlias(alias []byte) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.alias = append([]byte(nil), alias...)
	return nil
}

func (d *accountCreateData) name() string {
	return "AccountCreateTransaction"
}

func (d *accountCreateData) method() transport.TransactionMethod {
	return transport.CryptoCreateAccount
}

func (d *accountCreateData) defaultMaxTransactionFee() types.HbarAmount {
	return types.NewHbar(5)
}

func (d *accountCreateData) fillBody(body *services.TransactionBody, _ *chunk) error {
	data := &services.CryptoCreateTransactionBody{
		InitialBalance:                uint64(d.initialBalance.Tinybars()),
		ReceiverSigRequired:           d.receiverSignatureRequired,
		AutoRenewPeriod:               types.DurationToProto(d.autoRenewPeriod),
		Memo:                          d.memo,
		MaxAutomaticTokenAssociations: d.maxAutomaticTokenAssociations,
		DeclineReward:                 d.declineReward,
		Alias:                         d.alias,
	}

	if d.key != nil {
		key, err := d.key.ToProtoKey()
		if err != nil {
			return err
		}
		data.Key = key
	}

	body.Data = &services.TransactionBody_CryptoCreateAccount{CryptoCreateAccount: data}
	return nil
}

func (d *accountCreateData) validateChecksums(types.LedgerId) error {
	return nil
}

func (d *accountCreateData) clone() Data {
	cloned := *d
	cloned.alias = append([]byte(nil), d.alias...)
	return &cloned
}
