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
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

type hbarTransfer struct {
	accountId  types.AccountId
	amount     types.HbarAmount
	isApproved bool
}

type transferData struct {
	hbarTransfers []hbarTransfer
}

// TransferTransaction moves hbars between accounts, the amounts must sum to zero
type TransferTransaction struct {
	Transaction
	data *transferData
}

func NewTransferTransaction() *TransferTransaction {
	t := &TransferTransaction{data: &transferData{}}
	t.Transaction = newTransaction(t.data)
	return t
}

// AddHbarTransfer adds amount to the account, a negative amount debits it. Transfers of the same account are merged
func (t *TransferTransaction) AddHbarTransfer(accountId types.AccountId, amount types.HbarAmount) error {
	return t.addHbarTransfer(accountId, amount, false)
}

// AddApprovedHbarTransfer is AddHbarTransfer spending an allowance granted to the payer
func (t *TransferTransaction) AddApprovedHbarTransfer(accountId types.AccountId, amount types.HbarAmount) error {
	return t.addHbarTransfer(accountId, amount, true)
}

func (t *TransferTransaction) HbarTransfers() map[string]types.HbarAmount {
	transfers := make(map[string]types.HbarAmount, len(t.data.hbarTransfers))
	for _, transfer := range t.data.hbarTransfers {
		transfers[transfer.accountId.String()] = transfer.amount
	}
	return transfers
}

func (t *TransferTransaction) addHbarTransfer(accountId types.AccountId, amount types.HbarAmount, approved bool) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	for i := range t.data.hbarTransfers {
		transfer := &t.data.hbarTransfers[i]
		if transfer.accountId.Equal(accountId) && transfer.isApproved == approved {
			transfer.amount = transfer.amount.Add(amount)
			return nil
		}
	}

	t.data.hbarTransfers = append(t.data.hbarTransfers, hbarTransfer{
		accountId:  accountId,
		amount:     amount,
		isApproved: approved,
	})
	return nil
}

func (d *transferData) name() string {
	return "TransferTransaction"
}

func (d *transferData) method() transport.TransactionMethod {
	return transport.CryptoTransfer
}

func (d *transferData) defaultMaxTransactionFee() types.HbarAmount {
	return types.NewHbar(1)
}

func (d *transferData) fillBody(body *services.TransactionBody, _ *chunk) error {
	accountAmounts := make([]*services.AccountAmount, 0, len(d.hbarTransfers))
	for _, transfer := range d.hbarTransfers {
		accountAmounts = append(accountAmounts, &services.AccountAmount{
			AccountID:  transfer.accountId.ToProto(),
			Amount:     transfer.amount.Tinybars(),
			IsApproval: transfer.isApproved,
		})
	}

	body.Data = &services.TransactionBody_CryptoTransfer{
		CryptoTransfer: &services.CryptoTransferTransactionBody{
			Transfers: &services.TransferList{AccountAmounts: accountAmounts},
		},
	}
	return nil
}

func (d *transferData) validateChecksums(ledgerId types.LedgerId) error {
	for _, transfer := range d.hbarTransfers {
		if err := transfer.accountId.ValidateChecksum(ledgerId); err != nil {
			return err
		}
	}
	return nil
}

func (d *transferData) clone() Data {
	return &transferData{hbarTransfers: append([]hbarTransfer(nil), d.hbarTransfers...)}
}
