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

package query

import (
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/codec"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

var paymentTransactionFee = types.NewHbar(1)

// makePayment builds the transfer of the amount from the payer of the transaction id to the node, signed by the
// operator. Every node gets its own payment since the node account is part of the body
func makePayment(
	transactionId types.TransactionId,
	nodeAccountId types.AccountId,
	amount types.HbarAmount,
	signer types.Signer,
	validDuration time.Duration,
) (*services.Transaction, error) {
	body := &services.TransactionBody{
		TransactionID:            transactionId.ToProto(),
		NodeAccountID:            nodeAccountId.ToProto(),
		TransactionFee:           uint64(paymentTransactionFee.Tinybars()),
		TransactionValidDuration: types.DurationToProto(validDuration),
		Data: &services.TransactionBody_CryptoTransfer{
			CryptoTransfer: &services.CryptoTransferTransactionBody{
				Transfers: &services.TransferList{
					AccountAmounts: []*services.AccountAmount{
						{AccountID: transactionId.AccountId.ToProto(), Amount: -amount.Tinybars()},
						{AccountID: nodeAccountId.ToProto(), Amount: amount.Tinybars()},
					},
				},
			},
		},
	}

	signed, err := codec.Sign(body, []types.Signer{signer})
	if err != nil {
		return nil, err
	}

	return signed.Transaction, nil
}
