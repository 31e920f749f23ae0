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

	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

// Transfer is one hbar adjustment of a transfer list
type Transfer struct {
	AccountId  AccountId
	Amount     HbarAmount
	IsApproval bool
}

// TransactionRecord is the detailed outcome of a transaction, Receipt only carries the top level receipt
type TransactionRecord struct {
	Receipt                  TransactionReceipt
	TransactionHash          []byte
	ConsensusTimestamp       time.Time
	TransactionId            TransactionId
	Memo                     string
	TransactionFee           HbarAmount
	Transfers                []Transfer
	ScheduleRef              *EntityId
	ParentConsensusTimestamp *time.Time
	EthereumHash             []byte
	Duplicates               []TransactionRecord
	Children                 []TransactionRecord
}

func TransactionRecordFromProto(pb *services.TransactionRecord) (TransactionRecord, error) {
	if pb == nil {
		return TransactionRecord{}, errNilProto("TransactionRecord")
	}

	if pb.ConsensusTimestamp == nil {
		return TransactionRecord{}, errNilProto("TransactionRecord.consensusTimestamp")
	}

	transactionId, err := TransactionIdFromProto(pb.TransactionID)
	if err != nil {
		return TransactionRecord{}, err
	}

	receipt, err := TransactionReceiptFromProto(pb.Receipt, &transactionId)
	if err != nil {
		return TransactionRecord{}, err
	}

	record := TransactionRecord{
		Receipt:            receipt,
		TransactionHash:    pb.TransactionHash,
		ConsensusTimestamp: TimestampFromProto(pb.ConsensusTimestamp),
		TransactionId:      transactionId,
		Memo:               pb.Memo,
		TransactionFee:     HbarFromTinybars(int64(pb.TransactionFee)),
		EthereumHash:       pb.EthereumHash,
	}

	for _, accountAmount := range pb.GetTransferList().GetAccountAmounts() {
		accountId, err := AccountIdFromProto(accountAmount.AccountID)
		if err != nil {
			return TransactionRecord{}, err
		}

		record.Transfers = append(record.Transfers, Transfer{
			AccountId:  accountId,
			Amount:     HbarFromTinybars(accountAmount.Amount),
			IsApproval: accountAmount.IsApproval,
		})
	}

	if pb.ScheduleRef != nil {
		record.ScheduleRef = entityIdPtr(EntityIdFromScheduleID(pb.ScheduleRef))
	}

	if pb.ParentConsensusTimestamp != nil {
		parent := TimestampFromProto(pb.ParentConsensusTimestamp)
		record.ParentConsensusTimestamp = &parent
	}

	return record, nil
}

// TransactionRecordFromResponse converts the record query answer with its duplicate and child records
func TransactionRecordFromResponse(pb *services.TransactionGetRecordResponse) (TransactionRecord, error) {
	if pb == nil {
		return TransactionRecord{}, errNilProto("TransactionGetRecordResponse")
	}

	record, err := TransactionRecordFromProto(pb.TransactionRecord)
	if err != nil {
		return TransactionRecord{}, err
	}

	if record.Duplicates, err = recordsFromProto(pb.DuplicateTransactionRecords); err != nil {
		return TransactionRecord{}, err
	}

	if record.Children, err = recordsFromProto(pb.ChildTransactionRecords); err != nil {
		return TransactionRecord{}, err
	}

	return record, nil
}

func recordsFromProto(pbs []*services.TransactionRecord) ([]TransactionRecord, error) {
	records := make([]TransactionRecord, 0, len(pbs))
	for _, pb := range pbs {
		record, err := TransactionRecordFromProto(pb)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
