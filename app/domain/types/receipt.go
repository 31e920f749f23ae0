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

import "github.com/hashgraph/hedera-sdk-go/v2/proto/services"

// TransactionReceipt is the consensus outcome of a transaction. Duplicates and Children of a receipt returned by a
// query are never nested further
type TransactionReceipt struct {
	TransactionId           *TransactionId
	Status                  Status
	AccountId               *AccountId
	FileId                  *EntityId
	ContractId              *EntityId
	TopicId                 *EntityId
	TopicSequenceNumber     uint64
	TopicRunningHash        []byte
	TopicRunningHashVersion uint64
	TokenId                 *EntityId
	TotalSupply             uint64
	ScheduleId              *EntityId
	ScheduledTransactionId  *TransactionId
	Serials                 []int64
	Duplicates              []TransactionReceipt
	Children                []TransactionReceipt
}

// TransactionReceiptFromProto converts a single receipt. The status isn't checked against the known codes, callers
// decide how to treat an unrecognized one
func TransactionReceiptFromProto(pb *services.TransactionReceipt, transactionId *TransactionId) (
	TransactionReceipt,
	error,
) {
	if pb == nil {
		return TransactionReceipt{}, errNilProto("TransactionReceipt")
	}

	receipt := TransactionReceipt{
		TransactionId:           transactionId,
		Status:                  pb.Status,
		TopicSequenceNumber:     pb.TopicSequenceNumber,
		TopicRunningHashVersion: pb.TopicRunningHashVersion,
		TotalSupply:             pb.NewTotalSupply,
		Serials:                 pb.SerialNumbers,
	}

	if len(pb.TopicRunningHash) != 0 {
		receipt.TopicRunningHash = pb.TopicRunningHash
	}

	if pb.AccountID != nil {
		accountId, err := AccountIdFromProto(pb.AccountID)
		if err != nil {
			return TransactionReceipt{}, err
		}
		receipt.AccountId = &accountId
	}

	if pb.FileID != nil {
		receipt.FileId = entityIdPtr(EntityIdFromFileID(pb.FileID))
	}

	if pb.ContractID != nil {
		receipt.ContractId = entityIdPtr(EntityIdFromContractID(pb.ContractID))
	}

	if pb.TopicID != nil {
		receipt.TopicId = entityIdPtr(EntityIdFromTopicID(pb.TopicID))
	}

	if pb.TokenID != nil {
		receipt.TokenId = entityIdPtr(EntityIdFromTokenID(pb.TokenID))
	}

	if pb.ScheduleID != nil {
		receipt.ScheduleId = entityIdPtr(EntityIdFromScheduleID(pb.ScheduleID))
	}

	if pb.ScheduledTransactionID != nil {
		scheduledId, err := TransactionIdFromProto(pb.ScheduledTransactionID)
		if err != nil {
			return TransactionReceipt{}, err
		}
		receipt.ScheduledTransactionId = &scheduledId
	}

	return receipt, nil
}

// TransactionReceiptFromResponse converts the receipt query answer with its duplicate and child receipts
func TransactionReceiptFromResponse(pb *services.TransactionGetReceiptResponse, transactionId *TransactionId) (
	TransactionReceipt,
	error,
) {
	if pb == nil {
		return TransactionReceipt{}, errNilProto("TransactionGetReceiptResponse")
	}

	receipt, err := TransactionReceiptFromProto(pb.Receipt, transactionId)
	if err != nil {
		return TransactionReceipt{}, err
	}

	if receipt.Duplicates, err = receiptsFromProto(pb.DuplicateTransactionReceipts, transactionId); err != nil {
		return TransactionReceipt{}, err
	}

	if receipt.Children, err = receiptsFromProto(pb.ChildTransactionReceipts, nil); err != nil {
		return TransactionReceipt{}, err
	}

	return receipt, nil
}

func (r TransactionReceipt) ToProto() *services.TransactionReceipt {
	pb := &services.TransactionReceipt{
		Status:                  r.Status,
		TopicSequenceNumber:     r.TopicSequenceNumber,
		TopicRunningHash:        r.TopicRunningHash,
		TopicRunningHashVersion: r.TopicRunningHashVersion,
		NewTotalSupply:          r.TotalSupply,
		SerialNumbers:           r.Serials,
	}

	if r.AccountId != nil {
		pb.AccountID = r.AccountId.ToProto()
	}

	if r.FileId != nil {
		pb.FileID = r.FileId.ToFileID()
	}

	if r.ContractId != nil {
		pb.ContractID = r.ContractId.ToContractID()
	}

	if r.TopicId != nil {
		pb.TopicID = r.TopicId.ToTopicID()
	}

	if r.TokenId != nil {
		pb.TokenID = r.TokenId.ToTokenID()
	}

	if r.ScheduleId != nil {
		pb.ScheduleID = r.ScheduleId.ToScheduleID()
	}

	if r.ScheduledTransactionId != nil {
		pb.ScheduledTransactionID = r.ScheduledTransactionId.ToProto()
	}

	return pb
}

func receiptsFromProto(pbs []*services.TransactionReceipt, transactionId *TransactionId) (
	[]TransactionReceipt,
	error,
) {
	receipts := make([]TransactionReceipt, 0, len(pbs))
	for _, pb := range pbs {
		receipt, err := TransactionReceiptFromProto(pb, transactionId)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}

	return receipts, nil
}

func entityIdPtr(entityId EntityId) *EntityId {
	return &entityId
}
