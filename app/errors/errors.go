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

package errors

import (
	"fmt"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
)

const (
	TransactionFrozen              = "transaction is immutable; it has at least one signature or has been explicitly frozen"
	FreezeUnsetNodeAccountIds      = "transaction frozen without client or explicit node account ids"
	NoPayerAccountOrTransactionId  = "transaction requires a payer account or explicit transaction id"
	SignatureMultipleNodesOrChunks = "cannot add a signature to a transaction with multiple nodes or chunks"
	ChunkSizeZero                  = "chunk size must be greater than zero"
	NotFrozen                      = "transaction must be frozen first"
	NoMirrorNetwork                = "client has no mirror network configured"
	EmptyNetwork                   = "client network is empty"
	MissingTransactionId           = "query requires the transaction id it is about"
)

var (
	ErrTransactionFrozen              = errors.New(TransactionFrozen)
	ErrFreezeUnsetNodeAccountIds      = errors.New(FreezeUnsetNodeAccountIds)
	ErrNoPayerAccountOrTransactionId  = errors.New(NoPayerAccountOrTransactionId)
	ErrSignatureMultipleNodesOrChunks = errors.New(SignatureMultipleNodesOrChunks)
	ErrChunkSizeZero                  = errors.New(ChunkSizeZero)
	ErrNotFrozen                      = errors.New(NotFrozen)
	ErrNoMirrorNetwork                = errors.New(NoMirrorNetwork)
	ErrEmptyNetwork                   = errors.New(EmptyNetwork)
	ErrMissingTransactionId           = errors.New(MissingTransactionId)
)

// ChunkCountExceededError is returned before any network call when the payload needs more chunks than allowed
type ChunkCountExceededError struct {
	UsedChunks int
	MaxChunks  int
}

func (e *ChunkCountExceededError) Error() string {
	return fmt.Sprintf("message requires %d chunks but max chunks is %d", e.UsedChunks, e.MaxChunks)
}

// NodeAccountUnknownError is returned when an explicit node account id isn't part of the client network
type NodeAccountUnknownError struct {
	NodeAccountId types.AccountId
}

func (e *NodeAccountUnknownError) Error() string {
	return fmt.Sprintf("node account %s is not in the client network", e.NodeAccountId)
}

type MaxQueryPaymentExceededError struct {
	QueryCost       types.HbarAmount
	MaxQueryPayment types.HbarAmount
}

func (e *MaxQueryPaymentExceededError) Error() string {
	return fmt.Sprintf("cost of %s exceeds max query payment of %s", e.QueryCost, e.MaxQueryPayment)
}

// PrecheckKind tells what a precheck failure relates to
type PrecheckKind int

const (
	// PrecheckTransaction is a failed transaction submission with a known transaction id
	PrecheckTransaction PrecheckKind = iota
	PrecheckTransactionNoId
	// PrecheckQuery is a failed query about an existing transaction, e.g. a receipt query
	PrecheckQuery
	PrecheckQueryPayment
	PrecheckQueryNoPayment
)

var precheckKindNames = map[PrecheckKind]string{
	PrecheckTransaction:     "transaction",
	PrecheckTransactionNoId: "transaction without id",
	PrecheckQuery:           "query",
	PrecheckQueryPayment:    "query payment",
	PrecheckQueryNoPayment:  "query without payment",
}

func (k PrecheckKind) String() string {
	return precheckKindNames[k]
}

// PrecheckError is a non OK node precheck code that can't be retried
type PrecheckError struct {
	Kind          PrecheckKind
	Status        types.Status
	TransactionId *types.TransactionId
	Cost          *types.HbarAmount
}

func (e *PrecheckError) Error() string {
	switch {
	case e.TransactionId != nil:
		return fmt.Sprintf("%s %s failed precheck with status %s", e.Kind, e.TransactionId, e.Status)
	case e.Cost != nil:
		return fmt.Sprintf("%s failed precheck with status %s, cost %s", e.Kind, e.Status, e.Cost)
	default:
		return fmt.Sprintf("%s failed precheck with status %s", e.Kind, e.Status)
	}
}

// GrpcStatusError is a transport failure that isn't retried
type GrpcStatusError struct {
	Code    codes.Code
	Message string
}

func (e *GrpcStatusError) Error() string {
	return fmt.Sprintf("failed to complete request: %s: %s", e.Code, e.Message)
}

// TimedOutError is returned when the attempts or the time budget ran out, Cause is the last attempt's error
type TimedOutError struct {
	Cause error
}

func (e *TimedOutError) Error() string {
	if e.Cause == nil {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Cause)
}

func (e *TimedOutError) Unwrap() error {
	return e.Cause
}

type ReceiptStatusError struct {
	Status        types.Status
	TransactionId *types.TransactionId
}

func (e *ReceiptStatusError) Error() string {
	return fmt.Sprintf("receipt for transaction %s contained error status %s", transactionIdString(e.TransactionId),
		e.Status)
}

type RecordStatusError struct {
	Status        types.Status
	TransactionId types.TransactionId
}

func (e *RecordStatusError) Error() string {
	return fmt.Sprintf("record for transaction %s contained error status %s", e.TransactionId, e.Status)
}

// ResponseStatusUnrecognizedError is returned for a response code unknown to the protobuf enum
type ResponseStatusUnrecognizedError struct {
	Status int32
}

func (e *ResponseStatusUnrecognizedError) Error() string {
	return fmt.Sprintf("response status %d is unrecognized", e.Status)
}

// FromProtobufError is returned when a network response can't be decoded
type FromProtobufError struct {
	cause error
}

func NewFromProtobufError(cause error) error {
	return &FromProtobufError{cause: errors.WithStack(cause)}
}

func (e *FromProtobufError) Error() string {
	return fmt.Sprintf("failed to decode protobuf: %s", e.cause)
}

func (e *FromProtobufError) Unwrap() error {
	return e.cause
}

func transactionIdString(transactionId *types.TransactionId) string {
	if transactionId == nil {
		return "<unknown>"
	}
	return transactionId.String()
}
