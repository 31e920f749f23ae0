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

package transport

import (
	"context"
	"strings"

	"github.com/hashgraph/hedera-sdk-go/v2/proto/mirror"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const htmlContentType = "text/html"

// TransactionMethod is the consensus node rpc a transaction is submitted with
type TransactionMethod int

const (
	CryptoTransfer TransactionMethod = iota
	CryptoCreateAccount
	ConsensusCreateTopic
	ConsensusSubmitMessage
	FileCreate
	FileAppend
)

var transactionMethodNames = map[TransactionMethod]string{
	CryptoTransfer:         "cryptoTransfer",
	CryptoCreateAccount:    "createAccount",
	ConsensusCreateTopic:   "createTopic",
	ConsensusSubmitMessage: "submitMessage",
	FileCreate:             "createFile",
	FileAppend:             "appendContent",
}

func (m TransactionMethod) String() string {
	return transactionMethodNames[m]
}

// QueryMethod is the consensus node rpc a query is sent with
type QueryMethod int

const (
	CryptoGetBalance QueryMethod = iota
	TransactionGetReceipt
	TransactionGetRecord
	FileGetContents
)

var queryMethodNames = map[QueryMethod]string{
	CryptoGetBalance:      "cryptoGetBalance",
	TransactionGetReceipt: "getTransactionReceipts",
	TransactionGetRecord:  "getTxRecordByTxID",
	FileGetContents:       "getFileContent",
}

func (m QueryMethod) String() string {
	return queryMethodNames[m]
}

// Transport sends requests to consensus nodes. Errors are grpc status errors
type Transport interface {
	SubmitTransaction(
		ctx context.Context,
		address string,
		method TransactionMethod,
		transaction *services.Transaction,
	) (*services.TransactionResponse, error)
	SubmitQuery(ctx context.Context, address string, method QueryMethod, query *services.Query) (
		*services.Response,
		error,
	)
}

// Stream is a receive only server stream, Recv returns io.EOF once the server completes it
type Stream[T any] interface {
	Recv() (T, error)
}

// MirrorTransport opens streams to mirror nodes. The streams end when ctx is cancelled
type MirrorTransport interface {
	SubscribeTopic(ctx context.Context, address string, query *mirror.ConsensusTopicQuery) (
		Stream[*mirror.ConsensusTopicResponse],
		error,
	)
	GetNodes(ctx context.Context, address string, query *mirror.AddressBookQuery) (
		Stream[*services.NodeAddress],
		error,
	)
}

// IsHtmlResponse tells if the error is caused by a proxy answering with an html page instead of grpc
func IsHtmlResponse(err error) bool {
	s, ok := status.FromError(err)
	if !ok {
		return false
	}

	return s.Code() == codes.Internal && strings.Contains(s.Message(), htmlContentType)
}
