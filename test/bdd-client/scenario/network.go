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
	"sync"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/codec"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/test/mocks"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/mirror"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type submission struct {
	address string
	body    *services.TransactionBody
	method  transport.TransactionMethod
}

// scriptedNetwork is an in-process consensus and mirror network. Nodes can be scripted to answer BUSY or to be
// unavailable, accepted topic messages are served back by the mirror node
type scriptedNetwork struct {
	busy          map[string]int
	consensusTime time.Time
	messages      []*mirror.ConsensusTopicResponse
	mu            sync.Mutex
	receiptStatus services.ResponseCodeEnum
	submissions   []submission
	unavailable   map[string]bool
}

func newScriptedNetwork() *scriptedNetwork {
	return &scriptedNetwork{
		busy:          make(map[string]int),
		consensusTime: time.Unix(1700000000, 0),
		receiptStatus: services.ResponseCodeEnum_SUCCESS,
		unavailable:   make(map[string]bool),
	}
}

func (n *scriptedNetwork) SubmitTransaction(
	_ context.Context,
	address string,
	method transport.TransactionMethod,
	transaction *services.Transaction,
) (*services.TransactionResponse, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.unavailable[address] {
		return nil, status.Error(codes.Unavailable, "node unavailable")
	}

	body, _, err := codec.DecodeBody(transaction)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	n.submissions = append(n.submissions, submission{address: address, body: body, method: method})

	if n.busy[address] > 0 {
		n.busy[address]--
		return &services.TransactionResponse{NodeTransactionPrecheckCode: services.ResponseCodeEnum_BUSY}, nil
	}

	if submit := body.GetConsensusSubmitMessage(); submit != nil {
		n.consensusTime = n.consensusTime.Add(time.Second)
		n.messages = append(n.messages, &mirror.ConsensusTopicResponse{
			ChunkInfo:          submit.GetChunkInfo(),
			ConsensusTimestamp: types.TimestampToProto(n.consensusTime),
			Message:            submit.GetMessage(),
			RunningHash:        []byte{byte(len(n.messages))},
			RunningHashVersion: 3,
			SequenceNumber:     uint64(len(n.messages) + 1),
		})
	}

	return &services.TransactionResponse{NodeTransactionPrecheckCode: services.ResponseCodeEnum_OK}, nil
}

func (n *scriptedNetwork) SubmitQuery(
	_ context.Context,
	address string,
	method transport.QueryMethod,
	_ *services.Query,
) (*services.Response, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.unavailable[address] {
		return nil, status.Error(codes.Unavailable, "node unavailable")
	}

	ok := &services.ResponseHeader{NodeTransactionPrecheckCode: services.ResponseCodeEnum_OK}
	switch method {
	case transport.TransactionGetReceipt:
		return &services.Response{
			Response: &services.Response_TransactionGetReceipt{
				TransactionGetReceipt: &services.TransactionGetReceiptResponse{
					Header:  ok,
					Receipt: &services.TransactionReceipt{Status: n.receiptStatus},
				},
			},
		}, nil
	case transport.CryptoGetBalance:
		return &services.Response{
			Response: &services.Response_CryptogetAccountBalance{
				CryptogetAccountBalance: &services.CryptoGetAccountBalanceResponse{Header: ok, Balance: 1},
			},
		}, nil
	default:
		return nil, status.Errorf(codes.Unimplemented, "%s isn't scripted", method)
	}
}

func (n *scriptedNetwork) SubscribeTopic(_ context.Context, _ string, _ *mirror.ConsensusTopicQuery) (
	transport.Stream[*mirror.ConsensusTopicResponse],
	error,
) {
	n.mu.Lock()
	defer n.mu.Unlock()

	return mocks.NewMockStream[*mirror.ConsensusTopicResponse](nil, n.messages...), nil
}

func (n *scriptedNetwork) GetNodes(context.Context, string, *mirror.AddressBookQuery) (
	transport.Stream[*services.NodeAddress],
	error,
) {
	return nil, status.Error(codes.Unimplemented, "address book isn't scripted")
}

// submitted returns the accepted and rejected submissions of the method in order
func (n *scriptedNetwork) submitted(method transport.TransactionMethod) []submission {
	n.mu.Lock()
	defer n.mu.Unlock()

	var result []submission
	for _, s := range n.submissions {
		if s.method == method {
			result = append(result, s)
		}
	}
	return result
}
