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

package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/mirror"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/stretchr/testify/mock"
)

var (
	NilResponse            *services.Response
	NilTransactionResponse *services.TransactionResponse
)

// MockTransport is a scripted consensus and mirror transport. Mirror streams are set up with OnSubscribeTopic and
// OnGetNodes
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) SubmitTransaction(
	ctx context.Context,
	address string,
	method transport.TransactionMethod,
	transaction *services.Transaction,
) (*services.TransactionResponse, error) {
	args := m.Called(ctx, address, method, transaction)
	return args.Get(0).(*services.TransactionResponse), args.Error(1)
}

func (m *MockTransport) SubmitQuery(
	ctx context.Context,
	address string,
	method transport.QueryMethod,
	query *services.Query,
) (*services.Response, error) {
	args := m.Called(ctx, address, method, query)
	return args.Get(0).(*services.Response), args.Error(1)
}

func (m *MockTransport) SubscribeTopic(ctx context.Context, address string, query *mirror.ConsensusTopicQuery) (
	transport.Stream[*mirror.ConsensusTopicResponse],
	error,
) {
	args := m.Called(ctx, address, query)
	stream, _ := args.Get(0).(*MockStream[*mirror.ConsensusTopicResponse])
	if stream == nil {
		return nil, args.Error(1)
	}
	return stream, args.Error(1)
}

func (m *MockTransport) GetNodes(ctx context.Context, address string, query *mirror.AddressBookQuery) (
	transport.Stream[*services.NodeAddress],
	error,
) {
	args := m.Called(ctx, address, query)
	stream, _ := args.Get(0).(*MockStream[*services.NodeAddress])
	if stream == nil {
		return nil, args.Error(1)
	}
	return stream, args.Error(1)
}

// MockStream replays items and then ends with err, io.EOF when err is nil
type MockStream[T any] struct {
	err   error
	items []T
	mu    sync.Mutex
}

func NewMockStream[T any](err error, items ...T) *MockStream[T] {
	if err == nil {
		err = io.EOF
	}
	return &MockStream[T]{err: err, items: items}
}

func (s *MockStream[T]) Recv() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		var zero T
		return zero, s.err
	}

	item := s.items[0]
	s.items = s.items[1:]
	return item, nil
}
