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

package mirror

import (
	"context"
	"testing"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/test/mocks"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/mirror"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var rstStream = status.Error(codes.Internal, "stream terminated by RST_STREAM with error code: NO_ERROR")

func nodeAddress(num int64) *services.NodeAddress {
	return &services.NodeAddress{
		NodeId:        num - 3,
		NodeAccountId: &services.AccountID{Account: &services.AccountID_AccountNum{AccountNum: num}},
		ServiceEndpoint: []*services.ServiceEndpoint{
			{IpAddressV4: []byte{10, 0, 0, byte(num)}, Port: 50211},
		},
		Description: "node",
	}
}

func newNodeStream(err error, nums ...int64) *mocks.MockStream[*services.NodeAddress] {
	nodes := make([]*services.NodeAddress, 0, len(nums))
	for _, num := range nums {
		nodes = append(nodes, nodeAddress(num))
	}
	return mocks.NewMockStream[*services.NodeAddress](err, nodes...)
}

func TestNodeAddressBookQueryResumes(t *testing.T) {
	// given
	c, mockTransport := newTestClient(t, time.Minute)
	var queries []*mirror.AddressBookQuery
	capture := func(args mock.Arguments) { queries = append(queries, args.Get(2).(*mirror.AddressBookQuery)) }
	mockTransport.On("GetNodes", mock.Anything, mirrorNode, mock.Anything).
		Run(capture).Return(newNodeStream(rstStream, 3), nil).Once()
	mockTransport.On("GetNodes", mock.Anything, mirrorNode, mock.Anything).
		Run(capture).Return(newNodeStream(nil, 3, 4), nil).Once()

	// when
	addressBook, err := NewNodeAddressBookQuery().Execute(context.Background(), c)

	// then
	require.NoError(t, err)
	require.Len(t, addressBook.Entries, 2)
	assert.Equal(t, types.NewAccountId(0, 0, 3), addressBook.Entries[0].NodeAccountId)
	assert.Equal(t, types.NewAccountId(0, 0, 4), addressBook.Entries[1].NodeAccountId)
	assert.Equal(t, []string{"10.0.0.4:50211"}, addressBook.Entries[1].Endpoints)
	assert.Equal(t, int64(1), addressBook.Entries[1].NodeId)

	require.Len(t, queries, 2)
	for _, query := range queries {
		assert.Equal(t, int64(addressBookFileNum), query.GetFileId().GetFileNum())
	}
}

func TestNodeAddressBookQueryLimit(t *testing.T) {
	c, mockTransport := newTestClient(t, time.Minute)
	mockTransport.On("GetNodes", mock.Anything, mirrorNode, mock.Anything).
		Return(newNodeStream(nil, 3), nil).Once()

	fileId := types.NewEntityId(0, 0, 101)
	_, err := NewNodeAddressBookQuery().SetFileId(fileId).SetLimit(1).Execute(context.Background(), c)

	require.NoError(t, err)
	query := mockTransport.Calls[0].Arguments.Get(2).(*mirror.AddressBookQuery)
	assert.Equal(t, int32(1), query.GetLimit())
	assert.Equal(t, int64(101), query.GetFileId().GetFileNum())
}

func TestNodeAddressBookQueryFails(t *testing.T) {
	tests := []struct {
		name   string
		stream *mocks.MockStream[*services.NodeAddress]
		check  func(t *testing.T, err error)
	}{
		{
			name:   "status",
			stream: newNodeStream(status.Error(codes.NotFound, "file not found")),
			check: func(t *testing.T, err error) {
				var statusErr *hErrors.GrpcStatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, codes.NotFound, statusErr.Code)
			},
		},
		{
			name: "invalid endpoint",
			stream: mocks.NewMockStream[*services.NodeAddress](nil, &services.NodeAddress{
				NodeAccountId:   &services.AccountID{Account: &services.AccountID_AccountNum{AccountNum: 3}},
				ServiceEndpoint: []*services.ServiceEndpoint{{IpAddressV4: []byte{10}, Port: 50211}},
			}),
			check: func(t *testing.T, err error) {
				var protoErr *hErrors.FromProtobufError
				assert.ErrorAs(t, err, &protoErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mockTransport := newTestClient(t, time.Minute)
			mockTransport.On("GetNodes", mock.Anything, mirrorNode, mock.Anything).Return(tt.stream, nil).Once()

			_, err := NewNodeAddressBookQuery().Execute(context.Background(), c)

			require.Error(t, err)
			tt.check(t, err)
			mockTransport.AssertNumberOfCalls(t, "GetNodes", 1)
		})
	}
}

func TestAddressBookSourceUpdatesNetwork(t *testing.T) {
	// given
	c, mockTransport := newTestClient(t, time.Minute)
	mockTransport.On("GetNodes", mock.Anything, mirrorNode, mock.Anything).
		Return(newNodeStream(nil, 3, 4, 5), nil).Once()

	// when
	err := c.UpdateNetwork(context.Background(), NewAddressBookSource(c))

	// then
	require.NoError(t, err)
	assert.Equal(t, 3, c.Network().Len())
	assert.Equal(t, []string{"10.0.0.5:50211"}, c.Network().Addresses(types.NewAccountId(0, 0, 5)))
}
