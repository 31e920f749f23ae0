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
	"strings"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/mirror"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const addressBookFileNum = 102

// NodeAddressBookQuery streams the entries of a network address book from the mirror node
type NodeAddressBookQuery struct {
	fileId types.EntityId
	limit  int32
}

func NewNodeAddressBookQuery() *NodeAddressBookQuery {
	return &NodeAddressBookQuery{fileId: types.NewEntityId(0, 0, addressBookFileNum)}
}

func (q *NodeAddressBookQuery) FileId() types.EntityId {
	return q.fileId
}

func (q *NodeAddressBookQuery) SetFileId(fileId types.EntityId) *NodeAddressBookQuery {
	q.fileId = fileId
	return q
}

// SetLimit sets the maximum number of entries streamed, 0 for all of them
func (q *NodeAddressBookQuery) SetLimit(limit int32) *NodeAddressBookQuery {
	q.limit = limit
	return q
}

func (q *NodeAddressBookQuery) Subscribe(ctx context.Context, c *client.Client) (
	*Subscription[types.NodeAddress],
	error,
) {
	return Subscribe[types.NodeAddress](ctx, c, q)
}

func (q *NodeAddressBookQuery) Execute(ctx context.Context, c *client.Client) (types.NodeAddressBook, error) {
	return q.ExecuteWithTimeout(ctx, c, 0)
}

// ExecuteWithTimeout is Execute with its own retry budget, 0 uses the client SubscriptionTimeout
func (q *NodeAddressBookQuery) ExecuteWithTimeout(ctx context.Context, c *client.Client, timeout time.Duration) (
	types.NodeAddressBook,
	error,
) {
	entries, err := ExecuteWithTimeout[types.NodeAddress](ctx, c, q, timeout)
	if err != nil {
		return types.NodeAddressBook{}, err
	}

	return types.NodeAddressBook{Entries: entries}, nil
}

func (q *NodeAddressBookQuery) subscribe(ctx context.Context, c *client.Client, timeout time.Duration) (
	source[types.NodeAddress],
	error,
) {
	if c.Settings().AutoValidateChecksums {
		if err := q.fileId.ValidateChecksum(c.LedgerId()); err != nil {
			return nil, err
		}
	}

	nodes, err := newStream[*services.NodeAddress](ctx, c, &nodeAddressRequest{query: *q}, timeout)
	if err != nil {
		return nil, err
	}

	return &nodeAddressSource{nodes: nodes}, nil
}

// nodeAddressRequest restarts the address book from the beginning and skips the entries already delivered
type nodeAddressRequest struct {
	delivered int
	query     NodeAddressBookQuery
}

func (r *nodeAddressRequest) name() string {
	return "NodeAddressBookQuery"
}

func (r *nodeAddressRequest) connect(
	ctx context.Context,
	mirrorTransport transport.MirrorTransport,
	address string,
) (transport.Stream[*services.NodeAddress], error) {
	query := &mirror.AddressBookQuery{FileId: r.query.fileId.ToFileID(), Limit: r.query.limit}
	nodes, err := mirrorTransport.GetNodes(ctx, address, query)
	if err != nil {
		return nil, err
	}

	return &skipStream[*services.NodeAddress]{skip: r.delivered, stream: nodes}, nil
}

func (r *nodeAddressRequest) shouldRetry(s *status.Status) bool {
	switch s.Code() {
	case codes.DeadlineExceeded:
		return true
	case codes.Internal:
		return strings.Contains(s.Message(), rstStreamMessage)
	default:
		return false
	}
}

func (r *nodeAddressRequest) update(*services.NodeAddress) {
	r.delivered++
}

type nodeAddressSource struct {
	nodes *stream[*services.NodeAddress]
}

func (s *nodeAddressSource) next(ctx context.Context) (types.NodeAddress, error) {
	node, err := s.nodes.next(ctx)
	if err != nil {
		return types.NodeAddress{}, err
	}

	address, err := types.NodeAddressFromProto(node)
	if err != nil {
		s.nodes.close()
		return types.NodeAddress{}, hErrors.NewFromProtobufError(err)
	}

	return address, nil
}

func (s *nodeAddressSource) close() {
	s.nodes.close()
}

// skipStream drops the first items of a stream
type skipStream[W any] struct {
	skip   int
	stream transport.Stream[W]
}

func (s *skipStream[W]) Recv() (W, error) {
	for ; s.skip > 0; s.skip-- {
		if _, err := s.stream.Recv(); err != nil {
			var zero W
			return zero, err
		}
	}

	return s.stream.Recv()
}

// AddressBookSource is the address book of the client's mirror network, it keeps the client network up to date
type AddressBookSource struct {
	client *client.Client
	query  *NodeAddressBookQuery
}

func NewAddressBookSource(c *client.Client) *AddressBookSource {
	return &AddressBookSource{client: c, query: NewNodeAddressBookQuery()}
}

func (s *AddressBookSource) AddressBook(ctx context.Context) (types.NodeAddressBook, error) {
	return s.query.Execute(ctx, s.client)
}
