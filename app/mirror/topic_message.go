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
	"io"
	"strings"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/mirror"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const rstStreamMessage = "RST_STREAM"

// TopicMessageQuery streams the messages of a topic. Messages submitted in chunks are delivered once reassembled
type TopicMessageQuery struct {
	endTime   *time.Time
	limit     uint64
	startTime *time.Time
	topicId   types.EntityId
}

func NewTopicMessageQuery(topicId types.EntityId) *TopicMessageQuery {
	return &TopicMessageQuery{topicId: topicId}
}

func (q *TopicMessageQuery) TopicId() types.EntityId {
	return q.topicId
}

// SetStartTime sets the consensus timestamp of the first message, unset the stream starts with the next message
func (q *TopicMessageQuery) SetStartTime(startTime time.Time) *TopicMessageQuery {
	q.startTime = &startTime
	return q
}

// SetEndTime sets the exclusive consensus timestamp the stream completes at, unset it never completes
func (q *TopicMessageQuery) SetEndTime(endTime time.Time) *TopicMessageQuery {
	q.endTime = &endTime
	return q
}

// SetLimit sets the number of streamed chunks after which the stream completes, 0 for no limit
func (q *TopicMessageQuery) SetLimit(limit uint64) *TopicMessageQuery {
	q.limit = limit
	return q
}

func (q *TopicMessageQuery) Subscribe(ctx context.Context, c *client.Client) (
	*Subscription[types.TopicMessage],
	error,
) {
	return Subscribe[types.TopicMessage](ctx, c, q)
}

// SubscribeWithTimeout is Subscribe with its own retry budget, 0 uses the client SubscriptionTimeout
func (q *TopicMessageQuery) SubscribeWithTimeout(ctx context.Context, c *client.Client, timeout time.Duration) (
	*Subscription[types.TopicMessage],
	error,
) {
	return SubscribeWithTimeout[types.TopicMessage](ctx, c, q, timeout)
}

func (q *TopicMessageQuery) Execute(ctx context.Context, c *client.Client) ([]types.TopicMessage, error) {
	return Execute[types.TopicMessage](ctx, c, q)
}

func (q *TopicMessageQuery) ExecuteWithTimeout(ctx context.Context, c *client.Client, timeout time.Duration) (
	[]types.TopicMessage,
	error,
) {
	return ExecuteWithTimeout[types.TopicMessage](ctx, c, q, timeout)
}

func (q *TopicMessageQuery) subscribe(ctx context.Context, c *client.Client, timeout time.Duration) (
	source[types.TopicMessage],
	error,
) {
	if c.Settings().AutoValidateChecksums {
		if err := q.topicId.ValidateChecksum(c.LedgerId()); err != nil {
			return nil, err
		}
	}

	responses, err := newStream[*mirror.ConsensusTopicResponse](ctx, c, &topicMessageRequest{query: *q}, timeout)
	if err != nil {
		return nil, err
	}

	return &topicMessageSource{assembler: types.NewTopicMessageAssembler(), responses: responses}, nil
}

// topicMessageRequest resumes after the last delivered message with the remaining limit
type topicMessageRequest struct {
	delivered              uint64
	lastConsensusTimestamp *time.Time
	query                  TopicMessageQuery
}

func (r *topicMessageRequest) name() string {
	return "TopicMessageQuery"
}

func (r *topicMessageRequest) connect(
	ctx context.Context,
	mirrorTransport transport.MirrorTransport,
	address string,
) (transport.Stream[*mirror.ConsensusTopicResponse], error) {
	query := &mirror.ConsensusTopicQuery{TopicID: r.query.topicId.ToTopicID()}
	if r.query.limit > 0 {
		if r.delivered >= r.query.limit {
			return completedStream[*mirror.ConsensusTopicResponse]{}, nil
		}
		query.Limit = r.query.limit - r.delivered
	}

	if r.lastConsensusTimestamp != nil {
		query.ConsensusStartTime = types.TimestampToProto(r.lastConsensusTimestamp.Add(time.Nanosecond))
	} else if r.query.startTime != nil {
		query.ConsensusStartTime = types.TimestampToProto(*r.query.startTime)
	}

	if r.query.endTime != nil {
		query.ConsensusEndTime = types.TimestampToProto(*r.query.endTime)
	}

	return mirrorTransport.SubscribeTopic(ctx, address, query)
}

// shouldRetry retries a topic the mirror node doesn't know yet and streams reset by a proxy
func (r *topicMessageRequest) shouldRetry(s *status.Status) bool {
	switch s.Code() {
	case codes.NotFound:
		return true
	case codes.Internal:
		return strings.Contains(s.Message(), rstStreamMessage)
	default:
		return false
	}
}

func (r *topicMessageRequest) update(response *mirror.ConsensusTopicResponse) {
	r.delivered++
	if timestamp := response.GetConsensusTimestamp(); timestamp != nil {
		consensusTimestamp := types.TimestampFromProto(timestamp)
		r.lastConsensusTimestamp = &consensusTimestamp
	}
}

type topicMessageSource struct {
	assembler *types.TopicMessageAssembler
	responses *stream[*mirror.ConsensusTopicResponse]
}

func (s *topicMessageSource) next(ctx context.Context) (types.TopicMessage, error) {
	for {
		response, err := s.responses.next(ctx)
		if err != nil {
			return types.TopicMessage{}, err
		}

		message, err := s.assembler.Add(response)
		if err != nil {
			s.responses.close()
			return types.TopicMessage{}, hErrors.NewFromProtobufError(err)
		}

		if message != nil {
			return *message, nil
		}
	}
}

func (s *topicMessageSource) close() {
	s.responses.close()
}

// completedStream is a stream without any item left
type completedStream[W any] struct{}

func (completedStream[W]) Recv() (W, error) {
	var zero W
	return zero, io.EOF
}
