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
	"context"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

// FileContentsQuery gets the contents of a file, it's paid by the operator
type FileContentsQuery struct {
	Query
	fileId types.EntityId
}

func NewFileContentsQuery(fileId types.EntityId) *FileContentsQuery {
	return &FileContentsQuery{fileId: fileId}
}

func (q *FileContentsQuery) FileId() types.EntityId {
	return q.fileId
}

func (q *FileContentsQuery) Execute(ctx context.Context, c *client.Client) ([]byte, error) {
	return q.ExecuteWithTimeout(ctx, c, 0)
}

func (q *FileContentsQuery) ExecuteWithTimeout(ctx context.Context, c *client.Client, timeout time.Duration) (
	[]byte,
	error,
) {
	return run[[]byte](ctx, c, &q.Query, q, timeout)
}

func (q *FileContentsQuery) GetCost(ctx context.Context, c *client.Client) (types.HbarAmount, error) {
	return getCost[[]byte](ctx, c, &q.Query, q, 0)
}

func (q *FileContentsQuery) name() string {
	return "FileContentsQuery"
}

func (q *FileContentsQuery) method() transport.QueryMethod {
	return transport.FileGetContents
}

func (q *FileContentsQuery) isPaymentRequired() bool {
	return true
}

func (q *FileContentsQuery) toQuery(header *services.QueryHeader) *services.Query {
	return &services.Query{
		Query: &services.Query_FileGetContents{
			FileGetContents: &services.FileGetContentsQuery{Header: header, FileID: q.fileId.ToFileID()},
		},
	}
}

func (q *FileContentsQuery) shouldRetryPrecheck(types.Status) bool {
	return false
}

func (q *FileContentsQuery) shouldRetry(*services.Response) bool {
	return false
}

func (q *FileContentsQuery) makeResponse(response *services.Response) ([]byte, error) {
	return response.GetFileGetContents().GetFileContents().GetContents(), nil
}

func (q *FileContentsQuery) transactionId() *types.TransactionId {
	return nil
}

func (q *FileContentsQuery) validateChecksums(ledgerId types.LedgerId) error {
	return q.fileId.ValidateChecksum(ledgerId)
}
