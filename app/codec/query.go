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

package codec

import (
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/tools"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/pkg/errors"
)

// QueryHeader returns the header of the query, nil for an unsupported query
func QueryHeader(query *services.Query) *services.QueryHeader {
	switch q := query.GetQuery().(type) {
	case *services.Query_CryptogetAccountBalance:
		return q.CryptogetAccountBalance.GetHeader()
	case *services.Query_TransactionGetReceipt:
		return q.TransactionGetReceipt.GetHeader()
	case *services.Query_TransactionGetRecord:
		return q.TransactionGetRecord.GetHeader()
	case *services.Query_FileGetContents:
		return q.FileGetContents.GetHeader()
	default:
		return nil
	}
}

// SetQueryHeader replaces the header of the query in place
func SetQueryHeader(query *services.Query, header *services.QueryHeader) error {
	switch q := query.GetQuery().(type) {
	case *services.Query_CryptogetAccountBalance:
		q.CryptogetAccountBalance.Header = header
	case *services.Query_TransactionGetReceipt:
		q.TransactionGetReceipt.Header = header
	case *services.Query_TransactionGetRecord:
		q.TransactionGetRecord.Header = header
	case *services.Query_FileGetContents:
		q.FileGetContents.Header = header
	default:
		return errors.Errorf("Unsupported query type %T", q)
	}

	return nil
}

// NewQueryHeader builds the header for an answer or a cost query with the optional payment
func NewQueryHeader(payment *services.Transaction, costOnly bool) *services.QueryHeader {
	responseType := services.ResponseType_ANSWER_ONLY
	if costOnly {
		responseType = services.ResponseType_COST_ANSWER
	}

	return &services.QueryHeader{Payment: payment, ResponseType: responseType}
}

// ResponseHeader returns the header of the response, nil for an unsupported response
func ResponseHeader(response *services.Response) *services.ResponseHeader {
	switch r := response.GetResponse().(type) {
	case *services.Response_CryptogetAccountBalance:
		return r.CryptogetAccountBalance.GetHeader()
	case *services.Response_TransactionGetReceipt:
		return r.TransactionGetReceipt.GetHeader()
	case *services.Response_TransactionGetRecord:
		return r.TransactionGetRecord.GetHeader()
	case *services.Response_FileGetContents:
		return r.FileGetContents.GetHeader()
	default:
		return nil
	}
}

// QueryPrecheck returns the precheck code in the header of the response
func QueryPrecheck(response *services.Response) types.Status {
	return ResponseHeader(response).GetNodeTransactionPrecheckCode()
}

// QueryCost returns the cost in the header of the response
func QueryCost(response *services.Response) (types.HbarAmount, error) {
	cost, err := tools.CastToInt64(ResponseHeader(response).GetCost())
	if err != nil {
		return types.ZeroHbar, errors.Wrap(err, "invalid query cost")
	}

	return types.HbarFromTinybars(cost), nil
}
