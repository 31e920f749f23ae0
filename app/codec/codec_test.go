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
	"crypto/sha512"
	"math"
	"testing"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func newSigner(t *testing.T) (types.Signer, hedera.PrivateKey) {
	key, err := hedera.PrivateKeyGenerateEd25519()
	require.NoError(t, err)
	return types.NewPrivateKeySigner(key), key
}

func TestSign(t *testing.T) {
	// given
	signer1, key1 := newSigner(t)
	signer2, _ := newSigner(t)
	body := &services.TransactionBody{Memo: "hello", TransactionFee: 100}

	// when
	signed, err := Sign(body, []types.Signer{signer1, signer2, signer1})

	// then
	require.NoError(t, err)
	decodedBody, sigMap, err := DecodeBody(signed.Transaction)
	require.NoError(t, err)
	assert.True(t, proto.Equal(body, decodedBody))
	assert.Len(t, sigMap.GetSigPair(), 2)
	assert.Equal(t, key1.PublicKey().BytesRaw(), sigMap.GetSigPair()[0].GetPubKeyPrefix())
	assert.True(t, key1.PublicKey().Verify(signed.BodyBytes, sigMap.GetSigPair()[0].GetEd25519()))

	expectedHash := sha512.Sum384(signed.Transaction.GetSignedTransactionBytes())
	assert.Equal(t, expectedHash[:], signed.Hash)
	assert.Len(t, signed.Hash, 48)
}

func TestSignBodyBytesWithExtraSignature(t *testing.T) {
	signer, key := newSigner(t)
	bodyBytes := []byte{0x0a, 0x01}
	extra := &services.SignaturePair{
		PubKeyPrefix: key.PublicKey().BytesRaw(),
		Signature:    &services.SignaturePair_Ed25519{Ed25519: key.Sign(bodyBytes)},
	}

	signed, err := SignBodyBytes(bodyBytes, []types.Signer{signer}, []*services.SignaturePair{extra})

	require.NoError(t, err)
	var signedTransaction services.SignedTransaction
	require.NoError(t, proto.Unmarshal(signed.Transaction.GetSignedTransactionBytes(), &signedTransaction))
	assert.Len(t, signedTransaction.GetSigMap().GetSigPair(), 1)
	assert.Equal(t, bodyBytes, signedTransaction.GetBodyBytes())
}

func TestDecodeBodyInvalid(t *testing.T) {
	_, _, err := DecodeBody(&services.Transaction{SignedTransactionBytes: []byte{0xff, 0xff}})
	assert.Error(t, err)
}

func TestTransactionPrecheck(t *testing.T) {
	status, cost := TransactionPrecheck(&services.TransactionResponse{
		NodeTransactionPrecheckCode: services.ResponseCodeEnum_INSUFFICIENT_TX_FEE,
		Cost:                        25,
	})

	assert.Equal(t, services.ResponseCodeEnum_INSUFFICIENT_TX_FEE, status)
	assert.Equal(t, types.HbarFromTinybars(25), cost)
}

func TestQueryHeader(t *testing.T) {
	queries := map[string]*services.Query{
		"balance": {Query: &services.Query_CryptogetAccountBalance{
			CryptogetAccountBalance: &services.CryptoGetAccountBalanceQuery{},
		}},
		"receipt": {Query: &services.Query_TransactionGetReceipt{
			TransactionGetReceipt: &services.TransactionGetReceiptQuery{},
		}},
		"record": {Query: &services.Query_TransactionGetRecord{
			TransactionGetRecord: &services.TransactionGetRecordQuery{},
		}},
		"file contents": {Query: &services.Query_FileGetContents{
			FileGetContents: &services.FileGetContentsQuery{},
		}},
	}

	for name, query := range queries {
		t.Run(name, func(t *testing.T) {
			header := NewQueryHeader(&services.Transaction{}, true)

			require.NoError(t, SetQueryHeader(query, header))

			actual := QueryHeader(query)
			assert.Same(t, header, actual)
			assert.Equal(t, services.ResponseType_COST_ANSWER, actual.GetResponseType())
		})
	}
}

func TestQueryHeaderUnsupported(t *testing.T) {
	query := &services.Query{}

	assert.Nil(t, QueryHeader(query))
	assert.Error(t, SetQueryHeader(query, NewQueryHeader(nil, false)))
}

func TestQueryPrecheck(t *testing.T) {
	tests := []struct {
		name           string
		response       *services.Response
		expectedStatus types.Status
		expectedCost   types.HbarAmount
	}{
		{
			name: "receipt",
			response: &services.Response{Response: &services.Response_TransactionGetReceipt{
				TransactionGetReceipt: &services.TransactionGetReceiptResponse{
					Header: &services.ResponseHeader{NodeTransactionPrecheckCode: services.ResponseCodeEnum_RECEIPT_NOT_FOUND},
				},
			}},
			expectedStatus: services.ResponseCodeEnum_RECEIPT_NOT_FOUND,
			expectedCost:   types.ZeroHbar,
		},
		{
			name: "file contents cost",
			response: &services.Response{Response: &services.Response_FileGetContents{
				FileGetContents: &services.FileGetContentsResponse{
					Header: &services.ResponseHeader{
						NodeTransactionPrecheckCode: services.ResponseCodeEnum_OK,
						Cost:                        1500,
					},
				},
			}},
			expectedStatus: services.ResponseCodeEnum_OK,
			expectedCost:   types.HbarFromTinybars(1500),
		},
		{
			name:           "missing header",
			response:       &services.Response{},
			expectedStatus: services.ResponseCodeEnum_OK,
			expectedCost:   types.ZeroHbar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := QueryPrecheck(tt.response)
			cost, err := QueryCost(tt.response)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedCost, cost)
		})
	}
}

func TestQueryCostOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		cost uint64
	}{
		{name: "max int64 plus one", cost: math.MaxInt64 + 1},
		{name: "max uint64", cost: math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			response := &services.Response{Response: &services.Response_CryptogetAccountBalance{
				CryptogetAccountBalance: &services.CryptoGetAccountBalanceResponse{
					Header: &services.ResponseHeader{Cost: tt.cost},
				},
			}}

			// when
			cost, err := QueryCost(response)

			// then
			assert.Error(t, err)
			assert.Equal(t, types.ZeroHbar, cost)
		})
	}
}
