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
	"context"
	"testing"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestTimedOutErrorUnwrap(t *testing.T) {
	cause := &PrecheckError{Kind: PrecheckTransactionNoId, Status: services.ResponseCodeEnum_BUSY}
	err := errors.WithStack(&TimedOutError{Cause: cause})

	var timedOut *TimedOutError
	assert.ErrorAs(t, err, &timedOut)

	var precheck *PrecheckError
	assert.ErrorAs(t, err, &precheck)
	assert.Equal(t, services.ResponseCodeEnum_BUSY, precheck.Status)

	assert.Equal(t, "request timed out", (&TimedOutError{}).Error())
}

func TestTimedOutErrorWrapsContextError(t *testing.T) {
	err := &TimedOutError{Cause: context.DeadlineExceeded}
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSentinels(t *testing.T) {
	err := errors.Wrap(ErrTransactionFrozen, "failed to set memo")
	assert.ErrorIs(t, err, ErrTransactionFrozen)
	assert.NotErrorIs(t, err, ErrNotFrozen)
}

func TestErrorMessages(t *testing.T) {
	transactionId := types.NewTransactionIdWithValidStart(types.NewAccountId(0, 0, 2), time.Unix(1641088801, 2))
	cost := types.HbarFromTinybars(5)

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "ChunkCountExceeded",
			err:      &ChunkCountExceededError{UsedChunks: 21, MaxChunks: 20},
			expected: "message requires 21 chunks but max chunks is 20",
		},
		{
			name:     "PrecheckWithTransactionId",
			err:      &PrecheckError{Kind: PrecheckTransaction, Status: services.ResponseCodeEnum_INVALID_SIGNATURE, TransactionId: &transactionId},
			expected: "transaction 0.0.2@1641088801.2 failed precheck with status INVALID_SIGNATURE",
		},
		{
			name:     "PrecheckWithCost",
			err:      &PrecheckError{Kind: PrecheckQueryNoPayment, Status: services.ResponseCodeEnum_INSUFFICIENT_TX_FEE, Cost: &cost},
			expected: "query without payment failed precheck with status INSUFFICIENT_TX_FEE, cost 5 tℏ",
		},
		{
			name:     "GrpcStatus",
			err:      &GrpcStatusError{Code: codes.PermissionDenied, Message: "denied"},
			expected: "failed to complete request: PermissionDenied: denied",
		},
		{
			name:     "ReceiptStatusUnknownTransaction",
			err:      &ReceiptStatusError{Status: services.ResponseCodeEnum_INVALID_SIGNATURE},
			expected: "receipt for transaction <unknown> contained error status INVALID_SIGNATURE",
		},
		{
			name:     "MaxQueryPaymentExceeded",
			err:      &MaxQueryPaymentExceededError{QueryCost: types.NewHbar(2), MaxQueryPayment: types.NewHbar(1)},
			expected: "cost of 2 ℏ exceeds max query payment of 1 ℏ",
		},
		{
			name:     "ResponseStatusUnrecognized",
			err:      &ResponseStatusUnrecognizedError{Status: 99999},
			expected: "response status 99999 is unrecognized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestFromProtobufError(t *testing.T) {
	cause := errors.New("missing receipt")
	err := NewFromProtobufError(cause)

	var fromProtobuf *FromProtobufError
	assert.ErrorAs(t, err, &fromProtobuf)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "missing receipt")
}
