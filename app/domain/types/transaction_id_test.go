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

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Ptr(v int32) *int32 {
	return &v
}

func TestTransactionIdFromString(t *testing.T) {
	payer := NewAccountId(0, 0, 31415)
	validStart := time.Unix(1641088801, 2).UTC()

	tests := []struct {
		name     string
		input    string
		expected TransactionId
		str      string
	}{
		{
			name:     "Plain",
			input:    "0.0.31415@1641088801.2",
			expected: TransactionId{AccountId: payer, ValidStart: validStart},
		},
		{
			name:     "Scheduled",
			input:    "0.0.31415@1641088801.2?scheduled",
			expected: TransactionId{AccountId: payer, ValidStart: validStart, Scheduled: true},
		},
		{
			name:     "Nonce",
			input:    "0.0.31415@1641088801.2/4",
			expected: TransactionId{AccountId: payer, ValidStart: validStart, Nonce: int32Ptr(4)},
		},
		{
			name:     "ScheduledNonce",
			input:    "0.0.31415@1641088801.2?scheduled/4",
			expected: TransactionId{AccountId: payer, ValidStart: validStart, Scheduled: true, Nonce: int32Ptr(4)},
		},
		{
			name:  "MirrorForm",
			input: "0.0.2247604-1691870420-078765024",
			expected: TransactionId{
				AccountId:  NewAccountId(0, 0, 2247604),
				ValidStart: time.Unix(1691870420, 78765024).UTC(),
			},
			str: "0.0.2247604@1691870420.78765024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := TransactionIdFromString(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(actual), "expected %s, got %s", tt.expected, actual)

			expectedString := tt.str
			if expectedString == "" {
				expectedString = tt.input
			}
			assert.Equal(t, expectedString, actual.String())
		})
	}
}

func TestTransactionIdFromStringInvalid(t *testing.T) {
	inputs := []string{
		"",
		"0.0.31415?1641088801.2",
		"0.0.31415/1641088801.2",
		"0.0.31415?scheduled/1412@1641088801.2",
		"0.0.31415@1641088801",
		"0.0.31415@1641088801.1000000000",
		"0.0.31415@1641088801.-1",
		"0.0.31415@1641088801.2/x",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := TransactionIdFromString(input)
			var parseError *ParseError
			assert.ErrorAs(t, err, &parseError)
		})
	}
}

func TestTransactionIdProtoRoundTrip(t *testing.T) {
	transactionIds := []TransactionId{
		NewTransactionIdWithValidStart(NewAccountId(0, 0, 5), time.Unix(1641088801, 999999999)),
		{AccountId: NewAccountId(1, 2, 3), ValidStart: time.Unix(10, 0).UTC(), Scheduled: true, Nonce: int32Ptr(7)},
	}

	for _, transactionId := range transactionIds {
		t.Run(transactionId.String(), func(t *testing.T) {
			actual, err := TransactionIdFromProto(transactionId.ToProto())
			require.NoError(t, err)
			assert.True(t, transactionId.Equal(actual))
		})
	}
}

func TestTransactionIdFromProtoZeroNonce(t *testing.T) {
	pb := NewTransactionIdWithValidStart(NewAccountId(0, 0, 5), time.Unix(1, 0)).ToProto()
	pb.Nonce = 0

	actual, err := TransactionIdFromProto(pb)
	require.NoError(t, err)
	assert.Nil(t, actual.Nonce)
}

func TestTransactionIdFromProtoMissingValidStart(t *testing.T) {
	pb := NewTransactionIdWithValidStart(NewAccountId(0, 0, 5), time.Unix(1, 0)).ToProto()
	pb.TransactionValidStart = nil

	_, err := TransactionIdFromProto(pb)
	assert.Error(t, err)

	_, err = TransactionIdFromProto(nil)
	assert.Error(t, err)
}

func TestGenerateTransactionId(t *testing.T) {
	payer := NewAccountId(0, 0, 2)
	for i := 0; i < 20; i++ {
		before := time.Now()
		transactionId := GenerateTransactionId(payer)
		after := time.Now()

		assert.Equal(t, payer, transactionId.AccountId)
		assert.False(t, transactionId.Scheduled)
		assert.Nil(t, transactionId.Nonce)
		assert.False(t, transactionId.ValidStart.After(after.Add(-minValidStartBackdate)))
		assert.False(t, transactionId.ValidStart.Before(before.Add(-maxValidStartBackdate)))
	}
}

func TestTransactionIdNext(t *testing.T) {
	first := TransactionId{AccountId: NewAccountId(0, 0, 2), ValidStart: time.Unix(5, 0).UTC(), Scheduled: true}
	second := first.Next()
	third := second.Next()

	assert.True(t, second.ValidStart.After(first.ValidStart))
	assert.True(t, third.ValidStart.After(second.ValidStart))
	assert.Equal(t, first.AccountId, third.AccountId)
	assert.True(t, third.Scheduled)
	assert.False(t, first.Equal(second))
}

func TestTransactionIdValidateChecksum(t *testing.T) {
	transactionId, err := TransactionIdFromString("0.0.123-vfmkw@1641088801.2")
	require.NoError(t, err)

	assert.NoError(t, transactionId.ValidateChecksum(LedgerIdMainnet()))
	assert.Error(t, transactionId.ValidateChecksum(LedgerIdTestnet()))
}
