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
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ed25519PublicKey   = ed25519Sk.PublicKey()
	secp256k1PublicKey = ecdsaSecp256k1Sk.PublicKey()
	evmAddress         = common.HexToAddress("0x00000000000000000000000000000000000004d2")
)

func TestAccountIdFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected AccountId
	}{
		{name: "Numeric", input: "0.0.5", expected: NewAccountId(0, 0, 5)},
		{name: "Checksum", input: "0.0.123-vfmkw", expected: NewAccountId(0, 0, 123)},
		{
			name:     "Ed25519Alias",
			input:    "0.0." + ed25519PublicKey.StringRaw(),
			expected: NewAccountIdFromAliasKey(0, 0, ed25519PublicKey),
		},
		{
			name:     "Secp256k1Alias",
			input:    "1.2." + secp256k1PublicKey.StringRaw(),
			expected: NewAccountIdFromAliasKey(1, 2, secp256k1PublicKey),
		},
		{
			name:     "EvmAddress",
			input:    "0.0." + hex.EncodeToString(evmAddress.Bytes()),
			expected: NewAccountIdFromEvmAddress(0, 0, evmAddress),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := AccountIdFromString(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(actual), "expected %s, got %s", tt.expected, actual)
		})
	}
}

func TestAccountIdFromStringInvalid(t *testing.T) {
	for _, input := range []string{"", "0.0.abc", "0.0." + ed25519PublicKey.StringRaw() + "zz", "x.0." + hex.EncodeToString(evmAddress.Bytes())} {
		t.Run(input, func(t *testing.T) {
			_, err := AccountIdFromString(input)
			assert.Error(t, err)
		})
	}
}

func TestAccountIdString(t *testing.T) {
	tests := []struct {
		name     string
		input    AccountId
		expected string
	}{
		{name: "Numeric", input: NewAccountId(0, 0, 5), expected: "0.0.5"},
		{
			name:     "Alias",
			input:    NewAccountIdFromAliasKey(0, 0, ed25519PublicKey),
			expected: "0.0." + ed25519PublicKey.StringRaw(),
		},
		{
			name:     "EvmAddress",
			input:    NewAccountIdFromEvmAddress(0, 0, evmAddress),
			expected: "0.0.00000000000000000000000000000000000004d2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}

func TestAccountIdProtoRoundTrip(t *testing.T) {
	accountIds := []AccountId{
		NewAccountId(0, 0, 5),
		NewAccountId(1, 2, 3),
		NewAccountIdFromAliasKey(0, 0, ed25519PublicKey),
		NewAccountIdFromAliasKey(0, 0, secp256k1PublicKey),
		NewAccountIdFromEvmAddress(0, 0, evmAddress),
	}

	for _, accountId := range accountIds {
		t.Run(accountId.String(), func(t *testing.T) {
			actual, err := AccountIdFromProto(accountId.ToProto())
			require.NoError(t, err)
			assert.True(t, accountId.Equal(actual))
		})
	}
}

func TestAccountIdFromProtoNil(t *testing.T) {
	_, err := AccountIdFromProto(nil)
	assert.Error(t, err)

	actual, err := AccountIdFromProto(&services.AccountID{ShardNum: 1})
	require.NoError(t, err)
	assert.Equal(t, NewAccountId(1, 0, 0), actual)
}

func TestAccountIdChecksum(t *testing.T) {
	accountId := NewAccountId(0, 0, 123)
	actual, err := accountId.ToStringWithChecksum(LedgerIdTestnet())
	require.NoError(t, err)
	assert.Equal(t, "0.0.123-esxsf", actual)

	_, err = NewAccountIdFromEvmAddress(0, 0, evmAddress).ToStringWithChecksum(LedgerIdTestnet())
	assert.Error(t, err)

	parsed, err := AccountIdFromString("0.0.123-esxsf")
	require.NoError(t, err)
	assert.Equal(t, "esxsf", parsed.Checksum())
	assert.NoError(t, parsed.ValidateChecksum(LedgerIdTestnet()))
	assert.Error(t, parsed.ValidateChecksum(LedgerIdMainnet()))
	assert.Equal(t, NewEntityId(0, 0, 123), parsed.EntityId())
}

func TestAccountIdIsZeroAndHasAlias(t *testing.T) {
	assert.True(t, AccountId{}.IsZero())
	assert.False(t, NewAccountId(0, 0, 1).IsZero())
	assert.False(t, NewAccountIdFromAliasKey(0, 0, ed25519PublicKey).IsZero())
	assert.True(t, NewAccountIdFromEvmAddress(0, 0, evmAddress).HasAlias())
	assert.False(t, NewAccountId(0, 0, 1).HasAlias())
	assert.False(t, NewAccountId(0, 0, 0).Equal(NewAccountIdFromEvmAddress(0, 0, evmAddress)))
}
