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
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/pkg/errors"
)

const evmAddressHexLength = 2 * common.AddressLength

// AccountId is either a numeric account id, a public key alias or an evm address alias. Exactly one form is active
type AccountId struct {
	entityId   EntityId
	aliasKey   *hedera.PublicKey
	evmAddress *common.Address
}

func NewAccountId(shard, realm, num uint64) AccountId {
	return AccountId{entityId: NewEntityId(shard, realm, num)}
}

func NewAccountIdFromEntityId(entityId EntityId) AccountId {
	return AccountId{entityId: entityId}
}

// NewAccountIdFromAliasKey creates a HIP-32 alias account id
func NewAccountIdFromAliasKey(shard, realm uint64, key hedera.PublicKey) AccountId {
	return AccountId{entityId: NewEntityId(shard, realm, 0), aliasKey: &key}
}

func NewAccountIdFromEvmAddress(shard, realm uint64, address common.Address) AccountId {
	return AccountId{entityId: NewEntityId(shard, realm, 0), evmAddress: &address}
}

// AccountIdFromString parses 0.0.5, 0.0.5-abcde, 0.0.<raw public key hex> and 0.0.<evm address hex>
func AccountIdFromString(value string) (AccountId, error) {
	lastDot := strings.LastIndex(value, ".")
	if lastDot == -1 {
		entityId, err := EntityIdFromString(value)
		if err != nil {
			return AccountId{}, err
		}
		return AccountId{entityId: entityId}, nil
	}

	tail := value[lastDot+1:]
	if !isAliasTail(tail) {
		entityId, err := EntityIdFromString(value)
		if err != nil {
			return AccountId{}, err
		}
		return AccountId{entityId: entityId}, nil
	}

	prefix, err := EntityIdFromString(value[:lastDot] + ".0")
	if err != nil {
		return AccountId{}, err
	}

	if len(tail) == evmAddressHexLength {
		raw, err := hex.DecodeString(tail)
		if err != nil {
			return AccountId{}, wrapParseError(value, err)
		}
		return NewAccountIdFromEvmAddress(prefix.ShardNum, prefix.RealmNum, common.BytesToAddress(raw)), nil
	}

	key, err := hedera.PublicKeyFromString(tail)
	if err != nil {
		return AccountId{}, wrapParseError(value, err)
	}

	return NewAccountIdFromAliasKey(prefix.ShardNum, prefix.RealmNum, key), nil
}

// AccountIdFromProto converts the network account id. Key aliases are decoded from the serialized Key message,
// 20-byte aliases are evm addresses
func AccountIdFromProto(pb *services.AccountID) (AccountId, error) {
	if pb == nil {
		return AccountId{}, errors.New("nil AccountID")
	}

	shard, realm := uint64(pb.ShardNum), uint64(pb.RealmNum)
	switch account := pb.GetAccount().(type) {
	case *services.AccountID_AccountNum:
		return NewAccountId(shard, realm, uint64(account.AccountNum)), nil
	case *services.AccountID_Alias:
		if len(account.Alias) == common.AddressLength {
			return NewAccountIdFromEvmAddress(shard, realm, common.BytesToAddress(account.Alias)), nil
		}

		key, err := NewPublicKeyFromAlias(account.Alias)
		if err != nil {
			return AccountId{}, err
		}
		return NewAccountIdFromAliasKey(shard, realm, key), nil
	default:
		return NewAccountId(shard, realm, 0), nil
	}
}

func (a AccountId) AliasKey() *hedera.PublicKey {
	return a.aliasKey
}

func (a AccountId) EvmAddress() *common.Address {
	return a.evmAddress
}

// EntityId returns the numeric form without checksum; for aliases the num is zero
func (a AccountId) EntityId() EntityId {
	return a.entityId.WithoutChecksum()
}

func (a AccountId) Checksum() string {
	return a.entityId.Checksum()
}

func (a AccountId) HasAlias() bool {
	return a.aliasKey != nil || a.evmAddress != nil
}

func (a AccountId) IsZero() bool {
	return !a.HasAlias() && a.entityId.IsZero()
}

func (a AccountId) Equal(other AccountId) bool {
	if !a.entityId.Equal(other.entityId) {
		return false
	}

	switch {
	case a.aliasKey != nil:
		return other.aliasKey != nil && bytes.Equal(a.aliasKey.BytesRaw(), other.aliasKey.BytesRaw())
	case a.evmAddress != nil:
		return other.evmAddress != nil && *a.evmAddress == *other.evmAddress
	default:
		return !other.HasAlias()
	}
}

func (a AccountId) String() string {
	switch {
	case a.aliasKey != nil:
		return fmt.Sprintf("%d.%d.%s", a.entityId.ShardNum, a.entityId.RealmNum, a.aliasKey.StringRaw())
	case a.evmAddress != nil:
		return fmt.Sprintf("%d.%d.%s", a.entityId.ShardNum, a.entityId.RealmNum,
			hex.EncodeToString(a.evmAddress.Bytes()))
	default:
		return a.entityId.String()
	}
}

// ToStringWithChecksum fails for aliases, a checksum is only defined for the numeric form
func (a AccountId) ToStringWithChecksum(ledgerId LedgerId) (string, error) {
	if a.HasAlias() {
		return "", errors.Errorf("cannot create a checksum for alias account id %s", a)
	}
	return a.entityId.ToStringWithChecksum(ledgerId), nil
}

func (a AccountId) ValidateChecksum(ledgerId LedgerId) error {
	if a.HasAlias() {
		return nil
	}
	return a.entityId.ValidateChecksum(ledgerId)
}

func (a AccountId) ToProto() *services.AccountID {
	pb := &services.AccountID{ShardNum: int64(a.entityId.ShardNum), RealmNum: int64(a.entityId.RealmNum)}
	switch {
	case a.aliasKey != nil:
		// conversion can't fail for keys that were parsed or generated by the sdk
		alias, _ := PublicKey{PublicKey: *a.aliasKey}.ToAlias()
		pb.Account = &services.AccountID_Alias{Alias: alias}
	case a.evmAddress != nil:
		pb.Account = &services.AccountID_Alias{Alias: a.evmAddress.Bytes()}
	default:
		pb.Account = &services.AccountID_AccountNum{AccountNum: int64(a.entityId.EntityNum)}
	}

	return pb
}

func isAliasTail(tail string) bool {
	if len(tail) < evmAddressHexLength {
		return false
	}

	_, err := hex.DecodeString(tail)
	return err == nil
}

// UnmarshalText parses the string form, it lets account ids be used as config values
func (a *AccountId) UnmarshalText(text []byte) error {
	parsed, err := AccountIdFromString(string(text))
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}
