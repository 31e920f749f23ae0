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
	"fmt"
	"strconv"
	"strings"

	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

const (
	shardBits  int    = 15
	realmBits  int    = 16
	numberBits int    = 32
	shardMask  uint64 = (uint64(1) << shardBits) - 1
	realmMask  uint64 = (uint64(1) << realmBits) - 1
	numberMask uint64 = (uint64(1) << numberBits) - 1

	checksumLength = 5
)

// EntityId is the shard.realm.num triple shared by accounts, contracts, files, tokens, topics and schedules. The
// checksum is optional and only carried for validation, it does not take part in Equal
type EntityId struct {
	ShardNum  uint64
	RealmNum  uint64
	EntityNum uint64
	checksum  string
}

func NewEntityId(shard, realm, num uint64) EntityId {
	return EntityId{ShardNum: shard, RealmNum: realm, EntityNum: num}
}

// Checksum returns the checksum parsed along with the id, empty if there was none
func (e EntityId) Checksum() string {
	return e.checksum
}

func (e EntityId) Equal(other EntityId) bool {
	return e.ShardNum == other.ShardNum && e.RealmNum == other.RealmNum && e.EntityNum == other.EntityNum
}

// Compare orders entity ids by shard, then realm, then num
func (e EntityId) Compare(other EntityId) int {
	switch {
	case e.ShardNum != other.ShardNum:
		return compareUint64(e.ShardNum, other.ShardNum)
	case e.RealmNum != other.RealmNum:
		return compareUint64(e.RealmNum, other.RealmNum)
	default:
		return compareUint64(e.EntityNum, other.EntityNum)
	}
}

func (e EntityId) IsZero() bool {
	return e.ShardNum == 0 && e.RealmNum == 0 && e.EntityNum == 0
}

func (e EntityId) String() string {
	return fmt.Sprintf("%d.%d.%d", e.ShardNum, e.RealmNum, e.EntityNum)
}

// ToStringWithChecksum returns the id with the checksum for the ledger appended, e.g. 0.0.123-vfmkw
func (e EntityId) ToStringWithChecksum(ledgerId LedgerId) string {
	return fmt.Sprintf("%s-%s", e.String(), generateChecksum(ledgerId, e.String()))
}

// ValidateChecksum checks the parsed checksum against the ledger. An id without a checksum is always valid
func (e EntityId) ValidateChecksum(ledgerId LedgerId) error {
	if e.checksum == "" {
		return nil
	}

	expected := generateChecksum(ledgerId, e.String())
	if expected != e.checksum {
		return &BadEntityIdError{
			Shard:            e.ShardNum,
			Realm:            e.RealmNum,
			Num:              e.EntityNum,
			PresentChecksum:  e.checksum,
			ExpectedChecksum: expected,
		}
	}

	return nil
}

// WithoutChecksum drops the checksum, the result is safe to use as a map key
func (e EntityId) WithoutChecksum() EntityId {
	return EntityId{ShardNum: e.ShardNum, RealmNum: e.RealmNum, EntityNum: e.EntityNum}
}

func (e EntityId) ToFileID() *services.FileID {
	return &services.FileID{ShardNum: int64(e.ShardNum), RealmNum: int64(e.RealmNum), FileNum: int64(e.EntityNum)}
}

func (e EntityId) ToTopicID() *services.TopicID {
	return &services.TopicID{ShardNum: int64(e.ShardNum), RealmNum: int64(e.RealmNum), TopicNum: int64(e.EntityNum)}
}

func (e EntityId) ToTokenID() *services.TokenID {
	return &services.TokenID{ShardNum: int64(e.ShardNum), RealmNum: int64(e.RealmNum), TokenNum: int64(e.EntityNum)}
}

func (e EntityId) ToScheduleID() *services.ScheduleID {
	return &services.ScheduleID{
		ShardNum:    int64(e.ShardNum),
		RealmNum:    int64(e.RealmNum),
		ScheduleNum: int64(e.EntityNum),
	}
}

func (e EntityId) ToContractID() *services.ContractID {
	return &services.ContractID{
		ShardNum: int64(e.ShardNum),
		RealmNum: int64(e.RealmNum),
		Contract: &services.ContractID_ContractNum{ContractNum: int64(e.EntityNum)},
	}
}

// EntityIdFromString parses shard.realm.num with an optional -checksum suffix. A bare number is treated as 0.0.num
func EntityIdFromString(value string) (EntityId, error) {
	address, checksum, hasChecksum := strings.Cut(value, "-")
	if hasChecksum && !isChecksum(checksum) {
		return EntityId{}, newParseError(value, "expected checksum to be exactly %d lowercase letters", checksumLength)
	}

	parts := strings.Split(address, ".")
	var nums [3]uint64
	switch len(parts) {
	case 1:
		num, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return EntityId{}, wrapParseError(value, err)
		}
		nums[2] = num
	case 3:
		for i, part := range parts {
			num, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return EntityId{}, wrapParseError(value, err)
			}
			nums[i] = num
		}
	default:
		return EntityId{}, newParseError(value, "expected <shard>.<realm>.<num>")
	}

	return EntityId{ShardNum: nums[0], RealmNum: nums[1], EntityNum: nums[2], checksum: checksum}, nil
}

func EntityIdFromFileID(id *services.FileID) EntityId {
	if id == nil {
		return EntityId{}
	}
	return NewEntityId(uint64(id.ShardNum), uint64(id.RealmNum), uint64(id.FileNum))
}

func EntityIdFromTopicID(id *services.TopicID) EntityId {
	if id == nil {
		return EntityId{}
	}
	return NewEntityId(uint64(id.ShardNum), uint64(id.RealmNum), uint64(id.TopicNum))
}

func EntityIdFromTokenID(id *services.TokenID) EntityId {
	if id == nil {
		return EntityId{}
	}
	return NewEntityId(uint64(id.ShardNum), uint64(id.RealmNum), uint64(id.TokenNum))
}

func EntityIdFromScheduleID(id *services.ScheduleID) EntityId {
	if id == nil {
		return EntityId{}
	}
	return NewEntityId(uint64(id.ShardNum), uint64(id.RealmNum), uint64(id.ScheduleNum))
}

func EntityIdFromContractID(id *services.ContractID) EntityId {
	if id == nil {
		return EntityId{}
	}
	return NewEntityId(uint64(id.ShardNum), uint64(id.RealmNum), uint64(id.GetContractNum()))
}

// EncodeEntityId encodes the shard, realm and num into the mirror node database form
func EncodeEntityId(e EntityId) (int64, error) {
	if e.ShardNum > shardMask || e.RealmNum > realmMask || e.EntityNum > numberMask {
		return 0, fmt.Errorf("invalid parameters provided for encoding: %s", e)
	}

	return int64(e.EntityNum | e.RealmNum<<numberBits | e.ShardNum<<(realmBits+numberBits)), nil
}

// DecodeEntityId decodes the mirror node database form of an entity id
func DecodeEntityId(encodedId int64) (EntityId, error) {
	if encodedId < 0 {
		return EntityId{}, fmt.Errorf("encodedId must be non-negative: %d", encodedId)
	}

	id := uint64(encodedId)
	return EntityId{
		ShardNum:  id >> (realmBits + numberBits),
		RealmNum:  (id >> numberBits) & realmMask,
		EntityNum: id & numberMask,
	}, nil
}

func isChecksum(value string) bool {
	if len(value) != checksumLength {
		return false
	}

	for _, c := range value {
		if c < 'a' || c > 'z' {
			return false
		}
	}

	return true
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
