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

package domain

import (
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/pkg/errors"
)

const (
	shardBits  int   = 15
	realmBits  int   = 16
	numberBits int   = 32
	shardMask  int64 = (int64(1) << shardBits) - 1
	realmMask  int64 = (int64(1) << realmBits) - 1
	numberMask int64 = (int64(1) << numberBits) - 1
)

// EntityId is an entity id as the mirror node database stores it, shard realm and num packed in an int8
type EntityId int64

func EncodeEntityId(entityId types.EntityId) (EntityId, error) {
	shard, realm, num := int64(entityId.ShardNum), int64(entityId.RealmNum), int64(entityId.EntityNum)
	if entityId.ShardNum > uint64(shardMask) || entityId.RealmNum > uint64(realmMask) ||
		entityId.EntityNum > uint64(numberMask) {
		return 0, errors.Errorf("Invalid entity id %s for encoding", entityId)
	}

	return EntityId(num | realm<<numberBits | shard<<(realmBits+numberBits)), nil
}

func MustEncodeEntityId(entityId types.EntityId) EntityId {
	encoded, err := EncodeEntityId(entityId)
	if err != nil {
		panic(err)
	}

	return encoded
}

func (e EntityId) Decode() (types.EntityId, error) {
	if e < 0 {
		return types.EntityId{}, errors.Errorf("Encoded entity id cannot be negative: %d", e)
	}

	encoded := int64(e)
	return types.NewEntityId(
		uint64(encoded>>(realmBits+numberBits)),
		uint64((encoded>>numberBits)&realmMask),
		uint64(encoded&numberMask),
	), nil
}
