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

package transaction

import (
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

const defaultAutoRenewPeriod = 90 * 24 * time.Hour

// Data is the kind specific part of a transaction. The kinds are the ones of this package
type Data interface {
	name() string
	method() transport.TransactionMethod
	defaultMaxTransactionFee() types.HbarAmount
	// fillBody sets the kind data of the body, chunk is nil for kinds that aren't chunked
	fillBody(body *services.TransactionBody, chunk *chunk) error
	validateChecksums(ledgerId types.LedgerId) error
	// clone returns a copy sharing no memory with the builder
	clone() Data
}

// chunkedData is a kind whose payload is split in chunks submitted one after the other
type chunkedData interface {
	Data
	chunkData() *chunkData
	defaultChunkSize(settings client.Settings) int
	// waitForReceipt gates the submission of a chunk on the receipt of the previous one
	waitForReceipt() bool
}

func validateAll[T interface{ ValidateChecksum(types.LedgerId) error }](ledgerId types.LedgerId, ids ...T) error {
	for _, id := range ids {
		if err := id.ValidateChecksum(ledgerId); err != nil {
			return err
		}
	}
	return nil
}
