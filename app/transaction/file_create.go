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

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

type fileCreateData struct {
	contents       []byte
	expirationTime *time.Time
	keys           []types.PublicKey
	memo           string
}

// FileCreateTransaction creates a file, larger contents are added with FileAppendTransaction
type FileCreateTransaction struct {
	Transaction
	data *fileCreateData
}

func NewFileCreateTransaction() *FileCreateTransaction {
	t := &FileCreateTransaction{data: &fileCreateData{}}
	t.Transaction = newTransaction(t.data)
	return t
}

func (t *FileCreateTransaction) SetKeys(keys ...types.PublicKey) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.keys = append([]types.PublicKey(nil), keys...)
	return nil
}

func (t *FileCreateTransaction) SetContents(contents []byte) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.contents = append([]byte(nil), contents...)
	return nil
}

// SetExpirationTime sets when the file expires, unset it's the auto renew period after the transaction is built
func (t *FileCreateTransaction) SetExpirationTime(expirationTime time.Time) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.expirationTime = &expirationTime
	return nil
}

func (t *FileCreateTransaction) SetFileMemo(memo string) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.memo = memo
	return nil
}

func (d *fileCreateData) name() string {
	return "FileCreateTransaction"
}

func (d *fileCreateData) method() transport.TransactionMethod {
	return transport.FileCreate
}

func (d *fileCreateData) defaultMaxTransactionFee() types.HbarAmount {
	return types.NewHbar(5)
}

func (d *fileCreateData) fillBody(body *services.TransactionBody, _ *chunk) error {
	expirationTime := time.Now().Add(defaultAutoRenewPeriod)
	if d.expirationTime != nil {
		expirationTime = *d.expirationTime
	}

	keys := make([]*services.Key, 0, len(d.keys))
	for _, key := range d.keys {
		protoKey, err := key.ToProtoKey()
		if err != nil {
			return err
		}
		keys = append(keys, protoKey)
	}

	body.Data = &services.TransactionBody_FileCreate{
		FileCreate: &services.FileCreateTransactionBody{
			ExpirationTime: types.TimestampToProto(expirationTime),
			Keys:           &services.KeyList{Keys: keys},
			Contents:       d.contents,
			Memo:           d.memo,
		},
	}
	return nil
}

func (d *fileCreateData) validateChecksums(types.LedgerId) error {
	return nil
}

// clone pins the expiration time so every node gets the same body
func (d *fileCreateData) clone() Data {
	cloned := *d
	cloned.contents = append([]byte(nil), d.contents...)
	cloned.keys = append([]types.PublicKey(nil), d.keys...)
	if cloned.expirationTime == nil {
		expirationTime := time.Now().Add(defaultAutoRenewPeriod)
		cloned.expirationTime = &expirationTime
	}
	return &cloned
}
