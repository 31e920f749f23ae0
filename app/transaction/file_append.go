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
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

type fileAppendData struct {
	chunks chunkData
	fileId types.EntityId
}

// FileAppendTransaction appends contents to a file. Contents larger than the chunk size are appended in chunks
// submitted in order
type FileAppendTransaction struct {
	Transaction
	data *fileAppendData
}

func NewFileAppendTransaction() *FileAppendTransaction {
	t := &FileAppendTransaction{data: &fileAppendData{}}
	t.Transaction = newTransaction(t.data)
	return t
}

func (t *FileAppendTransaction) FileId() types.EntityId {
	return t.data.fileId
}

func (t *FileAppendTransaction) SetFileId(fileId types.EntityId) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.fileId = fileId
	return nil
}

func (t *FileAppendTransaction) SetContents(contents []byte) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.chunks.payload = append([]byte(nil), contents...)
	return nil
}

func (t *FileAppendTransaction) SetChunkSize(chunkSize int) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	return t.data.chunks.setChunkSize(chunkSize)
}

func (t *FileAppendTransaction) SetMaxChunks(maxChunks int) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.data.chunks.maxChunks = maxChunks
	return nil
}

func (d *fileAppendData) name() string {
	return "FileAppendTransaction"
}

func (d *fileAppendData) method() transport.TransactionMethod {
	return transport.FileAppend
}

func (d *fileAppendData) defaultMaxTransactionFee() types.HbarAmount {
	return types.NewHbar(5)
}

func (d *fileAppendData) fillBody(body *services.TransactionBody, chunk *chunk) error {
	data := &services.FileAppendTransactionBody{FileID: d.fileId.ToFileID()}
	if chunk != nil {
		data.Contents = chunk.payload
	}

	body.Data = &services.TransactionBody_FileAppend{FileAppend: data}
	return nil
}

func (d *fileAppendData) validateChecksums(ledgerId types.LedgerId) error {
	return d.fileId.ValidateChecksum(ledgerId)
}

func (d *fileAppendData) clone() Data {
	return &fileAppendData{chunks: d.chunks.clone(), fileId: d.fileId}
}

func (d *fileAppendData) chunkData() *chunkData {
	return &d.chunks
}

func (d *fileAppendData) defaultChunkSize(settings client.Settings) int {
	return settings.FileAppendChunkSize
}

func (d *fileAppendData) waitForReceipt() bool {
	return false
}
