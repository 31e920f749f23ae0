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

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/tools"
)

const (
	Mainnet    = "mainnet"
	Testnet    = "testnet"
	Previewnet = "previewnet"
)

var (
	mainnetLedgerId    = []byte{0}
	testnetLedgerId    = []byte{1}
	previewnetLedgerId = []byte{2}
)

// LedgerId identifies the network a client is bound to
type LedgerId struct {
	bytes []byte
}

func NewLedgerId(data []byte) LedgerId {
	return LedgerId{bytes: bytes.Clone(data)}
}

func LedgerIdMainnet() LedgerId {
	return NewLedgerId(mainnetLedgerId)
}

func LedgerIdTestnet() LedgerId {
	return NewLedgerId(testnetLedgerId)
}

func LedgerIdPreviewnet() LedgerId {
	return NewLedgerId(previewnetLedgerId)
}

// LedgerIdFromString parses a known network name or the hex form of the ledger id
func LedgerIdFromString(value string) (LedgerId, error) {
	switch value {
	case Mainnet:
		return LedgerIdMainnet(), nil
	case Testnet:
		return LedgerIdTestnet(), nil
	case Previewnet:
		return LedgerIdPreviewnet(), nil
	}

	data, err := tools.DecodeHex(value)
	if err != nil {
		return LedgerId{}, wrapParseError(value, err)
	}

	return LedgerId{bytes: data}, nil
}

func (l LedgerId) Bytes() []byte {
	return bytes.Clone(l.bytes)
}

func (l LedgerId) Equal(other LedgerId) bool {
	return bytes.Equal(l.bytes, other.bytes)
}

func (l LedgerId) IsEmpty() bool {
	return len(l.bytes) == 0
}

func (l LedgerId) IsMainnet() bool {
	return bytes.Equal(l.bytes, mainnetLedgerId)
}

func (l LedgerId) IsTestnet() bool {
	return bytes.Equal(l.bytes, testnetLedgerId)
}

func (l LedgerId) IsPreviewnet() bool {
	return bytes.Equal(l.bytes, previewnetLedgerId)
}

func (l LedgerId) String() string {
	switch {
	case l.IsMainnet():
		return Mainnet
	case l.IsTestnet():
		return Testnet
	case l.IsPreviewnet():
		return Previewnet
	default:
		return hex.EncodeToString(l.bytes)
	}
}

func (l *LedgerId) UnmarshalText(text []byte) error {
	parsed, err := LedgerIdFromString(string(text))
	if err != nil {
		return err
	}

	*l = parsed
	return nil
}
