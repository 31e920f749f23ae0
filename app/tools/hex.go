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

package tools

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

const HexPrefix = "0x"

// SafeAddHexPrefix prefixes the value with 0x unless it already has the prefix
func SafeAddHexPrefix(value string) string {
	if strings.HasPrefix(value, HexPrefix) {
		return value
	}
	return HexPrefix + value
}

// SafeRemoveHexPrefix strips a leading 0x
func SafeRemoveHexPrefix(value string) string {
	return strings.TrimPrefix(value, HexPrefix)
}

// DecodeHex decodes a hex string with or without the 0x prefix
func DecodeHex(value string) ([]byte, error) {
	if value == "" {
		return []byte{}, nil
	}
	return hexutil.Decode(SafeAddHexPrefix(value))
}

// EncodeHex encodes the bytes as a 0x prefixed hex string, the form used in log messages
func EncodeHex(data []byte) string {
	return hexutil.Encode(data)
}
