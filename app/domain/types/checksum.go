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

const (
	checksumP3     = 26 * 26 * 26
	checksumP5     = 26 * 26 * 26 * 26 * 26 * 26
	checksumM      = 1_000_003
	checksumWeight = 31
)

var checksumLedgerPadding = make([]byte, 6)

// generateChecksum computes the HIP-15 checksum of the shard.realm.num address for the ledger
func generateChecksum(ledgerId LedgerId, address string) string {
	h := append(ledgerId.Bytes(), checksumLedgerPadding...)

	var s, sumEven, sumOdd int
	for i, c := range address {
		digit := 10
		if c != '.' {
			digit = int(c - '0')
		}

		s = (checksumWeight*s + digit) % checksumP3
		if i%2 == 0 {
			sumEven = (sumEven + digit) % 11
		} else {
			sumOdd = (sumOdd + digit) % 11
		}
	}

	var sh int
	for _, b := range h {
		sh = (checksumWeight*sh + int(b)) % checksumP5
	}

	c := len(address) % 5
	c = c*11 + sumEven
	c = c*11 + sumOdd
	c = c*checksumP3 + s + sh
	c %= checksumP5
	c = (c * checksumM) % checksumP5

	answer := make([]byte, checksumLength)
	for i := checksumLength - 1; i >= 0; i-- {
		answer[i] = byte('a' + c%26)
		c /= 26
	}

	return string(answer)
}
