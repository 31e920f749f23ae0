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
	"math"

	"github.com/pkg/errors"
)

// CastToInt64 converts an unsigned network amount such as a query cost to int64
func CastToInt64(value uint64) (int64, error) {
	if value > math.MaxInt64 {
		return 0, errors.Errorf("uint64 %d out of int64 range", value)
	}

	return int64(value), nil
}

// CastToUint64 converts a tinybar amount to the unsigned form of fee fields
func CastToUint64(value int64) (uint64, error) {
	if value < 0 {
		return 0, errors.Errorf("int64 %d out of uint64 range", value)
	}

	return uint64(value), nil
}

// CastToInt32 converts a chunk number or count to the int32 wire form
func CastToInt32(value int) (int32, error) {
	if value < math.MinInt32 || value > math.MaxInt32 {
		return 0, errors.Errorf("int %d out of int32 range", value)
	}

	return int32(value), nil
}
