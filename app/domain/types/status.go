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

import "github.com/hashgraph/hedera-sdk-go/v2/proto/services"

// Status is the network response code
type Status = services.ResponseCodeEnum

const (
	StatusOk                 = services.ResponseCodeEnum_OK
	StatusSuccess            = services.ResponseCodeEnum_SUCCESS
	StatusUnknown            = services.ResponseCodeEnum_UNKNOWN
	StatusBusy               = services.ResponseCodeEnum_BUSY
	StatusPlatformNotActive  = services.ResponseCodeEnum_PLATFORM_NOT_ACTIVE
	StatusTransactionExpired = services.ResponseCodeEnum_TRANSACTION_EXPIRED
	StatusReceiptNotFound    = services.ResponseCodeEnum_RECEIPT_NOT_FOUND
	StatusRecordNotFound     = services.ResponseCodeEnum_RECORD_NOT_FOUND
)

// IsStatusRecognized reports whether the code is a member of the response code enum known to this build
func IsStatusRecognized(status Status) bool {
	_, ok := services.ResponseCodeEnum_name[int32(status)]
	return ok
}
