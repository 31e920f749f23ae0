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
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/pkg/errors"
)

const (
	minValidStartBackdate = 5 * time.Second
	maxValidStartBackdate = 8 * time.Second
	scheduledSuffix       = "?scheduled"

	transactionIdFormat = "expected <accountId>@<validStart>[?scheduled][/<nonce>] or <accountId>-<seconds>-<nanos>"
)

// TransactionId names a submitted transaction, <payer>@<seconds>.<nanos>[?scheduled][/<nonce>]
type TransactionId struct {
	AccountId  AccountId
	ValidStart time.Time
	Scheduled  bool
	Nonce      *int32
}

// GenerateTransactionId creates a transaction id for the payer with a valid start 5 to 8 seconds in the past, so
// a node with a slightly behind clock doesn't reject it as not yet valid
func GenerateTransactionId(payer AccountId) TransactionId {
	backdate := minValidStartBackdate + time.Duration(rand.Int64N(int64(maxValidStartBackdate-minValidStartBackdate)))
	return TransactionId{AccountId: payer, ValidStart: time.Now().Add(-backdate).UTC()}
}

func NewTransactionIdWithValidStart(payer AccountId, validStart time.Time) TransactionId {
	return TransactionId{AccountId: payer, ValidStart: validStart.UTC()}
}

// Next returns the id of the chunk following this one: same payer and flags, valid start one nanosecond later
func (t TransactionId) Next() TransactionId {
	next := t
	next.ValidStart = t.ValidStart.Add(time.Nanosecond)
	return next
}

func (t TransactionId) Equal(other TransactionId) bool {
	if !t.AccountId.Equal(other.AccountId) || !t.ValidStart.Equal(other.ValidStart) || t.Scheduled != other.Scheduled {
		return false
	}

	if t.Nonce == nil || other.Nonce == nil {
		return t.Nonce == nil && other.Nonce == nil
	}

	return *t.Nonce == *other.Nonce
}

func (t TransactionId) String() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s@%d.%d", t.AccountId, t.ValidStart.Unix(), t.ValidStart.Nanosecond()))
	if t.Scheduled {
		builder.WriteString(scheduledSuffix)
	}

	if t.Nonce != nil {
		builder.WriteString(fmt.Sprintf("/%d", *t.Nonce))
	}

	return builder.String()
}

func (t TransactionId) ValidateChecksum(ledgerId LedgerId) error {
	return t.AccountId.ValidateChecksum(ledgerId)
}

func (t TransactionId) ToProto() *services.TransactionID {
	pb := &services.TransactionID{
		AccountID:             t.AccountId.ToProto(),
		TransactionValidStart: TimestampToProto(t.ValidStart),
		Scheduled:             t.Scheduled,
	}
	if t.Nonce != nil {
		pb.Nonce = *t.Nonce
	}

	return pb
}

func TransactionIdFromProto(pb *services.TransactionID) (TransactionId, error) {
	if pb == nil {
		return TransactionId{}, errors.New("nil TransactionID")
	}

	if pb.TransactionValidStart == nil {
		return TransactionId{}, errors.New("TransactionID missing transactionValidStart")
	}

	accountId, err := AccountIdFromProto(pb.AccountID)
	if err != nil {
		return TransactionId{}, err
	}

	transactionId := TransactionId{
		AccountId:  accountId,
		ValidStart: TimestampFromProto(pb.TransactionValidStart),
		Scheduled:  pb.Scheduled,
	}
	if pb.Nonce != 0 {
		nonce := pb.Nonce
		transactionId.Nonce = &nonce
	}

	return transactionId, nil
}

// TransactionIdFromString parses <accountId>@<seconds>.<nanos>[?scheduled][/<nonce>] and the mirror node REST form
// <accountId>-<seconds>-<nanos>
func TransactionIdFromString(value string) (TransactionId, error) {
	accountPart, seconds, remainder, ok := splitTransactionId(value)
	if !ok {
		return TransactionId{}, newParseError(value, transactionIdFormat)
	}

	accountId, err := AccountIdFromString(accountPart)
	if err != nil {
		return TransactionId{}, err
	}

	var nonce *int32
	if rest, nonceStr, found := cutLast(remainder, "/"); found {
		parsed, err := strconv.ParseInt(nonceStr, 10, 32)
		if err != nil {
			return TransactionId{}, wrapParseError(value, err)
		}
		n := int32(parsed)
		nonce = &n
		remainder = rest
	}

	nanosStr, scheduled := strings.CutSuffix(remainder, scheduledSuffix)

	secs, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return TransactionId{}, wrapParseError(value, err)
	}

	nanos, err := strconv.ParseInt(nanosStr, 10, 64)
	if err != nil {
		return TransactionId{}, wrapParseError(value, err)
	}

	if nanos < 0 || nanos >= int64(time.Second) {
		return TransactionId{}, newParseError(value, "nanos out of range")
	}

	return TransactionId{
		AccountId:  accountId,
		ValidStart: time.Unix(secs, nanos).UTC(),
		Scheduled:  scheduled,
		Nonce:      nonce,
	}, nil
}

func splitTransactionId(value string) (accountId, seconds, remainder string, ok bool) {
	if account, rest, found := strings.Cut(value, "@"); found {
		if seconds, remainder, found = strings.Cut(rest, "."); found {
			return account, seconds, remainder, true
		}
		return "", "", "", false
	}

	if account, rest, found := strings.Cut(value, "-"); found {
		if seconds, remainder, found = strings.Cut(rest, "-"); found {
			return account, seconds, remainder, true
		}
	}

	return "", "", "", false
}

func cutLast(value, separator string) (before, after string, found bool) {
	index := strings.LastIndex(value, separator)
	if index == -1 {
		return value, "", false
	}

	return value[:index], value[index+len(separator):], true
}
