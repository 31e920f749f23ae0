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

	"github.com/pkg/errors"
)

// ParseError is returned when an identifier, amount or version string is malformed
type ParseError struct {
	Input string
	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q: %s", e.Input, e.cause)
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

func newParseError(input string, format string, args ...interface{}) error {
	return &ParseError{Input: input, cause: errors.Errorf(format, args...)}
}

func wrapParseError(input string, err error) error {
	return &ParseError{Input: input, cause: errors.WithStack(err)}
}

// BadEntityIdError is returned when the checksum of an entity id doesn't match the one generated for the ledger
type BadEntityIdError struct {
	Shard            uint64
	Realm            uint64
	Num              uint64
	PresentChecksum  string
	ExpectedChecksum string
}

func (e *BadEntityIdError) Error() string {
	return fmt.Sprintf(
		"checksum of entity id %d.%d.%d is %s but should be %s",
		e.Shard,
		e.Realm,
		e.Num,
		e.PresentChecksum,
		e.ExpectedChecksum,
	)
}

func errNilProto(message string) error {
	return errors.Errorf("missing %s", message)
}
