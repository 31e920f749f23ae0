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
	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

// Signer signs transaction body bytes. PublicKey returns the raw public key bytes
type Signer interface {
	PublicKey() []byte
	Sign(message []byte) ([]byte, error)
}

type privateKeySigner struct {
	key hedera.PrivateKey
}

// NewPrivateKeySigner adapts a hedera.PrivateKey as a Signer
func NewPrivateKeySigner(key hedera.PrivateKey) Signer {
	return &privateKeySigner{key: key}
}

func (s *privateKeySigner) PublicKey() []byte {
	return s.key.PublicKey().BytesRaw()
}

func (s *privateKeySigner) Sign(message []byte) ([]byte, error) {
	return s.key.Sign(message), nil
}

// SignToPair signs the message and wraps the signature as the network SignaturePair
func SignToPair(signer Signer, message []byte) (*services.SignaturePair, error) {
	signature, err := signer.Sign(message)
	if err != nil {
		return nil, err
	}

	return NewSignaturePair(signer.PublicKey(), signature), nil
}
