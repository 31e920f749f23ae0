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
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

const (
	ecdsaSecp256k1PublicKeySize = 33
	ed25519PublicKeySize        = 32
)

// PublicKey embeds hedera.PublicKey and converts it to and from the network key forms
type PublicKey struct {
	hedera.PublicKey
}

func (pk PublicKey) IsEmpty() bool {
	return len(pk.PublicKey.BytesRaw()) == 0
}

// ToProtoKey returns the primitive protobuf Key of the public key, chosen by the raw key size
func (pk PublicKey) ToProtoKey() (*services.Key, error) {
	rawKey := pk.PublicKey.BytesRaw()
	switch keySize := len(rawKey); keySize {
	case ed25519PublicKeySize:
		return &services.Key{Key: &services.Key_Ed25519{Ed25519: rawKey}}, nil
	case ecdsaSecp256k1PublicKeySize:
		return &services.Key{Key: &services.Key_ECDSASecp256K1{ECDSASecp256K1: rawKey}}, nil
	default:
		return nil, errors.Errorf("Unknown public key type with %d raw bytes", keySize)
	}
}

// ToAlias returns the HIP-32 alias of the key, the serialized protobuf Key that represents the primitive public key
func (pk PublicKey) ToAlias() ([]byte, error) {
	key, err := pk.ToProtoKey()
	if err != nil {
		return nil, err
	}

	alias, err := proto.Marshal(key)
	if err != nil {
		return nil, errors.Errorf("Failed to marshal proto Key: %s", err)
	}
	return alias, nil
}

func NewPublicKeyFromAlias(alias []byte) (hedera.PublicKey, error) {
	if len(alias) == 0 {
		return hedera.PublicKey{}, errors.Errorf("Empty alias provided")
	}

	var key services.Key
	if err := proto.Unmarshal(alias, &key); err != nil {
		return hedera.PublicKey{}, err
	}

	var rawKey []byte
	switch value := key.GetKey().(type) {
	case *services.Key_Ed25519:
		rawKey = value.Ed25519
	case *services.Key_ECDSASecp256K1:
		rawKey = value.ECDSASecp256K1
	default:
		return hedera.PublicKey{}, errors.Errorf("Unsupported key type")
	}

	return hedera.PublicKeyFromBytes(rawKey)
}

func NewSignaturePair(rawPublicKey, signature []byte) *services.SignaturePair {
	pair := &services.SignaturePair{PubKeyPrefix: rawPublicKey}
	if len(rawPublicKey) == ecdsaSecp256k1PublicKeySize {
		pair.Signature = &services.SignaturePair_ECDSASecp256K1{ECDSASecp256K1: signature}
	} else {
		pair.Signature = &services.SignaturePair_Ed25519{Ed25519: signature}
	}

	return pair
}
