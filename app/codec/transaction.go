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

package codec

import (
	"crypto/sha512"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

// SignedTransaction is a transaction body signed for one node, with the wire bytes and the hash cached
type SignedTransaction struct {
	BodyBytes   []byte
	Hash        []byte
	Transaction *services.Transaction
}

// Sign serializes the body and signs it with every signer. Signers sharing a public key sign once
func Sign(body *services.TransactionBody, signers []types.Signer) (*SignedTransaction, error) {
	bodyBytes, err := proto.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to marshal transaction body")
	}

	return SignBodyBytes(bodyBytes, signers, nil)
}

// SignBodyBytes signs already serialized body bytes. The extra signature pairs are appended as is
func SignBodyBytes(bodyBytes []byte, signers []types.Signer, extra []*services.SignaturePair) (
	*SignedTransaction,
	error,
) {
	sigMap := &services.SignatureMap{}
	seen := make(map[string]struct{}, len(signers)+len(extra))
	for _, pair := range extra {
		seen[string(pair.GetPubKeyPrefix())] = struct{}{}
		sigMap.SigPair = append(sigMap.SigPair, pair)
	}

	for _, signer := range signers {
		publicKey := string(signer.PublicKey())
		if _, ok := seen[publicKey]; ok {
			continue
		}

		pair, err := types.SignToPair(signer, bodyBytes)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to sign transaction body")
		}

		seen[publicKey] = struct{}{}
		sigMap.SigPair = append(sigMap.SigPair, pair)
	}

	signedBytes, err := proto.Marshal(&services.SignedTransaction{BodyBytes: bodyBytes, SigMap: sigMap})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to marshal signed transaction")
	}

	return &SignedTransaction{
		BodyBytes:   bodyBytes,
		Hash:        Hash(signedBytes),
		Transaction: &services.Transaction{SignedTransactionBytes: signedBytes},
	}, nil
}

// Hash is the SHA-384 hash of the signed transaction bytes, the transaction hash reported by the network
func Hash(signedTransactionBytes []byte) []byte {
	hash := sha512.Sum384(signedTransactionBytes)
	return hash[:]
}

// DecodeBody returns the body and the signature map of a wire transaction
func DecodeBody(transaction *services.Transaction) (*services.TransactionBody, *services.SignatureMap, error) {
	var signed services.SignedTransaction
	if err := proto.Unmarshal(transaction.GetSignedTransactionBytes(), &signed); err != nil {
		return nil, nil, hErrors.NewFromProtobufError(err)
	}

	var body services.TransactionBody
	if err := proto.Unmarshal(signed.GetBodyBytes(), &body); err != nil {
		return nil, nil, hErrors.NewFromProtobufError(err)
	}

	return &body, signed.GetSigMap(), nil
}

// TransactionPrecheck returns the precheck code of a transaction submission and the cost the node reported
func TransactionPrecheck(response *services.TransactionResponse) (types.Status, types.HbarAmount) {
	return response.GetNodeTransactionPrecheckCode(), types.HbarFromTinybars(int64(response.GetCost()))
}
