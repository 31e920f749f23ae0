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

package transaction

import (
	"context"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/codec"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/execute"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/tools"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"google.golang.org/protobuf/proto"
)

// Transaction holds the fields shared by every transaction kind. It's a mutable builder until it's frozen or signed,
// after that every setter fails with ErrTransactionFrozen
type Transaction struct {
	data                    Data
	frozen                  bool
	frozenData              Data
	maxTransactionFee       *types.HbarAmount
	memo                    string
	nodeAccountIds          []types.AccountId
	operator                *client.Operator
	regenerateTransactionId *bool
	signatures              []*services.SignaturePair
	signers                 []types.Signer
	transactionId           *types.TransactionId
	validDuration           time.Duration
}

func newTransaction(data Data) Transaction {
	return Transaction{data: data}
}

func (t *Transaction) IsFrozen() bool {
	return t.frozen
}

func (t *Transaction) NodeAccountIds() []types.AccountId {
	return t.nodeAccountIds
}

func (t *Transaction) TransactionId() *types.TransactionId {
	return t.transactionId
}

func (t *Transaction) MaxTransactionFee() *types.HbarAmount {
	return t.maxTransactionFee
}

func (t *Transaction) Memo() string {
	return t.memo
}

func (t *Transaction) SetNodeAccountIds(nodeAccountIds []types.AccountId) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.nodeAccountIds = append([]types.AccountId(nil), nodeAccountIds...)
	return nil
}

// SetTransactionId sets an explicit transaction id, it disables the regeneration of expired ids
func (t *Transaction) SetTransactionId(transactionId types.TransactionId) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.transactionId = &transactionId
	return nil
}

func (t *Transaction) SetMaxTransactionFee(fee types.HbarAmount) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.maxTransactionFee = &fee
	return nil
}

func (t *Transaction) SetMemo(memo string) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.memo = memo
	return nil
}

func (t *Transaction) SetValidDuration(validDuration time.Duration) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.validDuration = validDuration
	return nil
}

// SetRegenerateTransactionId overrides the client default for regenerating an expired transaction id
func (t *Transaction) SetRegenerateTransactionId(regenerate bool) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}

	t.regenerateTransactionId = &regenerate
	return nil
}

// Freeze makes the transaction immutable without a client, the node account ids must be set
func (t *Transaction) Freeze() error {
	return t.FreezeWith(nil)
}

// FreezeWith makes the transaction immutable. Unset node account ids are picked from the client network and the
// client operator pays for the transaction when it has no explicit id
func (t *Transaction) FreezeWith(c *client.Client) error {
	if t.frozen {
		return nil
	}

	nodeAccountIds := t.nodeAccountIds
	if len(nodeAccountIds) == 0 {
		if c == nil {
			return hErrors.ErrFreezeUnsetNodeAccountIds
		}

		selected, err := c.Network().SelectNodes(nil, time.Now())
		if err != nil {
			return err
		}

		if len(selected) == 0 {
			return hErrors.ErrFreezeUnsetNodeAccountIds
		}
		nodeAccountIds = selected
	}

	settings := client.DefaultSettings
	if c != nil {
		settings = c.Settings()
		if settings.AutoValidateChecksums {
			if err := t.validateChecksums(c.LedgerId(), nodeAccountIds); err != nil {
				return err
			}
		}

		t.operator = c.Operator()
	}

	if t.validDuration == 0 {
		t.validDuration = settings.ValidDuration
	}

	if t.maxTransactionFee == nil && settings.DefaultMaxTransactionFee.Tinybars() > 0 {
		fee := settings.DefaultMaxTransactionFee
		t.maxTransactionFee = &fee
	}

	if chunked, ok := t.data.(chunkedData); ok {
		chunked.chunkData().applyDefaults(chunked.defaultChunkSize(settings), settings.MaxChunks)
	}

	t.nodeAccountIds = nodeAccountIds
	t.frozenData = t.data.clone()
	t.frozen = true
	return nil
}

// Sign adds a signer applied to every chunk and node at submission, the transaction can't be modified afterward
func (t *Transaction) Sign(signer types.Signer) {
	t.signers = append(t.signers, signer)
}

// BodyBytes returns the body a manual signature must be made over. It pins the transaction id so the signed body
// stays the same at submission
func (t *Transaction) BodyBytes() ([]byte, error) {
	if err := t.requireSingleBody(); err != nil {
		return nil, err
	}

	if err := t.pinTransactionId(); err != nil {
		return nil, err
	}

	nodeAccountId := t.nodeAccountIds[0]
	first, err := t.firstChunk(*t.transactionId, nodeAccountId)
	if err != nil {
		return nil, err
	}

	body, err := t.body(t.frozenData, *t.transactionId, nodeAccountId, first)
	if err != nil {
		return nil, err
	}

	return proto.Marshal(body)
}

// AddSignature adds a signature made over BodyBytes. It requires a frozen transaction with exactly one node and at
// most one chunk
func (t *Transaction) AddSignature(publicKey []byte, signature []byte) error {
	if err := t.requireSingleBody(); err != nil {
		return err
	}

	if err := t.pinTransactionId(); err != nil {
		return err
	}

	t.signatures = append(t.signatures, types.NewSignaturePair(publicKey, signature))
	return nil
}

// Execute submits the transaction and returns the response of the first node that accepted it. A chunked
// transaction is submitted whole and the response of its first chunk is returned
func (t *Transaction) Execute(ctx context.Context, c *client.Client) (*Response, error) {
	return t.ExecuteWithTimeout(ctx, c, 0)
}

// ExecuteWithTimeout is Execute with a time budget for each submitted chunk
func (t *Transaction) ExecuteWithTimeout(ctx context.Context, c *client.Client, timeout time.Duration) (
	*Response,
	error,
) {
	if _, ok := t.data.(chunkedData); ok {
		responses, err := t.ExecuteAllWithTimeout(ctx, c, timeout)
		if err != nil {
			return nil, err
		}
		return responses[0], nil
	}

	if err := t.freezeForExecution(c); err != nil {
		return nil, err
	}

	return execute.ExecuteTransaction[*Response](ctx, c, &chunkExecutable{
		transaction:   t,
		transactionId: t.transactionId,
	}, timeout)
}

// ExecuteAll submits every chunk in order and returns their responses, a transaction that isn't chunked has a
// single response
func (t *Transaction) ExecuteAll(ctx context.Context, c *client.Client) ([]*Response, error) {
	return t.ExecuteAllWithTimeout(ctx, c, 0)
}

func (t *Transaction) ExecuteAllWithTimeout(ctx context.Context, c *client.Client, timeout time.Duration) (
	[]*Response,
	error,
) {
	if err := t.freezeForExecution(c); err != nil {
		return nil, err
	}

	chunked, ok := t.frozenData.(chunkedData)
	if !ok {
		response, err := t.ExecuteWithTimeout(ctx, c, timeout)
		if err != nil {
			return nil, err
		}
		return []*Response{response}, nil
	}

	return executeChunks(ctx, c, t, chunked, timeout)
}

// freezeForExecution freezes the transaction with the client, a transaction frozen without a client is paid by the
// client operator
func (t *Transaction) freezeForExecution(c *client.Client) error {
	if err := t.FreezeWith(c); err != nil {
		return err
	}

	if t.operator == nil {
		t.operator = c.Operator()
	}
	return nil
}

func (t *Transaction) requireNotFrozen() error {
	if t.frozen || len(t.signers) != 0 || len(t.signatures) != 0 {
		return hErrors.ErrTransactionFrozen
	}
	return nil
}

func (t *Transaction) requireSingleBody() error {
	if !t.frozen {
		return hErrors.ErrNotFrozen
	}

	if len(t.nodeAccountIds) != 1 {
		return hErrors.ErrSignatureMultipleNodesOrChunks
	}

	if chunked, ok := t.frozenData.(chunkedData); ok && chunked.chunkData().usedChunks() > 1 {
		return hErrors.ErrSignatureMultipleNodesOrChunks
	}

	return nil
}

func (t *Transaction) pinTransactionId() error {
	if t.transactionId != nil {
		return nil
	}

	if t.operator == nil {
		return hErrors.ErrNoPayerAccountOrTransactionId
	}

	transactionId := types.GenerateTransactionId(t.operator.AccountId)
	t.transactionId = &transactionId
	return nil
}

// body is the transaction body for one node, chunk is nil for a transaction that isn't chunked
func (t *Transaction) body(
	data Data,
	transactionId types.TransactionId,
	nodeAccountId types.AccountId,
	chunk *chunk,
) (*services.TransactionBody, error) {
	fee := data.defaultMaxTransactionFee()
	if t.maxTransactionFee != nil {
		fee = *t.maxTransactionFee
	}

	transactionFee, err := tools.CastToUint64(fee.Tinybars())
	if err != nil {
		return nil, err
	}

	body := &services.TransactionBody{
		TransactionID:            transactionId.ToProto(),
		NodeAccountID:            nodeAccountId.ToProto(),
		TransactionFee:           transactionFee,
		TransactionValidDuration: types.DurationToProto(t.validDuration),
		Memo:                     t.memo,
	}

	if err := data.fillBody(body, chunk); err != nil {
		return nil, err
	}

	return body, nil
}

// sign signs the body with the added signers and the operator, the manual signatures come first
func (t *Transaction) sign(body *services.TransactionBody) (*codec.SignedTransaction, error) {
	signers := t.signers
	if t.operator != nil {
		signers = append(append([]types.Signer(nil), signers...), t.operator.Signer)
	}

	bodyBytes, err := proto.Marshal(body)
	if err != nil {
		return nil, err
	}

	return codec.SignBodyBytes(bodyBytes, signers, t.signatures)
}

func (t *Transaction) validateChecksums(ledgerId types.LedgerId, nodeAccountIds []types.AccountId) error {
	for _, nodeAccountId := range nodeAccountIds {
		if err := nodeAccountId.ValidateChecksum(ledgerId); err != nil {
			return err
		}
	}

	if t.transactionId != nil {
		if err := t.transactionId.ValidateChecksum(ledgerId); err != nil {
			return err
		}
	}

	return t.data.validateChecksums(ledgerId)
}
