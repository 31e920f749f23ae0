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

package query

import (
	"context"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/codec"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	hErrors "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/errors"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/execute"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/tools"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transport"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	log "github.com/sirupsen/logrus"
)

// Query holds the fields shared by every query: the explicit nodes and the payment settings of paid queries
type Query struct {
	maxQueryPayment      *types.HbarAmount
	nodeAccountIds       []types.AccountId
	paymentAmount        *types.HbarAmount
	paymentTransactionId *types.TransactionId
}

func (q *Query) NodeAccountIds() []types.AccountId {
	return q.nodeAccountIds
}

// SetNodeAccountIds pins the query to the nodes, in order of preference
func (q *Query) SetNodeAccountIds(nodeAccountIds []types.AccountId) {
	q.nodeAccountIds = append([]types.AccountId(nil), nodeAccountIds...)
}

// SetMaxQueryPayment caps the cost the query may be paid without an explicit payment amount
func (q *Query) SetMaxQueryPayment(amount types.HbarAmount) {
	q.maxQueryPayment = &amount
}

// SetPaymentAmount pays the amount without asking the node for the cost first
func (q *Query) SetPaymentAmount(amount types.HbarAmount) {
	q.paymentAmount = &amount
}

// SetPaymentTransactionId sets the id of the payment transactions, it disables the regeneration of expired ids
func (q *Query) SetPaymentTransactionId(transactionId types.TransactionId) {
	q.paymentTransactionId = &transactionId
}

func (q *Query) validateChecksums(ledgerId types.LedgerId) error {
	for _, nodeAccountId := range q.nodeAccountIds {
		if err := nodeAccountId.ValidateChecksum(ledgerId); err != nil {
			return err
		}
	}

	if q.paymentTransactionId != nil {
		return q.paymentTransactionId.ValidateChecksum(ledgerId)
	}

	return nil
}

// data is the variant specific part of a query
type data[T any] interface {
	name() string
	method() transport.QueryMethod
	isPaymentRequired() bool
	toQuery(header *services.QueryHeader) *services.Query
	shouldRetryPrecheck(status types.Status) bool
	shouldRetry(response *services.Response) bool
	makeResponse(response *services.Response) (T, error)
	// transactionId is the transaction the query is about, nil for queries about an entity
	transactionId() *types.TransactionId
	validateChecksums(ledgerId types.LedgerId) error
}

// run executes the query, a paid query without explicit payment amount asks for the cost first
func run[T any](ctx context.Context, c *client.Client, q *Query, d data[T], timeout time.Duration) (T, error) {
	var zero T
	e := &executable[T]{data: d, query: q}
	if !d.isPaymentRequired() {
		return execute.ExecuteQuery[T](ctx, c, e, timeout)
	}

	operator := c.Operator()
	if operator == nil {
		return zero, hErrors.ErrNoPayerAccountOrTransactionId
	}
	e.operator = operator
	e.validDuration = c.Settings().ValidDuration

	if q.paymentAmount != nil {
		e.payment = *q.paymentAmount
	} else {
		cost, err := getCost[T](ctx, c, q, d, timeout)
		if err != nil {
			return zero, err
		}

		maxQueryPayment := c.Settings().DefaultMaxQueryPayment
		if q.maxQueryPayment != nil {
			maxQueryPayment = *q.maxQueryPayment
		}

		if cost.Cmp(maxQueryPayment) > 0 {
			return zero, &hErrors.MaxQueryPaymentExceededError{QueryCost: cost, MaxQueryPayment: maxQueryPayment}
		}

		log.Debugf("Paying %s for %s", cost, d.name())
		e.payment = cost
	}

	return execute.ExecuteQuery[T](ctx, c, e, timeout)
}

func getCost[T any](ctx context.Context, c *client.Client, q *Query, d data[T], timeout time.Duration) (
	types.HbarAmount,
	error,
) {
	return execute.ExecuteQuery[types.HbarAmount](ctx, c, &costExecutable[T]{data: d, query: q}, timeout)
}

// executable answers the query, paying each node with its own payment transaction
type executable[T any] struct {
	data          data[T]
	operator      *client.Operator
	payment       types.HbarAmount
	query         *Query
	validDuration time.Duration
}

func (e *executable[T]) Name() string {
	return e.data.name()
}

func (e *executable[T]) NodeAccountIds() []types.AccountId {
	return e.query.nodeAccountIds
}

func (e *executable[T]) TransactionId() *types.TransactionId {
	return e.query.paymentTransactionId
}

func (e *executable[T]) RequiresTransactionId() bool {
	return e.data.isPaymentRequired()
}

func (e *executable[T]) RegenerateTransactionId() *bool {
	return nil
}

func (e *executable[T]) IsPaid() bool {
	return e.data.isPaymentRequired()
}

func (e *executable[T]) ValidateChecksums(ledgerId types.LedgerId) error {
	if err := e.data.validateChecksums(ledgerId); err != nil {
		return err
	}
	return e.query.validateChecksums(ledgerId)
}

func (e *executable[T]) MakeRequest(transactionId *types.TransactionId, nodeAccountId types.AccountId) (
	*services.Query,
	error,
) {
	if !e.data.isPaymentRequired() {
		return e.data.toQuery(codec.NewQueryHeader(nil, false)), nil
	}

	if transactionId == nil {
		return nil, hErrors.ErrNoPayerAccountOrTransactionId
	}

	payment, err := makePayment(*transactionId, nodeAccountId, e.payment, e.operator.Signer, e.validDuration)
	if err != nil {
		return nil, err
	}

	return e.data.toQuery(codec.NewQueryHeader(payment, false)), nil
}

func (e *executable[T]) Execute(
	ctx context.Context,
	nodeTransport transport.Transport,
	address string,
	request *services.Query,
) (*services.Response, error) {
	return nodeTransport.SubmitQuery(ctx, address, e.data.method(), request)
}

func (e *executable[T]) PrecheckStatus(response *services.Response) types.Status {
	return codec.QueryPrecheck(response)
}

func (e *executable[T]) ShouldRetryPrecheck(status types.Status) bool {
	return e.data.shouldRetryPrecheck(status)
}

func (e *executable[T]) ShouldRetry(response *services.Response) bool {
	return e.data.shouldRetry(response)
}

func (e *executable[T]) MakeResponse(response *services.Response, _ *services.Query, _ types.AccountId,
	_ *types.TransactionId) (T, error) {
	return e.data.makeResponse(response)
}

func (e *executable[T]) MakeErrorPrecheck(status types.Status, transactionId *types.TransactionId,
	response *services.Response) error {
	return makeErrorPrecheck(e.data.transactionId(), status, transactionId, response)
}

// costExecutable asks the node for the cost of the query, a cost answer is free
type costExecutable[T any] struct {
	data  data[T]
	query *Query
}

func (e *costExecutable[T]) Name() string {
	return e.data.name() + "_cost"
}

func (e *costExecutable[T]) NodeAccountIds() []types.AccountId {
	return e.query.nodeAccountIds
}

func (e *costExecutable[T]) TransactionId() *types.TransactionId {
	return nil
}

func (e *costExecutable[T]) RequiresTransactionId() bool {
	return false
}

func (e *costExecutable[T]) RegenerateTransactionId() *bool {
	return nil
}

func (e *costExecutable[T]) IsPaid() bool {
	return false
}

func (e *costExecutable[T]) ValidateChecksums(types.LedgerId) error {
	return nil
}

func (e *costExecutable[T]) MakeRequest(*types.TransactionId, types.AccountId) (*services.Query, error) {
	return e.data.toQuery(codec.NewQueryHeader(nil, true)), nil
}

func (e *costExecutable[T]) Execute(
	ctx context.Context,
	nodeTransport transport.Transport,
	address string,
	request *services.Query,
) (*services.Response, error) {
	return nodeTransport.SubmitQuery(ctx, address, e.data.method(), request)
}

func (e *costExecutable[T]) PrecheckStatus(response *services.Response) types.Status {
	return codec.QueryPrecheck(response)
}

func (e *costExecutable[T]) ShouldRetryPrecheck(types.Status) bool {
	return false
}

func (e *costExecutable[T]) ShouldRetry(*services.Response) bool {
	return false
}

func (e *costExecutable[T]) MakeResponse(response *services.Response, _ *services.Query, _ types.AccountId,
	_ *types.TransactionId) (types.HbarAmount, error) {
	return codec.QueryCost(response)
}

func (e *costExecutable[T]) MakeErrorPrecheck(status types.Status, transactionId *types.TransactionId,
	response *services.Response) error {
	return makeErrorPrecheck(e.data.transactionId(), status, transactionId, response)
}

// makeErrorPrecheck picks the precheck error kind: about an existing transaction, about the payment or neither
func makeErrorPrecheck(
	queriedTransactionId *types.TransactionId,
	status types.Status,
	paymentTransactionId *types.TransactionId,
	response *services.Response,
) error {
	precheckErr := &hErrors.PrecheckError{Status: status}
	if header := codec.ResponseHeader(response); header != nil && header.Cost != 0 {
		if tinybars, err := tools.CastToInt64(header.Cost); err == nil {
			cost := types.HbarFromTinybars(tinybars)
			precheckErr.Cost = &cost
		}
	}

	switch {
	case queriedTransactionId != nil:
		precheckErr.Kind = hErrors.PrecheckQuery
		precheckErr.TransactionId = queriedTransactionId
	case paymentTransactionId != nil:
		precheckErr.Kind = hErrors.PrecheckQueryPayment
		precheckErr.TransactionId = paymentTransactionId
	default:
		precheckErr.Kind = hErrors.PrecheckQueryNoPayment
	}

	return precheckErr
}
