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

package transport

import (
	"context"
	"crypto/tls"
	"strings"
	"sync"

	"github.com/Code-Hex/go-generics-cache"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/mirror"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	contentTypeHeader = "content-type"
	tlsPortSuffix     = ":443"
	userAgent         = "hedera-sdk-engine"
)

// Grpc is the grpc implementation of Transport and MirrorTransport. Connections are cached per address
type Grpc struct {
	channels    *cache.Cache[string, *grpc.ClientConn]
	dialOptions []grpc.DialOption
	mu          sync.Mutex
	tls         bool
}

type Option func(g *Grpc)

// WithTls enables transport security on all connections
func WithTls() Option {
	return func(g *Grpc) {
		g.tls = true
	}
}

// WithDialOptions adds dial options to every new connection
func WithDialOptions(options ...grpc.DialOption) Option {
	return func(g *Grpc) {
		g.dialOptions = append(g.dialOptions, options...)
	}
}

func NewGrpc(options ...Option) *Grpc {
	g := &Grpc{channels: cache.New[string, *grpc.ClientConn]()}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *Grpc) SubmitTransaction(
	ctx context.Context,
	address string,
	method TransactionMethod,
	transaction *services.Transaction,
) (*services.TransactionResponse, error) {
	conn, err := g.channel(address)
	if err != nil {
		return nil, err
	}

	var header metadata.MD
	callOption := grpc.Header(&header)
	var response *services.TransactionResponse

	switch method {
	case CryptoTransfer:
		response, err = services.NewCryptoServiceClient(conn).CryptoTransfer(ctx, transaction, callOption)
	case CryptoCreateAccount:
		response, err = services.NewCryptoServiceClient(conn).CreateAccount(ctx, transaction, callOption)
	case ConsensusCreateTopic:
		response, err = services.NewConsensusServiceClient(conn).CreateTopic(ctx, transaction, callOption)
	case ConsensusSubmitMessage:
		response, err = services.NewConsensusServiceClient(conn).SubmitMessage(ctx, transaction, callOption)
	case FileCreate:
		response, err = services.NewFileServiceClient(conn).CreateFile(ctx, transaction, callOption)
	case FileAppend:
		response, err = services.NewFileServiceClient(conn).AppendContent(ctx, transaction, callOption)
	default:
		return nil, errors.Errorf("Unsupported transaction method %d", method)
	}

	if err != nil {
		return nil, withContentType(err, header)
	}

	return response, nil
}

func (g *Grpc) SubmitQuery(ctx context.Context, address string, method QueryMethod, query *services.Query) (
	*services.Response,
	error,
) {
	conn, err := g.channel(address)
	if err != nil {
		return nil, err
	}

	var header metadata.MD
	callOption := grpc.Header(&header)
	var response *services.Response

	switch method {
	case CryptoGetBalance:
		response, err = services.NewCryptoServiceClient(conn).CryptoGetBalance(ctx, query, callOption)
	case TransactionGetReceipt:
		response, err = services.NewCryptoServiceClient(conn).GetTransactionReceipts(ctx, query, callOption)
	case TransactionGetRecord:
		response, err = services.NewCryptoServiceClient(conn).GetTxRecordByTxID(ctx, query, callOption)
	case FileGetContents:
		response, err = services.NewFileServiceClient(conn).GetFileContent(ctx, query, callOption)
	default:
		return nil, errors.Errorf("Unsupported query method %d", method)
	}

	if err != nil {
		return nil, withContentType(err, header)
	}

	return response, nil
}

func (g *Grpc) SubscribeTopic(ctx context.Context, address string, query *mirror.ConsensusTopicQuery) (
	Stream[*mirror.ConsensusTopicResponse],
	error,
) {
	conn, err := g.channel(address)
	if err != nil {
		return nil, err
	}

	return mirror.NewConsensusServiceClient(conn).SubscribeTopic(ctx, query)
}

func (g *Grpc) GetNodes(ctx context.Context, address string, query *mirror.AddressBookQuery) (
	Stream[*services.NodeAddress],
	error,
) {
	conn, err := g.channel(address)
	if err != nil {
		return nil, err
	}

	return mirror.NewNetworkServiceClient(conn).GetNodes(ctx, query)
}

// Close closes all cached connections
func (g *Grpc) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, address := range g.channels.Keys() {
		if conn, ok := g.channels.Get(address); ok {
			if err := conn.Close(); err != nil {
				log.Warnf("Failed to close connection to %s: %s", address, err)
			}
		}
		g.channels.Delete(address)
	}
}

func (g *Grpc) channel(address string) (*grpc.ClientConn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if conn, ok := g.channels.Get(address); ok {
		return conn, nil
	}

	options := []grpc.DialOption{grpc.WithUserAgent(userAgent)}
	if g.tls || strings.HasSuffix(address, tlsPortSuffix) {
		options = append(options, grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{
			MinVersion: tls.VersionTLS12,
		})))
	} else {
		options = append(options, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	options = append(options, g.dialOptions...)

	conn, err := grpc.NewClient(address, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to create channel to %s", address)
	}

	log.Debugf("Created channel to %s", address)
	g.channels.Set(address, conn)
	return conn, nil
}

// withContentType rewrites an Internal error from a non grpc endpoint so the html content type is visible in the
// status message
func withContentType(err error, header metadata.MD) error {
	s, ok := status.FromError(err)
	if !ok || s.Code() != codes.Internal {
		return err
	}

	for _, contentType := range header.Get(contentTypeHeader) {
		if strings.HasPrefix(contentType, htmlContentType) && !strings.Contains(s.Message(), htmlContentType) {
			return status.Errorf(codes.Internal, "%s: received content-type %s", s.Message(), contentType)
		}
	}

	return err
}
