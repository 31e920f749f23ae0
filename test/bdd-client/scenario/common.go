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

package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/network"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/transaction"
	"github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const mirrorNode = "mirror.local:5600"

var (
	operatorId = types.NewAccountId(0, 0, 1001)
	settings   = client.DefaultSettings
	topicId    = types.NewEntityId(0, 0, 5000)
)

// SetupSettings sets the client settings every scenario starts with
func SetupSettings(s client.Settings) {
	settings = s
}

func SetupOperator(accountId types.AccountId) {
	operatorId = accountId
}

// engineFeature is the state of one scenario
type engineFeature struct {
	client    *client.Client
	err       error
	network   *scriptedNetwork
	payload   []byte
	responses []*transaction.Response
}

func (f *engineFeature) aNetworkOfNodes(count int) error {
	addresses := make(map[string]types.AccountId, count)
	for i := 0; i < count; i++ {
		addresses[fmt.Sprintf("10.0.0.%d:50211", i+3)] = types.NewAccountId(0, 0, uint64(i+3))
	}

	nodes, err := network.New(addresses, network.DefaultHealthConfig)
	if err != nil {
		return err
	}

	key, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		return err
	}

	f.network = newScriptedNetwork()
	f.client = client.New(
		nodes,
		client.WithMirrorNetwork([]string{mirrorNode}),
		client.WithMirrorTransport(f.network),
		client.WithOperator(operatorId, types.NewPrivateKeySigner(key)),
		client.WithSettings(settings),
		client.WithTransport(f.network),
	)
	log.Debugf("Created scripted network with %d nodes", count)
	return nil
}

func (f *engineFeature) address(node string) (string, error) {
	accountId, err := types.AccountIdFromString(node)
	if err != nil {
		return "", err
	}

	addresses := f.client.Network().Addresses(accountId)
	if len(addresses) == 0 {
		return "", errors.Errorf("Node %s isn't part of the network", node)
	}
	return addresses[0], nil
}

func (f *engineFeature) receiptStatusIsScriptedAs(name string) error {
	value, ok := services.ResponseCodeEnum_value[name]
	if !ok {
		return errors.Errorf("Unknown status %s", name)
	}

	f.network.receiptStatus = services.ResponseCodeEnum(value)
	return nil
}

func (f *engineFeature) theReceiptStatusIs(ctx context.Context, name string) error {
	if f.err != nil {
		return f.err
	}

	response := f.responses[len(f.responses)-1]
	receipt, err := response.GetReceiptWithTimeout(ctx, f.client, 10*time.Second)
	if err != nil {
		return err
	}

	if receipt.Status.String() != name {
		return errors.Errorf("Expected receipt status %s, got %s", name, receipt.Status)
	}
	return nil
}

func (f *engineFeature) cleanup(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
	if f.client != nil {
		f.client.Close()
	}
	*f = engineFeature{}
	return ctx, err
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	f := &engineFeature{}

	ctx.After(f.cleanup)
	ctx.Step(`^a network of (\d+) nodes?$`, f.aNetworkOfNodes)
	ctx.Step(`^the receipt status is scripted as (\w+)$`, f.receiptStatusIsScriptedAs)
	ctx.Step(`^the receipt status is (\w+)$`, f.theReceiptStatusIs)

	initializeChunkingSteps(ctx, f)
	initializeRetrySteps(ctx, f)
}
