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

package middleware

import (
	"context"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/execute"
	"github.com/hellofresh/health-go/v4"
	"github.com/hellofresh/health-go/v4/checks/postgres"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	livenessPath  = "/health/liveness"
	readinessPath = "/health/readiness"
)

// healthController holds data used to response to health checks
type healthController struct {
	livenessHealth  *health.Health
	readinessHealth *health.Health
}

// NewHealthController creates a new HealthController object. The readiness check pings the network, and the database
// when it's the address book source
func NewHealthController(engineConfig *config.Config, c *client.Client) (Router, error) {
	livenessHealth, err := health.New()
	if err != nil {
		return nil, err
	}

	readinessChecks := []health.Config{
		{
			Name:      "network",
			Timeout:   time.Second * 10,
			SkipOnErr: false,
			Check:     checkNetwork(c, defaultMetrics),
		},
	}
	if engineConfig.AddressBook.Source == config.AddressBookSourceDatabase {
		readinessChecks = append(readinessChecks, health.Config{
			Name:      "postgresql",
			Timeout:   time.Second * 10,
			SkipOnErr: false,
			Check:     postgres.New(postgres.Config{DSN: engineConfig.Db.GetDsn()}),
		})
	}

	readinessHealth, err := health.New(health.WithChecks(readinessChecks...))
	if err != nil {
		return nil, err
	}

	return &healthController{
		livenessHealth:  livenessHealth,
		readinessHealth: readinessHealth,
	}, nil
}

// Routes returns the Health controller routes
func (c *healthController) Routes() Routes {
	return Routes{
		{
			"liveness",
			"GET",
			livenessPath,
			c.livenessHealth.HandlerFunc,
		},
		{
			"readiness",
			"GET",
			readinessPath,
			c.readinessHealth.HandlerFunc,
		},
	}
}

// checkNetwork succeeds once a healthy node answers a ping
func checkNetwork(c *client.Client, metrics *engineMetrics) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		nodeAccountIds := c.Network().HealthyNodes(time.Now())
		metrics.healthyNodes.Set(float64(len(nodeAccountIds)))
		if len(nodeAccountIds) == 0 {
			return errors.New("No healthy node")
		}

		var err error
		for _, nodeAccountId := range nodeAccountIds {
			err = execute.Ping(ctx, c, nodeAccountId)
			metrics.observePing(nodeAccountId, err)
			if err == nil {
				return nil
			}
			log.Errorf("Readiness check, ping node %s failed: %s", nodeAccountId, err)
		}

		return err
	}
}
