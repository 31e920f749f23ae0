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

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/client"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/config"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/db"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/middleware"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/mirror"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/persistence"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func newRouter(engineConfig *config.Config, c *client.Client) (http.Handler, error) {
	healthController, err := middleware.NewHealthController(engineConfig, c)
	if err != nil {
		return nil, err
	}

	router := middleware.NewRouter(healthController, middleware.NewMetricsController())
	return middleware.TracingMiddleware(middleware.MetricsMiddleware(router)), nil
}

// newAddressBookSource returns the source the network is refreshed from, nil for the static roster
func newAddressBookSource(engineConfig *config.Config, c *client.Client) (client.AddressBookSource, error) {
	switch engineConfig.AddressBook.Source {
	case config.AddressBookSourceMirror:
		return mirror.NewAddressBookSource(c), nil
	case config.AddressBookSourceDatabase:
		dbClient, err := db.ConnectToDb(engineConfig.Db)
		if err != nil {
			return nil, err
		}
		return persistence.NewAddressBookRepository(dbClient), nil
	default:
		return nil, nil
	}
}

// updateNetwork refreshes the network once, then every period. A zero period disables the periodic refresh
func updateNetwork(ctx context.Context, c *client.Client, source client.AddressBookSource, period time.Duration) error {
	if err := c.UpdateNetwork(ctx, source); err != nil {
		log.Errorf("Failed to update network: %s", err)
	}

	if period == 0 {
		return nil
	}

	return c.RunNetworkUpdate(ctx, source, period)
}

// streamTopic logs the messages of the topic submitted from now on until ctx is done
func streamTopic(ctx context.Context, c *client.Client, topic string) error {
	topicId, err := types.EntityIdFromString(topic)
	if err != nil {
		return errors.Wrapf(err, "Invalid topic %s", topic)
	}

	query := mirror.NewTopicMessageQuery(topicId).SetStartTime(time.Now())
	log.Infof("Subscribing to topic %s", topicId)
	return mirror.SubscribeFunc[types.TopicMessage](ctx, c, query, func(message types.TopicMessage) error {
		middleware.ObserveTopicMessage(topicId, message)
		log.WithFields(log.Fields{
			"chunks":   len(message.Chunks),
			"sequence": message.SequenceNumber,
			"size":     len(message.Contents),
		}).Infof("Received topic %s message at %s", topicId, message.ConsensusTimestamp.Format(time.RFC3339Nano))
		return nil
	})
}
