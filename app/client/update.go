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

package client

import (
	"context"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// AddressBookSource provides the current node address book
type AddressBookSource interface {
	AddressBook(ctx context.Context) (types.NodeAddressBook, error)
}

// UpdateNetwork replaces the roster with the nodes of the address book. An address book without any usable endpoint
// leaves the roster untouched
func (c *Client) UpdateNetwork(ctx context.Context, source AddressBookSource) error {
	addressBook, err := source.AddressBook(ctx)
	if err != nil {
		return errors.Wrap(err, "Failed to get address book")
	}

	addresses := addressBook.ToNetwork()
	if len(addresses) == 0 {
		log.Warnf("Ignored address book with %d nodes and no service endpoint", len(addressBook.Entries))
		return nil
	}

	return c.network.Update(addresses)
}

// RunNetworkUpdate updates the network every period until ctx is done. A failed update is logged and retried at the
// next period
func (c *Client) RunNetworkUpdate(ctx context.Context, source AddressBookSource, period time.Duration) error {
	if period <= 0 {
		return errors.Errorf("Invalid network update period %s", period)
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.UpdateNetwork(ctx, source); err != nil {
				log.Errorf("Failed to update network: %s", err)
			}
		}
	}
}
