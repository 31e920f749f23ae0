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

package persistence

import (
	"context"
	"database/sql"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/db"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/persistence/domain"
	"github.com/jackc/pgtype"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	addressBookFileNum = 102

	// the entries of the most recent address book of the file, a node's endpoints are sorted and either domain:port
	// or ip:port
	latestNodeServiceEndpoints = `with latest as (
                                    select start_consensus_timestamp
                                    from address_book
                                    where file_id = @file_id
                                    order by start_consensus_timestamp desc
                                    limit 1
                                  )
                                  select
                                    abe.node_id,
                                    abe.node_account_id,
                                    abe.description,
                                    array_remove(array_agg(
                                      coalesce(nullif(abse.domain_name, ''), abse.ip_address_v4) || ':' ||
                                        abse.port::text
                                      order by abse.domain_name, abse.ip_address_v4, abse.port
                                    ), null) endpoints
                                  from address_book_entry abe
                                  join latest on abe.consensus_timestamp = latest.start_consensus_timestamp
                                  left join address_book_service_endpoint abse on
                                    abse.consensus_timestamp = abe.consensus_timestamp and
                                    abse.node_id = abe.node_id
                                  group by abe.node_id, abe.node_account_id, abe.description
                                  order by abe.node_id`
)

type nodeServiceEndpoint struct {
	Description   string
	Endpoints     pgtype.TextArray
	NodeAccountId domain.EntityId
	NodeId        int64
}

// AddressBookRepository reads the network address book the mirror node importer persisted
type AddressBookRepository struct {
	dbClient db.DbClient
	fileId   types.EntityId
}

func NewAddressBookRepository(dbClient db.DbClient) *AddressBookRepository {
	return &AddressBookRepository{dbClient: dbClient, fileId: types.NewEntityId(0, 0, addressBookFileNum)}
}

// WithFileId reads the address book of fileId instead of 0.0.102
func (r *AddressBookRepository) WithFileId(fileId types.EntityId) *AddressBookRepository {
	return &AddressBookRepository{dbClient: r.dbClient, fileId: fileId}
}

// AddressBook returns the entries of the latest address book, empty when none was imported yet
func (r *AddressBookRepository) AddressBook(ctx context.Context) (types.NodeAddressBook, error) {
	fileId, err := domain.EncodeEntityId(r.fileId)
	if err != nil {
		return types.NodeAddressBook{}, err
	}

	gdb, cancel := r.dbClient.GetDbWithContext(ctx)
	defer cancel()

	nodes := make([]nodeServiceEndpoint, 0)
	if err = gdb.Raw(latestNodeServiceEndpoints, sql.Named("file_id", fileId)).Scan(&nodes).Error; err != nil {
		log.Errorf("Failed to get latest node service endpoints: %s", err)
		return types.NodeAddressBook{}, errors.Wrap(err, "Failed to get address book")
	}

	entries := make([]types.NodeAddress, 0, len(nodes))
	for _, node := range nodes {
		entityId, err := node.NodeAccountId.Decode()
		if err != nil {
			return types.NodeAddressBook{}, err
		}

		endpoints := make([]string, 0, len(node.Endpoints.Elements))
		for _, endpoint := range node.Endpoints.Elements {
			if endpoint.Status == pgtype.Present {
				endpoints = append(endpoints, endpoint.String)
			}
		}

		entries = append(entries, types.NodeAddress{
			Description:   node.Description,
			Endpoints:     endpoints,
			NodeAccountId: types.NewAccountIdFromEntityId(entityId),
			NodeId:        node.NodeId,
		})
	}

	log.Debugf("Read address book %s with %d nodes", r.fileId, len(entries))
	return types.NodeAddressBook{Entries: entries}, nil
}
