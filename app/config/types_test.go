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

package config

import (
	"testing"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/stretchr/testify/assert"
)

func TestDbGetDsn(t *testing.T) {
	tests := []struct {
		name     string
		db       Db
		expected string
	}{
		{
			name: "mirror node",
			db: Db{
				Host:     "127.0.0.1",
				Name:     "mirror_node",
				Password: "mirror_node_pass",
				Port:     5432,
				Username: "mirror_node",
			},
			expected: "host=127.0.0.1 port=5432 user=mirror_node dbname=mirror_node password=mirror_node_pass sslmode=disable",
		},
		{
			name:     "pool settings aren't part of the dsn",
			db:       Db{Host: "db", Name: "mirror", Pool: Pool{MaxOpenConnections: 30}, Port: 6432, Username: "reader"},
			expected: "host=db port=6432 user=reader dbname=mirror password= sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.db.GetDsn())
		})
	}
}

func TestOperatorIsSet(t *testing.T) {
	tests := []struct {
		name     string
		operator Operator
		expected bool
	}{
		{name: "empty", operator: Operator{}},
		{name: "no key", operator: Operator{AccountId: "0.0.2"}},
		{name: "no account", operator: Operator{PrivateKey: "key"}},
		{name: "set", operator: Operator{AccountId: "0.0.2", PrivateKey: "key"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.operator.IsSet())
		})
	}
}

func TestParseNodes(t *testing.T) {
	nodes, err := parseNodes(" node0.local:50211:0.0.3 , 10.0.0.4:50211:0.0.4")

	assert.NoError(t, err)
	assert.Equal(t, NodeMap{
		"node0.local:50211": types.NewAccountId(0, 0, 3),
		"10.0.0.4:50211":    types.NewAccountId(0, 0, 4),
	}, nodes)
}
