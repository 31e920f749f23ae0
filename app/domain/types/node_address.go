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

package types

import (
	"net"
	"strconv"

	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
	"github.com/pkg/errors"
)

// NodeAddress is one entry of the network address book
type NodeAddress struct {
	NodeId        int64
	NodeAccountId AccountId
	Endpoints     []string
	Description   string
}

// NodeAddressBook is the list of node addresses
type NodeAddressBook struct {
	Entries []NodeAddress
}

func NodeAddressFromProto(pb *services.NodeAddress) (NodeAddress, error) {
	if pb == nil {
		return NodeAddress{}, errNilProto("NodeAddress")
	}

	accountId, err := AccountIdFromProto(pb.NodeAccountId)
	if err != nil {
		return NodeAddress{}, err
	}

	endpoints := make([]string, 0, len(pb.ServiceEndpoint))
	for _, serviceEndpoint := range pb.ServiceEndpoint {
		endpoint, err := endpointFromProto(serviceEndpoint)
		if err != nil {
			return NodeAddress{}, err
		}
		endpoints = append(endpoints, endpoint)
	}

	return NodeAddress{
		NodeId:        pb.NodeId,
		NodeAccountId: accountId,
		Endpoints:     endpoints,
		Description:   pb.Description,
	}, nil
}

// ToNetwork flattens the address book into the endpoint to node account map used by the client network
func (b NodeAddressBook) ToNetwork() map[string]AccountId {
	network := make(map[string]AccountId)
	for _, entry := range b.Entries {
		for _, endpoint := range entry.Endpoints {
			network[endpoint] = entry.NodeAccountId
		}
	}

	return network
}

func endpointFromProto(pb *services.ServiceEndpoint) (string, error) {
	port := strconv.Itoa(int(pb.Port))
	if pb.DomainName != "" {
		return net.JoinHostPort(pb.DomainName, port), nil
	}

	if len(pb.IpAddressV4) != net.IPv4len {
		return "", errors.Errorf("Invalid IPv4 address with %d bytes", len(pb.IpAddressV4))
	}

	return net.JoinHostPort(net.IP(pb.IpAddressV4).String(), port), nil
}
