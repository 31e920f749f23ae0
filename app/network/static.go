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

package network

import "github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"

const (
	Mainnet    = types.Mainnet
	Testnet    = types.Testnet
	Previewnet = types.Previewnet

	nodePort = "50211"
)

var mainnetNodes = []staticNode{
	{3, []string{"35.237.200.180", "34.239.82.6", "13.82.40.153", "13.124.142.126", "15.164.44.66", "15.165.118.251"}},
	{4, []string{"35.186.191.247", "3.130.52.236", "137.116.36.18"}},
	{5, []string{"35.192.2.25", "3.18.18.254", "104.43.194.202", "23.111.186.250", "74.50.117.35", "107.155.64.98"}},
	{6, []string{"35.199.161.108", "13.52.108.243", "13.64.151.232", "13.235.15.32", "104.211.205.124", "13.71.90.154"}},
	{7, []string{"35.203.82.240", "3.114.54.4", "23.102.74.34"}},
	{8, []string{"35.236.5.219", "35.183.66.150", "23.96.185.18"}},
	{9, []string{"35.197.192.225", "35.181.158.250", "23.97.237.125", "31.214.8.131"}},
	{10, []string{"35.242.233.154", "3.248.27.48", "65.52.68.254", "179.190.33.184"}},
	{11, []string{"35.240.118.96", "13.53.119.185", "23.97.247.27", "69.87.222.61", "96.126.72.172", "69.87.221.231"}},
	{12, []string{"35.204.86.32", "35.177.162.180", "51.140.102.228"}},
	{13, []string{"35.234.132.107", "34.215.192.104", "13.77.158.252"}},
	{14, []string{"35.236.2.27", "52.8.21.141", "40.114.107.85"}},
	{15, []string{"35.228.11.53", "3.121.238.26", "40.89.139.247"}},
	{16, []string{"34.91.181.183", "18.157.223.230", "13.69.120.73"}},
	{17, []string{"34.86.212.247", "18.232.251.19", "40.114.92.39"}},
	{18, []string{"172.105.247.67", "172.104.150.132", "139.162.156.222"}},
	{19, []string{"34.89.87.138", "18.168.4.59", "51.140.43.81", "13.246.51.42", "13.244.166.210"}},
	{20, []string{"34.82.78.255", "13.77.151.212"}},
	{21, []string{"34.76.140.109", "13.36.123.209"}},
	{22, []string{"34.64.141.166", "52.78.202.34"}},
	{23, []string{"35.232.244.145", "3.18.91.176"}},
	{24, []string{"34.89.103.38", "18.135.7.211"}},
	{25, []string{"34.93.112.7", "13.232.240.207"}},
	{26, []string{"34.87.150.174", "13.228.103.14"}},
	{27, []string{"34.125.200.96", "13.56.4.96"}},
	{28, []string{"35.198.220.75", "18.139.47.5"}},
}

var testnetNodes = []staticNode{
	{3, []string{"0.testnet.hedera.com", "34.94.106.61", "50.18.132.211", "138.91.142.219"}},
	{4, []string{"1.testnet.hedera.com", "35.237.119.55", "3.212.6.13", "52.168.76.241"}},
	{5, []string{"2.testnet.hedera.com", "35.245.27.193", "52.20.18.86", "40.79.83.124"}},
	{6, []string{"3.testnet.hedera.com", "34.83.112.116", "54.70.192.33", "52.183.45.65"}},
	{7, []string{"4.testnet.hedera.com", "34.94.160.4", "54.176.199.109", "13.64.181.136"}},
	{8, []string{"5.testnet.hedera.com", "34.106.102.218", "35.155.49.147", "13.78.238.32"}},
	{9, []string{"6.testnet.hedera.com", "34.133.197.230", "52.14.252.207", "52.165.17.231"}},
}

var previewnetNodes = []staticNode{
	{3, []string{"0.previewnet.hedera.com", "35.231.208.148", "3.211.248.172", "40.121.64.48"}},
	{4, []string{"1.previewnet.hedera.com", "35.199.15.177", "3.133.213.146", "40.70.11.202"}},
	{5, []string{"2.previewnet.hedera.com", "35.225.201.195", "52.15.105.130", "104.43.248.63"}},
	{6, []string{"3.previewnet.hedera.com", "35.247.109.135", "54.241.38.1", "13.88.22.47"}},
	{7, []string{"4.previewnet.hedera.com", "35.235.65.51", "54.177.51.127", "13.64.170.40"}},
	{8, []string{"5.previewnet.hedera.com", "34.106.247.65", "35.83.89.171", "13.78.232.192"}},
	{9, []string{"6.previewnet.hedera.com", "34.125.23.49", "50.18.17.93", "20.150.136.89"}},
}

var mirrorNetworks = map[string][]string{
	Mainnet:    {"mainnet-public.mirrornode.hedera.com:443"},
	Testnet:    {"hcs.testnet.mirrornode.hedera.com:5600"},
	Previewnet: {"hcs.previewnet.mirrornode.hedera.com:5600"},
}

var staticNetworks = map[string][]staticNode{
	Mainnet:    mainnetNodes,
	Testnet:    testnetNodes,
	Previewnet: previewnetNodes,
}

type staticNode struct {
	num   uint64
	hosts []string
}
