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

package mirror

import (
	"github.com/prometheus/client_golang/prometheus"
)

var reconnectCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "hedera_sdk_engine_mirror_reconnects",
	Help: "Number of mirror node stream reconnections by request and cause.",
}, []string{"request", "cause"})

func init() {
	prometheus.WrapRegistererWith(prometheus.Labels{"application": "hedera-sdk-engine"}, prometheus.DefaultRegisterer).
		MustRegister(reconnectCounter)
}
