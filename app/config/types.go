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
	"fmt"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
)

const (
	AddressBookSourceDatabase = "database"
	AddressBookSourceMirror   = "mirror"
	AddressBookSourceStatic   = "static"

	NetworkLocal = "local"
)

type Config struct {
	AddressBook   AddressBook    `yaml:"addressBook"`
	Client        Client         `yaml:"client"`
	Db            Db             `yaml:"db"`
	Http          Http           `yaml:"http"`
	LedgerId      types.LedgerId `yaml:"ledgerId"`
	Log           Log            `yaml:"log"`
	Mirror        Mirror         `yaml:"mirror"`
	MirrorNetwork []string       `yaml:"mirrorNetwork"`
	Network       string         `yaml:"network" validate:"oneof=mainnet testnet previewnet local"`
	Node          Node           `yaml:"node"`
	Nodes         NodeMap        `yaml:"nodes"`
	Operator      Operator       `yaml:"operator"`
	Transaction   Transaction    `yaml:"transaction"`
}

type AddressBook struct {
	Source string `yaml:"source" validate:"oneof=static mirror database"`
}

type Client struct {
	AutoValidateChecksums    bool             `yaml:"autoValidateChecksums"`
	DefaultMaxQueryPayment   types.HbarAmount `yaml:"defaultMaxQueryPayment"`
	DefaultMaxTransactionFee types.HbarAmount `yaml:"defaultMaxTransactionFee"`
	GrpcDeadline             time.Duration    `yaml:"grpcDeadline" validate:"gt=0"`
	InitialBackoff           time.Duration    `yaml:"initialBackoff" validate:"gt=0"`
	MaxAttempts              int              `yaml:"maxAttempts" validate:"gt=0"`
	MaxBackoff               time.Duration    `yaml:"maxBackoff" validate:"gtefield=InitialBackoff"`
	NetworkUpdatePeriod      time.Duration    `yaml:"networkUpdatePeriod" validate:"gte=0"`
	RegenerateTransactionId  bool             `yaml:"regenerateTransactionId"`
	RequestTimeout           time.Duration    `yaml:"requestTimeout" validate:"gt=0"`
	Tls                      bool             `yaml:"tls"`
}

type Db struct {
	Host             string `yaml:"host"`
	Name             string `yaml:"name"`
	Password         string `yaml:"password"`
	Pool             Pool   `yaml:"pool"`
	Port             uint16 `yaml:"port"`
	StatementTimeout int    `yaml:"statementTimeout"`
	Username         string `yaml:"username"`
}

func (db Db) GetDsn() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s password=%s sslmode=disable",
		db.Host,
		db.Port,
		db.Username,
		db.Name,
		db.Password,
	)
}

type Http struct {
	IdleTimeout       time.Duration `yaml:"idleTimeout"`
	Port              uint16        `yaml:"port" validate:"gt=0"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	ReadTimeout       time.Duration `yaml:"readTimeout"`
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Mirror struct {
	SubscriptionTimeout time.Duration `yaml:"subscriptionTimeout" validate:"gt=0"`
}

type Node struct {
	MaxAttempts int           `yaml:"maxAttempts" validate:"gt=0"`
	MaxBackoff  time.Duration `yaml:"maxBackoff" validate:"gtefield=MinBackoff"`
	MinBackoff  time.Duration `yaml:"minBackoff" validate:"gt=0"`
}

// NodeMap maps a node endpoint host:port to its account id
type NodeMap map[string]types.AccountId

type Operator struct {
	AccountId  string `yaml:"accountId"`
	PrivateKey string `yaml:"privateKey"`
}

// IsSet is true when both the account and the key of the operator are configured
func (o Operator) IsSet() bool {
	return o.AccountId != "" && o.PrivateKey != ""
}

type Pool struct {
	MaxIdleConnections int `yaml:"maxIdleConnections"`
	MaxLifetime        int `yaml:"maxLifetime"`
	MaxOpenConnections int `yaml:"maxOpenConnections"`
}

type Transaction struct {
	ChunkSize           int           `yaml:"chunkSize" validate:"gt=0"`
	FileAppendChunkSize int           `yaml:"fileAppendChunkSize" validate:"gt=0"`
	MaxChunks           int           `yaml:"maxChunks" validate:"gt=0"`
	ValidDuration       time.Duration `yaml:"validDuration" validate:"gt=0"`
}
