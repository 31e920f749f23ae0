/*-
 * ‌
 * Hedera Mirror Node
 * ​
 * Copyright (C) 2019 - 2021 Hedera Hashgraph, LLC
 * ​
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
 * ‍
 */

package main

import (
	"bytes"
	"reflect"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	configName     = "application"
	configPrefix   = "hedera.sdk.engine.test"
	configTypeYaml = "yml"
	defaultConfig  = `
hedera:
  sdk:
    engine:
      test:
        log:
          level: info
        operator: 0.0.1001
        retry:
          initialBackoff: 1ms
          maxAttempts: 10
          maxBackoff: 2ms
          requestTimeout: 10s
`
)

type config struct {
	Log      logConfig
	Operator types.AccountId
	Retry    retryConfig
}

type logConfig struct {
	Level string
}

type retryConfig struct {
	InitialBackoff time.Duration
	MaxAttempts    int
	MaxBackoff     time.Duration
	RequestTimeout time.Duration
}

func loadConfig() (*config, error) {
	viper.SetConfigType(configTypeYaml)

	// read the default
	if err := viper.ReadConfig(bytes.NewBuffer([]byte(defaultConfig))); err != nil {
		return nil, err
	}

	// the external configuration file in the current directory is optional
	viper.SetConfigName(configName)
	viper.AddConfigPath(".")
	if err := viper.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Info("No external configuration file found, using the default")
	} else {
		log.Infof("Loaded external configuration file %s", viper.ConfigFileUsed())
	}

	config := &config{}
	if err := viper.Sub(configPrefix).Unmarshal(config, addDecodeHooks); err != nil {
		log.Errorf("Failed to unmarshal config %v", err)
		return nil, err
	}

	return config, nil
}

func addDecodeHooks(c *mapstructure.DecoderConfig) {
	hooks := []mapstructure.DecodeHookFunc{accountIdDecodeHook}
	if c.DecodeHook != nil {
		hooks = append([]mapstructure.DecodeHookFunc{c.DecodeHook}, hooks...)
	}
	c.DecodeHook = mapstructure.ComposeDecodeHookFunc(hooks...)
}

func accountIdDecodeHook(_, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(types.AccountId{}) {
		return data, nil
	}

	switch value := data.(type) {
	case string:
		return types.AccountIdFromString(value)
	case float64:
		// a yaml value such as 0.0.1001 isn't a number, but 1001 is
		return types.NewAccountId(0, 0, uint64(value)), nil
	case int:
		return types.NewAccountId(0, 0, uint64(value)), nil
	default:
		return nil, errors.Errorf("Invalid data type %T for types.AccountId", data)
	}
}
