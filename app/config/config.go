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
	_ "embed"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

//go:embed application.yml
var defaultConfig string

const (
	configFileEnvKey = "HEDERA_SDK_ENGINE_CONFIG"
	configName       = "application"
	configTypeYaml   = "yml"
	envKeyDelimiter  = "_"
	keyDelimiter     = "::"
	nodesEnvKey      = "HEDERA_SDK_ENGINE_NODES"
	redacted         = "******"
)

type fullConfig struct {
	Hedera struct {
		Sdk struct {
			Engine Config
		}
	}
}

// decodeHook converts the yaml and env values to the config types. Hbar amounts, ledger ids and account ids
// implement encoding.TextUnmarshaler
var decodeHook = mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
	nodeMapDecodeHookFunc,
	mapstructure.TextUnmarshallerHookFunc(),
)

// LoadConfig builds the engine config from the embedded defaults, the optional application.yml in the working
// directory, the optional file named by HEDERA_SDK_ENGINE_CONFIG and finally the env variables
func LoadConfig() (*Config, error) {
	nodes, err := parseNodes(os.Getenv(nodesEnvKey))
	if err != nil {
		return nil, err
	}
	os.Unsetenv(nodesEnvKey)

	// node endpoints contain '.', so '::' separates nested keys
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigType(configTypeYaml)
	if err = v.ReadConfig(strings.NewReader(defaultConfig)); err != nil {
		return nil, errors.Wrap(err, "Invalid default configuration")
	}

	v.SetConfigName(configName)
	v.AddConfigPath(".")
	if err = mergeConfigFile(v); err != nil {
		return nil, err
	}

	if configFile, ok := os.LookupEnv(configFileEnvKey); ok {
		v.SetConfigFile(configFile)
		if err = mergeConfigFile(v); err != nil {
			return nil, err
		}
	}

	// env variables only override keys viper already knows from the files
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, envKeyDelimiter))

	var root fullConfig
	if err = v.Unmarshal(&root, viper.DecodeHook(decodeHook)); err != nil {
		return nil, errors.Wrap(err, "Failed to decode configuration")
	}

	engineConfig := &root.Hedera.Sdk.Engine
	engineConfig.Network = strings.ToLower(engineConfig.Network)
	if len(nodes) != 0 {
		engineConfig.Nodes = nodes
	}

	if err = validator.New().Struct(engineConfig); err != nil {
		return nil, errors.Wrap(err, "Invalid configuration")
	}

	log.Infof("Using configuration: %s", engineConfig.redacted())
	return engineConfig, nil
}

// redacted renders the config for logging with the passwords and keys masked
func (c Config) redacted() string {
	if c.Db.Password != "" {
		c.Db.Password = redacted
	}

	if c.Operator.PrivateKey != "" {
		c.Operator.PrivateKey = redacted
	}

	return fmt.Sprintf("%+v", c)
}

// parseNodes parses a comma separated list of host:port:account entries
func parseNodes(value string) (NodeMap, error) {
	if value == "" {
		return nil, nil
	}

	nodes := make(NodeMap)
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		separator := strings.LastIndex(entry, ":")
		if separator <= 0 || strings.Count(entry, ":") != 2 {
			return nil, errors.Errorf("Invalid node %s, expected host:port:account", entry)
		}

		accountId, err := parseNodeAccountId(entry[separator+1:])
		if err != nil {
			return nil, err
		}
		nodes[entry[:separator]] = accountId
	}

	return nodes, nil
}

func parseNodeAccountId(value string) (types.AccountId, error) {
	accountId, err := types.AccountIdFromString(value)
	if err != nil {
		return types.AccountId{}, err
	}

	if accountId.HasAlias() {
		return types.AccountId{}, errors.Errorf("Node account ID %s must not be an alias", value)
	}

	return accountId, nil
}

func mergeConfigFile(v *viper.Viper) error {
	err := v.MergeInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		log.Infof("Loaded external config file: %s", v.ConfigFileUsed())
		return nil
	case errors.As(err, &notFound):
		log.Info("External configuration file not found")
		return nil
	default:
		return errors.Wrapf(err, "Failed to merge config file %s", v.ConfigFileUsed())
	}
}

func nodeMapDecodeHookFunc(_, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(NodeMap{}) {
		return data, nil
	}

	if data == nil {
		return NodeMap(nil), nil
	}

	input, ok := data.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("Invalid data type %T for NodeMap", data)
	}

	nodes := make(NodeMap, len(input))
	for endpoint, value := range input {
		accountId, ok := value.(string)
		if !ok {
			return nil, errors.Errorf("Invalid data type %T for the account ID of node %s", value, endpoint)
		}

		nodeAccountId, err := parseNodeAccountId(accountId)
		if err != nil {
			return nil, err
		}
		nodes[endpoint] = nodeAccountId
	}

	return nodes, nil
}
