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
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const (
	invalidYaml                   = "this is invalid"
	invalidYamlIncorrectAccountId = `
hedera:
  sdk:
    engine:
      nodes:
        "192.168.0.1:50211": 0.3`
	invalidYamlNetwork = `
hedera:
  sdk:
    engine:
      network: devnet`
	testConfigFilename = "application.yml"
	yml1               = `
hedera:
  sdk:
    engine:
      client:
        maxAttempts: 3
        defaultMaxTransactionFee: 5 ℏ
      db:
        port: 5431
        username: foobar
      transaction:
        chunkSize: 2048`
	yml2 = `
hedera:
  sdk:
    engine:
      db:
        host: 192.168.120.51
        port: 12000
      ledgerId: 0a
      mirrorNetwork:
        - mirror.local:5600
      network: LOCAL`
	serviceEndpoint = "192.168.0.1:50211"
)

func TestLoadDefaultConfig(t *testing.T) {
	config, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, getDefaultConfig(), config)
	assert.Equal(t, 500*time.Millisecond, config.Client.InitialBackoff)
	assert.Equal(t, 10, config.Client.MaxAttempts)
	assert.Equal(t, types.NewHbar(2), config.Client.DefaultMaxTransactionFee)
	assert.Equal(t, types.NewHbar(1), config.Client.DefaultMaxQueryPayment)
	assert.Equal(t, 1024, config.Transaction.ChunkSize)
	assert.Equal(t, 20, config.Transaction.MaxChunks)
	assert.Equal(t, 15*time.Minute, config.Mirror.SubscriptionTimeout)
}

func TestLoadDefaultConfigInvalidYamlString(t *testing.T) {
	original := defaultConfig
	defaultConfig = "foobar"

	config, err := LoadConfig()

	defaultConfig = original
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestLoadCustomConfig(t *testing.T) {
	tests := []struct {
		name    string
		fromCwd bool
	}{
		{name: "from current directory", fromCwd: true},
		{name: "from env var"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir, filePath := createYamlConfigFile(yml1, t)

			if tt.fromCwd {
				chdir(t, tempDir)
			} else {
				t.Setenv(configFileEnvKey, filePath)
			}

			config, err := LoadConfig()

			assert.NoError(t, err)
			assert.NotNil(t, config)
			assert.Equal(t, uint16(5431), config.Db.Port)
			assert.Equal(t, "foobar", config.Db.Username)
			assert.Equal(t, 3, config.Client.MaxAttempts)
			assert.Equal(t, types.NewHbar(5), config.Client.DefaultMaxTransactionFee)
			assert.Equal(t, 2048, config.Transaction.ChunkSize)
		})
	}
}

func TestLoadCustomConfigFromCwdAndEnvVar(t *testing.T) {
	// given
	tempDir1, _ := createYamlConfigFile(yml1, t)
	chdir(t, tempDir1)

	_, filePath2 := createYamlConfigFile(yml2, t)
	t.Setenv(configFileEnvKey, filePath2)

	// when
	config, err := LoadConfig()

	// then
	expected := getDefaultConfig()
	expected.Client.MaxAttempts = 3
	expected.Client.DefaultMaxTransactionFee = types.NewHbar(5)
	expected.Db.Host = "192.168.120.51"
	expected.Db.Port = 12000
	expected.Db.Username = "foobar"
	expected.LedgerId = types.NewLedgerId([]byte{10})
	expected.MirrorNetwork = []string{"mirror.local:5600"}
	expected.Network = NetworkLocal
	expected.Transaction.ChunkSize = 2048
	assert.NoError(t, err)
	assert.Equal(t, expected, config)
}

func TestLoadCustomConfigFromEnvVar(t *testing.T) {
	// given
	dbHost := "192.168.100.200"
	t.Setenv("HEDERA_SDK_ENGINE_DB_HOST", dbHost)
	t.Setenv("HEDERA_SDK_ENGINE_CLIENT_MAXATTEMPTS", "7")
	t.Setenv("HEDERA_SDK_ENGINE_CLIENT_MAXBACKOFF", "2m")

	// when
	config, err := LoadConfig()

	// then
	expected := getDefaultConfig()
	expected.Db.Host = dbHost
	expected.Client.MaxAttempts = 7
	expected.Client.MaxBackoff = 2 * time.Minute
	assert.NoError(t, err)
	assert.Equal(t, expected, config)
}

func TestLoadCustomConfigInvalidYaml(t *testing.T) {
	tests := []struct {
		name    string
		content string
		fromCwd bool
	}{
		{name: "invalid yaml", content: invalidYaml},
		{name: "invalid yaml from cwd", content: invalidYaml, fromCwd: true},
		{name: "incorrect account id", content: invalidYamlIncorrectAccountId},
		{name: "unsupported network", content: invalidYamlNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir, filePath := createYamlConfigFile(tt.content, t)

			if tt.fromCwd {
				chdir(t, tempDir)
			}

			t.Setenv(configFileEnvKey, filePath)

			config, err := LoadConfig()

			assert.Error(t, err)
			assert.Nil(t, config)
		})
	}
}

func TestLoadCustomConfigByEnvVarFileNotFound(t *testing.T) {
	// given
	t.Setenv(configFileEnvKey, "/foo/bar/not_found.yml")

	// when
	config, err := LoadConfig()

	// then
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestLoadNodeMapFromEnv(t *testing.T) {
	tests := []struct {
		value    string
		expected NodeMap
	}{
		{
			value:    "192.168.0.1:50211:0.0.3",
			expected: NodeMap{"192.168.0.1:50211": types.NewAccountId(0, 0, 3)},
		},
		{
			value: "192.168.0.1:50211:0.0.3,192.168.15.8:50211:0.0.4",
			expected: NodeMap{
				"192.168.0.1:50211":  types.NewAccountId(0, 0, 3),
				"192.168.15.8:50211": types.NewAccountId(0, 0, 4),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(nodesEnvKey, tt.value)

			// when
			config, err := LoadConfig()

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, config.Nodes)
		})
	}
}

func TestLoadNodeMapFromEnvError(t *testing.T) {
	values := []string{"192.168.0.1:0.0.3", "192.168.0.1:50211:0.3", "192.168.0.1"}
	for _, value := range values {
		t.Run(value, func(t *testing.T) {
			t.Setenv(nodesEnvKey, value)

			// when
			config, err := LoadConfig()

			// then
			assert.Error(t, err)
			assert.Nil(t, config)
		})
	}
}

func TestNodeMapDecodeHookFunc(t *testing.T) {
	nodeMapType := reflect.TypeOf(NodeMap{})
	tests := []struct {
		name        string
		from        reflect.Type
		data        interface{}
		expected    NodeMap
		expectError bool
	}{
		{
			name:     "valid data",
			from:     reflect.TypeOf(map[string]interface{}{}),
			data:     map[string]interface{}{serviceEndpoint: "0.0.3"},
			expected: NodeMap{serviceEndpoint: types.NewAccountId(0, 0, 3)},
		},
		{
			name:        "invalid data type",
			from:        reflect.TypeOf(map[int]string{}),
			data:        map[int]interface{}{1: "0.0.3"},
			expectError: true,
		},
		{
			name:        "invalid node account id",
			from:        reflect.TypeOf(map[string]interface{}{}),
			data:        map[string]interface{}{serviceEndpoint: "0.3"},
			expectError: true,
		},
		{
			name:        "alias node account id",
			from:        reflect.TypeOf(map[string]interface{}{}),
			data:        map[string]interface{}{serviceEndpoint: "0.0.00000000000000000000000000000000000004d2"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := nodeMapDecodeHookFunc(tt.from, nodeMapType, tt.data)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, actual)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, actual)
			}
		})
	}
}

func TestConfigRedacted(t *testing.T) {
	config := getDefaultConfig()
	config.Operator = Operator{AccountId: "0.0.2", PrivateKey: "302e020100300506032b657004220420"}

	actual := config.redacted()

	assert.NotContains(t, actual, config.Db.Password)
	assert.NotContains(t, actual, config.Operator.PrivateKey)
	assert.Contains(t, actual, redacted)
	assert.Equal(t, "302e020100300506032b657004220420", config.Operator.PrivateKey)
}

func createYamlConfigFile(content string, t *testing.T) (string, string) {
	tempDir := t.TempDir()
	customConfig := filepath.Join(tempDir, testConfigFilename)

	if err := os.WriteFile(customConfig, []byte(content), 0644); err != nil {
		assert.Fail(t, "Unable to create custom config", err)
	}

	return tempDir, customConfig
}

func chdir(t *testing.T, dir string) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

func getDefaultConfig() *Config {
	config := fullConfig{}
	_ = yaml.Unmarshal([]byte(defaultConfig), &config)
	return &config.Hedera.Sdk.Engine
}
