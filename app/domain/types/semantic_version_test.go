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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemanticVersionFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected SemanticVersion
	}{
		{input: "0.0.0", expected: SemanticVersion{}},
		{input: "1.2.3", expected: SemanticVersion{Major: 1, Minor: 2, Patch: 3}},
		{input: "0.31.0-alpha.1", expected: SemanticVersion{Minor: 31, Prerelease: "alpha.1"}},
		{input: "1.0.0+build.5", expected: SemanticVersion{Major: 1, Build: "build.5"}},
		{
			input:    "1.0.0-rc-1.0+exp.sha.5114f85",
			expected: SemanticVersion{Major: 1, Prerelease: "rc-1.0", Build: "exp.sha.5114f85"},
		},
		{input: "1.0.0+001", expected: SemanticVersion{Major: 1, Build: "001"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			actual, err := SemanticVersionFromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
			assert.Equal(t, tt.input, actual.String())
			assert.Equal(t, tt.expected, SemanticVersionFromProto(actual.ToProto()))
		})
	}
}

func TestSemanticVersionFromStringInvalid(t *testing.T) {
	inputs := []string{
		"",
		"1.2",
		"01.2.3",
		"1.02.3",
		"1.2.03",
		"1.2.x",
		"-1.2.3",
		"1.2.3-",
		"1.2.3-alpha..1",
		"1.2.3-01",
		"1.2.3-al_pha",
		"1.2.3+",
		"1.2.3+bu!ld",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := SemanticVersionFromString(input)
			var parseError *ParseError
			assert.ErrorAs(t, err, &parseError)
		})
	}
}
