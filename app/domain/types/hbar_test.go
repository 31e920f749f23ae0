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

func TestHbarString(t *testing.T) {
	tests := []struct {
		tinybars int64
		expected string
	}{
		{tinybars: 0, expected: "0 tℏ"},
		{tinybars: 9_999, expected: "9999 tℏ"},
		{tinybars: -9_999, expected: "-9999 tℏ"},
		{tinybars: 10_000, expected: "0.0001 ℏ"},
		{tinybars: -10_000, expected: "-0.0001 ℏ"},
		{tinybars: 100_000_000, expected: "1 ℏ"},
		{tinybars: 150_000_000, expected: "1.5 ℏ"},
		{tinybars: 200_000_001, expected: "2.00000001 ℏ"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, HbarFromTinybars(tt.tinybars).String())
		})
	}
}

func TestHbarFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{input: "1", expected: 100_000_000},
		{input: "2 ℏ", expected: 200_000_000},
		{input: "0.5 ℏ", expected: 50_000_000},
		{input: "-1.5", expected: -150_000_000},
		{input: "57 tℏ", expected: 57},
		{input: "3 μℏ", expected: 300},
		{input: "1.5 mℏ", expected: 150_000},
		{input: "1 kℏ", expected: 100_000_000_000},
		{input: "1 Mℏ", expected: 100_000_000_000_000},
		{input: "0.00000001 Gℏ", expected: 1_000_000_000},
		{input: "0.00000001", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			actual, err := HbarFromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual.Tinybars())
		})
	}
}

func TestHbarFractionalTinybar(t *testing.T) {
	for _, input := range []string{"0.000000001", "0.5 tℏ", "0.001 μℏ"} {
		t.Run(input, func(t *testing.T) {
			_, err := HbarFromString(input)
			var parseError *ParseError
			assert.ErrorAs(t, err, &parseError)
		})
	}
}

func TestHbarFromStringInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "1 xℏ", "1 ℏ extra", "100000000000 Gℏ"} {
		t.Run(input, func(t *testing.T) {
			_, err := HbarFromString(input)
			assert.Error(t, err)
		})
	}
}

func TestHbarFromRejectsNonDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "ratio", input: "1/3"},
		{name: "exponent", input: "1e3"},
		{name: "upper exponent", input: "2E-8"},
		{name: "hex", input: "0x10"},
		{name: "underscore", input: "1_000"},
		{name: "infinity", input: "Inf"},
		{name: "blank", input: " 1"},
		{name: "sign only", input: "-"},
		{name: "dot only", input: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// when
			_, err := HbarFrom(tt.input, Hbar)

			// then
			var parseError *ParseError
			assert.ErrorAs(t, err, &parseError)
		})
	}
}

func TestHbarFromAcceptsDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{name: "integer", input: "3", expected: 300_000_000},
		{name: "plus sign", input: "+1", expected: 100_000_000},
		{name: "leading dot", input: ".5", expected: 50_000_000},
		{name: "negative fraction", input: "-0.25", expected: -25_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// when
			actual, err := HbarFrom(tt.input, Hbar)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual.Tinybars())
		})
	}
}

func TestHbarTinybarRoundTrip(t *testing.T) {
	for _, tinybars := range []int64{0, 1, -1, 10_000, 123_456_789_012, MaxHbar.Tinybars(), MinHbar.Tinybars()} {
		amount := HbarFromTinybars(tinybars)
		assert.Equal(t, tinybars, amount.Tinybars())

		parsed, err := HbarFromString(amount.String())
		require.NoError(t, err)
		assert.Equal(t, amount, parsed)
	}
}

func TestHbarTo(t *testing.T) {
	amount := NewHbar(3)
	assert.Equal(t, "300000000", amount.To(Tinybar))
	assert.Equal(t, "3", amount.To(Hbar))
	assert.Equal(t, "0.003", amount.To(Kilobar))
	assert.Equal(t, "3000", amount.To(Millibar))
}

func TestHbarArithmetic(t *testing.T) {
	one := NewHbar(1)
	two := NewHbar(2)

	assert.Equal(t, NewHbar(3), one.Add(two))
	assert.Equal(t, NewHbar(-1), one.Sub(two))
	assert.Equal(t, NewHbar(-1), one.Negated())
	assert.Equal(t, NewHbar(4), two.Mul(2))
	assert.Equal(t, -1, one.Cmp(two))
	assert.Equal(t, 1, two.Cmp(one))
	assert.Equal(t, 0, one.Cmp(HbarFromTinybars(100_000_000)))
}

func TestHbarUnmarshalText(t *testing.T) {
	var amount HbarAmount
	require.NoError(t, amount.UnmarshalText([]byte("2 ℏ")))
	assert.Equal(t, NewHbar(2), amount)

	text, err := amount.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2 ℏ", string(text))

	assert.Error(t, amount.UnmarshalText([]byte("bogus")))
}
