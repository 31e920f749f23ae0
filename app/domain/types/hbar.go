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
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// HbarUnit is the number of tinybars in one unit
type HbarUnit int64

const (
	Tinybar  HbarUnit = 1
	Microbar HbarUnit = 100
	Millibar HbarUnit = 100_000
	Hbar     HbarUnit = 100_000_000
	Kilobar  HbarUnit = 1_000 * Hbar
	Megabar  HbarUnit = 1_000_000 * Hbar
	Gigabar  HbarUnit = 1_000_000_000 * Hbar

	// amounts within (-10000, 10000) tinybars are displayed in tinybars
	tinybarDisplayLimit = 10_000
)

var hbarUnitSymbols = map[HbarUnit]string{
	Tinybar:  "tℏ",
	Microbar: "μℏ",
	Millibar: "mℏ",
	Hbar:     "ℏ",
	Kilobar:  "kℏ",
	Megabar:  "Mℏ",
	Gigabar:  "Gℏ",
}

func (u HbarUnit) Symbol() string {
	return hbarUnitSymbols[u]
}

func (u HbarUnit) String() string {
	return u.Symbol()
}

func HbarUnitFromSymbol(symbol string) (HbarUnit, error) {
	for unit, unitSymbol := range hbarUnitSymbols {
		if unitSymbol == symbol {
			return unit, nil
		}
	}

	return 0, newParseError(symbol, "not a recognized hbar unit symbol")
}

// HbarAmount is a signed amount of hbar, stored in tinybars
type HbarAmount struct {
	tinybars int64
}

// decimalPattern accepts an optional sign then digits with an optional fraction, no exponent or ratio
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

var (
	ZeroHbar = HbarFromTinybars(0)
	MinHbar  = HbarFromTinybars(-50 * int64(Gigabar))
	MaxHbar  = HbarFromTinybars(50 * int64(Gigabar))
)

func HbarFromTinybars(tinybars int64) HbarAmount {
	return HbarAmount{tinybars: tinybars}
}

// NewHbar returns the amount of whole hbars
func NewHbar(hbars int64) HbarAmount {
	return HbarAmount{tinybars: hbars * int64(Hbar)}
}

// HbarFrom converts a decimal amount of the unit, failing when the result isn't a whole number of tinybars or
// doesn't fit in int64
func HbarFrom(amount string, unit HbarUnit) (HbarAmount, error) {
	if !decimalPattern.MatchString(amount) {
		return HbarAmount{}, newParseError(amount, "not a decimal number")
	}

	value, ok := new(big.Rat).SetString(amount)
	if !ok {
		return HbarAmount{}, newParseError(amount, "not a decimal number")
	}

	value.Mul(value, new(big.Rat).SetInt64(int64(unit)))
	if !value.IsInt() {
		return HbarAmount{}, newParseError(amount, "%s is not a whole number of tinybars", value.FloatString(8))
	}

	tinybars := value.Num()
	if !tinybars.IsInt64() {
		return HbarAmount{}, newParseError(amount, "amount out of range")
	}

	return HbarAmount{tinybars: tinybars.Int64()}, nil
}

// HbarFromString parses "<amount> <unit symbol>", the unit defaults to ℏ
func HbarFromString(value string) (HbarAmount, error) {
	amount, symbol, found := strings.Cut(value, " ")
	unit := Hbar
	if found {
		var err error
		if unit, err = HbarUnitFromSymbol(symbol); err != nil {
			return HbarAmount{}, err
		}
	}

	return HbarFrom(amount, unit)
}

func (h HbarAmount) Tinybars() int64 {
	return h.tinybars
}

// To returns the amount in the unit as an exact decimal string
func (h HbarAmount) To(unit HbarUnit) string {
	value := new(big.Rat).SetFrac64(h.tinybars, int64(unit))
	return trimDecimal(value.FloatString(decimalPlaces(unit)))
}

func (h HbarAmount) Negated() HbarAmount {
	return HbarAmount{tinybars: -h.tinybars}
}

func (h HbarAmount) Add(other HbarAmount) HbarAmount {
	return HbarAmount{tinybars: h.tinybars + other.tinybars}
}

func (h HbarAmount) Sub(other HbarAmount) HbarAmount {
	return HbarAmount{tinybars: h.tinybars - other.tinybars}
}

func (h HbarAmount) Mul(factor int64) HbarAmount {
	return HbarAmount{tinybars: h.tinybars * factor}
}

func (h HbarAmount) Cmp(other HbarAmount) int {
	switch {
	case h.tinybars < other.tinybars:
		return -1
	case h.tinybars > other.tinybars:
		return 1
	default:
		return 0
	}
}

func (h HbarAmount) String() string {
	if h.tinybars > -tinybarDisplayLimit && h.tinybars < tinybarDisplayLimit {
		return fmt.Sprintf("%d %s", h.tinybars, Tinybar.Symbol())
	}

	return fmt.Sprintf("%s %s", h.To(Hbar), Hbar.Symbol())
}

// MarshalText and UnmarshalText let amounts be used in config files and flags, e.g. "2 ℏ"
func (h HbarAmount) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HbarAmount) UnmarshalText(text []byte) error {
	parsed, err := HbarFromString(string(text))
	if err != nil {
		return err
	}

	*h = parsed
	return nil
}

func decimalPlaces(unit HbarUnit) int {
	places := 0
	for value := int64(unit); value > 1; value /= 10 {
		places++
	}

	return places
}

func trimDecimal(value string) string {
	if !strings.Contains(value, ".") {
		return value
	}

	return strings.TrimSuffix(strings.TrimRight(value, "0"), ".")
}
