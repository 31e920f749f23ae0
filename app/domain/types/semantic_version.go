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
	"strconv"
	"strings"

	"github.com/hashgraph/hedera-sdk-go/v2/proto/services"
)

// SemanticVersion is major.minor.patch[-prerelease][+build]
type SemanticVersion struct {
	Major      uint32
	Minor      uint32
	Patch      uint32
	Prerelease string
	Build      string
}

func (v SemanticVersion) String() string {
	version := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		version += "-" + v.Prerelease
	}

	if v.Build != "" {
		version += "+" + v.Build
	}

	return version
}

func (v SemanticVersion) ToProto() *services.SemanticVersion {
	return &services.SemanticVersion{
		Major: int32(v.Major),
		Minor: int32(v.Minor),
		Patch: int32(v.Patch),
		Pre:   v.Prerelease,
		Build: v.Build,
	}
}

func SemanticVersionFromProto(pb *services.SemanticVersion) SemanticVersion {
	if pb == nil {
		return SemanticVersion{}
	}

	return SemanticVersion{
		Major:      uint32(pb.Major),
		Minor:      uint32(pb.Minor),
		Patch:      uint32(pb.Patch),
		Prerelease: pb.Pre,
		Build:      pb.Build,
	}
}

func SemanticVersionFromString(value string) (SemanticVersion, error) {
	parts := strings.SplitN(value, ".", 3)
	if len(parts) != 3 {
		return SemanticVersion{}, newParseError(value, "expected major.minor.patch")
	}

	rest, build, hasBuild := strings.Cut(parts[2], "+")
	patch, prerelease, hasPrerelease := strings.Cut(rest, "-")

	var version SemanticVersion
	var err error
	if version.Major, err = parseVersionNumber(value, parts[0], "major"); err != nil {
		return SemanticVersion{}, err
	}

	if version.Minor, err = parseVersionNumber(value, parts[1], "minor"); err != nil {
		return SemanticVersion{}, err
	}

	if version.Patch, err = parseVersionNumber(value, patch, "patch"); err != nil {
		return SemanticVersion{}, err
	}

	if hasPrerelease {
		if err = validateIdentifiers(value, prerelease, "prerelease", true); err != nil {
			return SemanticVersion{}, err
		}
		version.Prerelease = prerelease
	}

	if hasBuild {
		if err = validateIdentifiers(value, build, "build", false); err != nil {
			return SemanticVersion{}, err
		}
		version.Build = build
	}

	return version, nil
}

func parseVersionNumber(input, section, name string) (uint32, error) {
	if hasLeadingZero(section) {
		return 0, newParseError(input, "%s version %q has a leading zero", name, section)
	}

	number, err := strconv.ParseUint(section, 10, 32)
	if err != nil {
		return 0, wrapParseError(input, err)
	}

	return uint32(number), nil
}

func validateIdentifiers(input, section, name string, noLeadingZeros bool) error {
	if section == "" {
		return newParseError(input, "empty %s section", name)
	}

	for _, identifier := range strings.Split(section, ".") {
		if identifier == "" {
			return newParseError(input, "empty %s identifier", name)
		}

		for _, ch := range identifier {
			if !isIdentifierChar(ch) {
				return newParseError(input, "invalid %s identifier %q", name, identifier)
			}
		}

		if noLeadingZeros && hasLeadingZero(identifier) {
			return newParseError(input, "numeric %s identifier %q has a leading zero", name, identifier)
		}
	}

	return nil
}

func isIdentifierChar(ch rune) bool {
	return ch == '-' || (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// hasLeadingZero is true for numeric strings like 01, "0" itself is fine
func hasLeadingZero(value string) bool {
	if len(value) < 2 || value[0] != '0' {
		return false
	}

	for _, ch := range value[1:] {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}
