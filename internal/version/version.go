// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version provides a single location to house the version information
// for the command line tools in this repository.
package version

import (
	"fmt"
	"strings"
)

const (
	// semanticAlphabet defines the allowed characters for the pre-release
	// and build metadata identifiers of a semantic version string.
	semanticAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"
)

// These constants define the application version and follow the semantic
// versioning 2.0.0 spec (https://semver.org/).
const (
	Major uint = 0
	Minor uint = 1
	Patch uint = 0
)

var (
	// PreRelease is defined as a variable so it can be overridden during
	// the build process with:
	// '-ldflags "-X github.com/bibajz/bitcoinrpc/internal/version.PreRelease=foo"'
	// if needed.  Invalid characters are dropped.
	PreRelease = "beta"

	// BuildMetadata is defined as a variable so it can be overridden during
	// the build process with:
	// '-ldflags "-X github.com/bibajz/bitcoinrpc/internal/version.BuildMetadata=foo"'
	// if needed.  Invalid characters are dropped.
	BuildMetadata = ""
)

// String returns the application version as a properly formed string per the
// semantic versioning 2.0.0 spec.
func String() string {
	version := fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)

	// The hyphen and the plus called for by the semantic versioning spec
	// are added here and must not be part of the variables.
	if preRelease := normalizeIdentifiers(PreRelease); preRelease != "" {
		version = fmt.Sprintf("%s-%s", version, preRelease)
	}
	if build := normalizeIdentifiers(BuildMetadata); build != "" {
		version = fmt.Sprintf("%s+%s", version, build)
	}
	return version
}

// normalizeIdentifiers strips the characters outside of semanticAlphabet from
// each dot separated identifier of str and drops the identifiers left empty.
func normalizeIdentifiers(str string) string {
	var identifiers []string
	for _, ident := range strings.Split(str, ".") {
		var b strings.Builder
		for _, r := range ident {
			if strings.ContainsRune(semanticAlphabet, r) {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			identifiers = append(identifiers, b.String())
		}
	}
	return strings.Join(identifiers, ".")
}
