package rpcclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// BackendVersion represents the version of the backend the client is currently
// connected to.
type BackendVersion uint8

const (
	// BitcoindPre19 represents a bitcoind version before 0.19.0.
	BitcoindPre19 BackendVersion = iota

	// BitcoindPre22 represents a bitcoind version equal to or greater than
	// 0.19.0 and smaller than 22.0.0.
	BitcoindPre22

	// BitcoindPre24 represents a bitcoind version equal to or greater than
	// 22.0.0 and smaller than 24.0.0.
	BitcoindPre24

	// BitcoindPre25 represents a bitcoind version equal to or greater than
	// 24.0.0 and smaller than 25.0.0.
	BitcoindPre25

	// BitcoindPre28 represents a bitcoind version equal to or greater than
	// 25.0.0 and smaller than 28.0.0.
	BitcoindPre28

	// BitcoindPost28 represents a bitcoind version equal to or greater than
	// 28.0.0.
	BitcoindPost28
)

// String returns a human-readable backend version.
func (b BackendVersion) String() string {
	switch b {
	case BitcoindPre19:
		return "bitcoind 0.19 and below"

	case BitcoindPre22:
		return "bitcoind v0.19.0-v22.0.0"

	case BitcoindPre24:
		return "bitcoind v22.0.0-v24.0.0"

	case BitcoindPre25:
		return "bitcoind v24.0.0-v25.0.0"

	case BitcoindPre28:
		return "bitcoind v25.0.0-v28.0.0"

	case BitcoindPost28:
		return "bitcoind v28.0.0 and above"

	default:
		return "unknown"
	}
}

// SupportsJSONRPC2 reports whether the backend answers JSON-RPC 2.0 requests
// the strict way, reporting RPC errors with a 200 status.  Older versions use
// 500 or 404, which the client surfaces as an HTTPStatusError.
func (b BackendVersion) SupportsJSONRPC2() bool {
	return b >= BitcoindPost28
}

// semver is a major, minor, patch triple.
type semver [3]int

// less reports whether v sorts before o.
func (v semver) less(o semver) bool {
	for i := range v {
		if v[i] != o[i] {
			return v[i] < o[i]
		}
	}
	return false
}

var (
	bitcoind19 = semver{0, 19, 0}
	bitcoind22 = semver{22, 0, 0}
	bitcoind24 = semver{24, 0, 0}
	bitcoind25 = semver{25, 0, 0}
	bitcoind28 = semver{28, 0, 0}
)

const (
	// bitcoindVersionPrefix specifies the prefix included in every bitcoind
	// version exposed through GetNetworkInfo.
	bitcoindVersionPrefix = "/Satoshi:"

	// bitcoindVersionSuffix specifies the suffix included in every bitcoind
	// version exposed through GetNetworkInfo.
	bitcoindVersionSuffix = "/"
)

// parseSemver parses a dotted version number.  Missing components are zero
// and anything following the digits of a component, such as an rc suffix or
// a user agent comment, is ignored.
func parseSemver(s string) (semver, error) {
	var v semver
	parts := strings.SplitN(s, ".", len(v))
	for i, part := range parts {
		end := 0
		for end < len(part) && part[end] >= '0' && part[end] <= '9' {
			end++
		}
		if end == 0 {
			return v, fmt.Errorf("invalid version component %q", part)
		}
		n, err := strconv.Atoi(part[:end])
		if err != nil {
			return v, err
		}
		v[i] = n

		// Stop at the first component carrying a suffix.
		if end != len(part) {
			break
		}
	}
	return v, nil
}

// parseBitcoindVersion parses the bitcoind version from the subversion
// reported by getnetworkinfo, such as "/Satoshi:27.1.0/".
func parseBitcoindVersion(subversion string) (BackendVersion, error) {
	if !strings.HasPrefix(subversion, bitcoindVersionPrefix) {
		return 0, fmt.Errorf("%w: %q", ErrBackendVersion, subversion)
	}

	// Trim the version of its prefix and suffix to determine the
	// appropriate version number.
	version := strings.TrimPrefix(
		strings.TrimSuffix(subversion, bitcoindVersionSuffix),
		bitcoindVersionPrefix,
	)
	v, err := parseSemver(version)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrBackendVersion,
			subversion, err)
	}

	switch {
	case v.less(bitcoind19):
		return BitcoindPre19, nil

	case v.less(bitcoind22):
		return BitcoindPre22, nil

	case v.less(bitcoind24):
		return BitcoindPre24, nil

	case v.less(bitcoind25):
		return BitcoindPre25, nil

	case v.less(bitcoind28):
		return BitcoindPre28, nil

	default:
		return BitcoindPost28, nil
	}
}

// BackendVersion retrieves the version of the backend the client is currently
// connected to with getnetworkinfo.  The result of the first successful call
// is cached for the lifetime of the client.
func (c *Client) BackendVersion(ctx context.Context) (BackendVersion, error) {
	c.versionMtx.Lock()
	defer c.versionMtx.Unlock()

	if c.backendVersion != nil {
		return *c.backendVersion, nil
	}

	info, err := c.GetNetworkInfo(ctx)
	if err != nil {
		return 0, err
	}

	version, err := parseBitcoindVersion(info.SubVersion)
	if err != nil {
		return 0, err
	}

	log.Debugf("Detected %v (subversion %s)", version, info.SubVersion)
	c.backendVersion = &version
	return version, nil
}
