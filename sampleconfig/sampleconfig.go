// Copyright (c) 2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sampleconfig

// FileContents is a string containing the commented example config for
// bitcoinrpcctl.
const FileContents = `[Application Options]

; ------------------------------------------------------------------------------
; Network settings
; ------------------------------------------------------------------------------

; Use testnet3, testnet4, regtest or signet.  The network selects the default
; RPC port and the location of the cookie file.
; testnet=1
; testnet4=1
; regtest=1
; signet=1

; The RPC server to connect to.  The port of the selected network is added when
; none is given: 8332 for mainnet, 18332 for testnet3, 48332 for testnet4, 18443
; for regtest and 38332 for signet.  A full URL such as https://node:443/path
; is accepted as well.
; rpcserver=localhost

; Send every command to the named wallet when the daemon has several loaded.
; rpcwallet=

; Connect via a SOCKS5 proxy.
; proxy=127.0.0.1:9050
; proxyuser=
; proxypass=

; Connect with TLS, for daemons behind a TLS terminating proxy, and optionally
; pin the certificate chain of that proxy.
; tls=1
; rpccert=~/.bitcoinrpcctl/proxy.cert

; Give up on a command after this long.
; timeout=30s


; ------------------------------------------------------------------------------
; Authentication
; ------------------------------------------------------------------------------

; Username and password as configured with rpcauth or rpcuser/rpcpassword in
; bitcoin.conf.
; rpcuser=
; rpcpass=

; Without a username the cookie file written by bitcoind is used.  It is looked
; up in the data directory of the selected network unless given explicitly.
; Environment variables are expanded so they may be used.
; datadir=~/.bitcoin
; rpccookiefile=~/.bitcoin/regtest/.cookie


; ------------------------------------------------------------------------------
; Logging
; ------------------------------------------------------------------------------

; Logging level {trace, debug, info, warn, error, critical, off}.
; debuglevel=warn

; Also write the log to a rotated file in this directory.
; logdir=~/.bitcoinrpcctl/logs
`
