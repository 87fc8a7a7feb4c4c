// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package rpcclient implements a JSON-RPC client for Bitcoin Core.

# Overview

This client sends every call as an independent HTTP POST request carrying a
JSON-RPC 2.0 envelope and basic access authentication, the only mode
bitcoind supports.  No connection is kept beyond the pooling done by the
underlying http.Client, nothing is retried and nothing is cached: two
identical calls are two round trips.

# Synchronous vs Asynchronous API

The client provides both a synchronous (blocking) and asynchronous API.

The synchronous (blocking) API is typically sufficient for most use cases.  It
works by issuing the RPC and blocking until the response is received.  This
allows straightforward code where you have the response as soon as the
function returns.

The asynchronous API works on the concept of futures.  When you invoke the
async version of a command, it will quickly return an instance of a type that
promises to provide the result of the RPC at some future time.  In the
background, the RPC call is issued and the result is stored in the returned
instance.  Invoking the Receive method on the returned instance will either
return the result immediately if it has already arrived, or block until it
has.  This is useful since it provides the caller with greater control over
concurrency.

Every call takes a context.Context.  Cancelling it aborts the HTTP request.

# Generic Calls

Call and CallAsync send any method with positional parameters which are
marshalled with encoding/json, and return the raw result.  RawRequest does the
same with parameters which are already marshalled.  All the typed methods,
such as GetBlockCount or DecodePSBT, are thin layers over the same path.

# Request IDs

Each client owns an IDGenerator, by default a Counter handing out 1, 2, 3 and
so on.  Two clients never share a sequence.  The id echoed by the daemon is
checked against the request unless ConnConfig.DisableIDCheck is set.  An
absent or null echoed id is accepted, which is what bitcoind sends when it
could not parse the request.

# Errors

The errors returned by a call fall into the following categories:

  - *TransportError: the request could not be delivered or the response
    could not be read, including a cancelled or expired context, which
    errors.Is detects through it
  - *HTTPStatusError: the daemon answered with a non-2xx status, such as 401
    for bad credentials.  Daemons before v28 also report RPC errors this
    way; HTTPStatusError.RPCError extracts them
  - *btcjson.RPCError: the daemon reported an error with its code and
    message
  - *DecodingError: the response is not valid JSON-RPC, its id does not
    match, or the result does not have the expected shape
  - ErrInvalidParam and ErrClientShutdown, returned without sending anything

IsRPCError tests for a specific daemon error code regardless of the HTTP
status it came with.

# Lifecycle

Close stops accepting calls, waits for the ones in flight and releases idle
connections.  WithClient scopes a client to a function and closes it on every
exit path.

# Example Usage

The following is a quick example of using the client to query the height of
the chain tip:

	connCfg := &rpcclient.ConnConfig{
		Host:       "localhost:8332",
		CookiePath: "/home/user/.bitcoin/.cookie",
		DisableTLS: true,
	}
	err := rpcclient.WithClient(connCfg, func(client *rpcclient.Client) error {
		blockCount, err := client.GetBlockCount(context.Background())
		if err != nil {
			return err
		}
		log.Printf("Block count: %d", blockCount)
		return nil
	})
*/
package rpcclient
