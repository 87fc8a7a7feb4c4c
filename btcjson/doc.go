// Copyright (c) 2013-2014 Conformal Systems LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package btcjson implements the JSON-RPC envelope spoken by bitcoind.

This package provides data structures and code for marshalling requests to
and unmarshalling responses from a running instance of bitcoind.  It does
not send anything over the wire; see the rpcclient package for that.

# Protocol

All requests sent to bitcoind are of the form:

	{"jsonrpc":"2.0","id":1,"method":"SOMEMETHOD","params":[...]}

The params member is always an array of positional parameters, empty when
the method takes none.

Replies carry either a result or an error:

	{"jsonrpc":"2.0","result":SOMETHING,"error":null,"id":1}

bitcoind includes both members and sets the unused one to null.  A strict
JSON-RPC 2.0 server omits the unused member instead.  The Response type
accepts both shapes.  The result member is kept as raw JSON, leaving the
choice of the concrete type to the caller.

When there is an error, the error member holds a numeric code and a message
which are surfaced unchanged as an *RPCError.  The codes bitcoind uses are
exported from this package, so a caller can write:

	if errors.Is(err, btcjson.NewRPCError(btcjson.ErrRPCBlockNotFound, "")) {
		// Handle the unknown block.
	}

# Result Types

The types ending in Result model the replies of the chain, mempool, network,
mining, raw transaction and PSBT commands.  Members which vary a lot between
daemon versions are kept as json.RawMessage.

# Errors

There are two distinct types of errors supported by this package:

  - General errors related to building requests and responses, such as an
    invalid id type or an unmarshallable parameter (type Error)
  - RPC errors which are returned by the daemon across the wire (type
    RPCError)

The general errors carry an ErrorCode which can be inspected after a type
assertion.
*/
package btcjson
