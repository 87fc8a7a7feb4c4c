// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import "sync/atomic"

// IDGenerator produces the id of each request sent by a Client.  The
// returned value must be a string, a number or nil, see
// btcjson.IsValidIDType.  Implementations must be safe for concurrent use.
type IDGenerator interface {
	NextID() interface{}
}

// Counter is the default IDGenerator.  It hands out consecutive integers
// starting at 1.  The zero value is ready to use.
type Counter struct {
	id atomic.Uint64
}

// NextID returns the next id of the sequence.
func (c *Counter) NextID() interface{} {
	return c.id.Add(1)
}

// IDFunc adapts an ordinary function to the IDGenerator interface.
type IDFunc func() interface{}

// NextID calls f.
func (f IDFunc) NextID() interface{} {
	return f()
}
