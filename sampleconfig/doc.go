// Copyright (c) 2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package sampleconfig provides a single constant that contains the contents of
the sample configuration file for bitcoinrpcctl.  Every option is commented
out, so the file can be written as is and edited afterwards.
*/
package sampleconfig
