// Copyright (c) 2017 The Namecoin developers
// Copyright (c) 2019 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// cookieCheckInterval is the minimum time between two stats of the cookie
// file.  bitcoind rewrites the file on every start.
const cookieCheckInterval = 30 * time.Second

func readCookieFile(path string) (username, password string, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return
	}

	s := strings.TrimSpace(string(b))
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		err = fmt.Errorf("malformed cookie file %s", path)
		return
	}

	username, password = parts[0], parts[1]
	return
}

// cookieRetriever hands out the credentials stored in a bitcoind cookie file
// and re-reads the file when its modification time changes.  It is safe for
// concurrent use.
type cookieRetriever struct {
	path     string
	interval time.Duration

	mtx           sync.Mutex
	lastCheckTime time.Time
	lastModTime   time.Time
	username      string
	password      string
	err           error
}

func newCookieRetriever(path string) *cookieRetriever {
	return &cookieRetriever{
		path:     path,
		interval: cookieCheckInterval,
	}
}

// retrieve returns the current credentials.
func (c *cookieRetriever) retrieve() (username, password string, err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	now := time.Now()
	if !c.lastCheckTime.IsZero() && now.Before(c.lastCheckTime.Add(c.interval)) {
		return c.username, c.password, c.err
	}
	c.lastCheckTime = now

	st, err := os.Stat(c.path)
	if err != nil {
		c.err = err
		return "", "", err
	}

	modTime := st.ModTime()
	if !modTime.Equal(c.lastModTime) || c.err != nil {
		c.lastModTime = modTime
		c.username, c.password, c.err = readCookieFile(c.path)
		if c.err == nil {
			log.Debugf("Loaded RPC credentials from cookie file %s",
				c.path)
		}
	}
	return c.username, c.password, c.err
}
