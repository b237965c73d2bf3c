/*
 Copyright 2026 LoftFS Authors.

 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package hierarchy

import (
	"time"

	"github.com/bluele/gcache"

	"github.com/loftfs/loftfs/pkg/types"
)

const (
	defaultEntryCacheSize   = 1 << 12
	defaultEntryCacheExpire = time.Minute * 5
)

// entryCache is per process. A delete committed by another process is
// invisible here until the entry expires, so a stale read may survive up
// to defaultEntryCacheExpire.
type entryCache struct {
	entries gcache.Cache
}

func (c *entryCache) getEntry(id int64) (*types.Entry, error) {
	cached, err := c.entries.Get(id)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached.(*types.Entry), nil
	}
	return nil, types.ErrNotFound
}

func (c *entryCache) setEntry(entry *types.Entry) {
	_ = c.entries.Set(entry.ID, entry)
}

func (c *entryCache) invalidEntry(idList ...int64) {
	for _, id := range idList {
		c.entries.Remove(id)
	}
}

func newEntryCache() *entryCache {
	return &entryCache{
		entries: gcache.New(defaultEntryCacheSize).LFU().
			Expiration(defaultEntryCacheExpire).Build(),
	}
}
