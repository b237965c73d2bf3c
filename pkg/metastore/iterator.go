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

package metastore

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/loftfs/loftfs/pkg/metastore/db"
	"github.com/loftfs/loftfs/pkg/types"
)

type EntryIterator interface {
	HasNext() bool
	Next() (*types.Entry, error)
}

const entryFetchPageSize = 100

// transactionEntryIterator pages through one child listing. The listing
// order is fixed: folders before files, then newest first, entry id as
// the final tiebreak.
type transactionEntryIterator struct {
	tx        *gorm.DB
	onePage   []db.Entry
	crtPage   int
	totalPage int
	mux       sync.Mutex
}

func newTransactionEntryIterator(tx *gorm.DB, total int64) EntryIterator {
	it := &transactionEntryIterator{tx: tx, onePage: make([]db.Entry, 0)}
	it.totalPage = int(total / entryFetchPageSize)
	if total%entryFetchPageSize > 0 {
		it.totalPage += 1
	}
	return it
}

func (i *transactionEntryIterator) HasNext() bool {
	i.mux.Lock()
	defer i.mux.Unlock()
	return len(i.onePage) > 0 || i.crtPage < i.totalPage
}

func (i *transactionEntryIterator) Next() (*types.Entry, error) {
	i.mux.Lock()
	defer i.mux.Unlock()
	defer logOperationLatency("iterator.next", time.Now())
	if len(i.onePage) == 0 && i.crtPage < i.totalPage {
		res := i.tx.Order("is_folder DESC, created_at DESC, id DESC").
			Limit(entryFetchPageSize).Offset(entryFetchPageSize * i.crtPage).Find(&i.onePage)
		if res.Error != nil {
			logOperationError("iterator.query_one_page", res.Error)
			return nil, db.SqlError2Error(res.Error)
		}
		i.crtPage += 1
	}

	if len(i.onePage) > 0 {
		one := i.onePage[0]
		i.onePage = i.onePage[1:]
		return one.ToEntry(), nil
	}
	return nil, fmt.Errorf("has no next entry")
}
