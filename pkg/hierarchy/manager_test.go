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
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/loftfs/loftfs/pkg/storage"
	"github.com/loftfs/loftfs/pkg/types"
	"github.com/loftfs/loftfs/utils"
)

var _ = Describe("TestCreateFolder", func() {
	var owner = utils.GenerateNewID()

	Context("create folder in root", func() {
		var folder *types.Entry
		It("create should be succeed", func() {
			var err error
			folder, err = entryManager.CreateFolder(context.TODO(), owner, types.EntryAttr{Name: "Photos"})
			Expect(err).Should(BeNil())
			Expect(folder.IsFolder).Should(BeTrue())
			Expect(folder.Size).Should(Equal(int64(0)))
			Expect(folder.BlobRef).Should(BeEmpty())
		})
		It("list root should contain it", func() {
			children, err := entryManager.ListChildren(context.TODO(), owner, nil)
			Expect(err).Should(BeNil())
			Expect(len(children)).Should(Equal(1))
			Expect(children[0].Name).Should(Equal("Photos"))
		})
		It("create nested folder should be succeed", func() {
			sub, err := entryManager.CreateFolder(context.TODO(), owner, types.EntryAttr{Name: "2026", ParentID: &folder.ID})
			Expect(err).Should(BeNil())
			Expect(*sub.ParentID).Should(Equal(folder.ID))
		})
	})

	Context("create folder with bad args", func() {
		It("empty name should be failed", func() {
			_, err := entryManager.CreateFolder(context.TODO(), owner, types.EntryAttr{Name: ""})
			Expect(err).Should(Equal(types.ErrInvalidRequest))
		})
		It("missing parent should be failed", func() {
			missing := utils.GenerateNewID()
			_, err := entryManager.CreateFolder(context.TODO(), owner, types.EntryAttr{Name: "orphaned", ParentID: &missing})
			Expect(err).Should(Equal(types.ErrInvalidRequest))
		})
		It("file parent should be failed", func() {
			file, err := entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "note.txt"}, bytes.NewReader([]byte("hello")))
			Expect(err).Should(BeNil())

			_, err = entryManager.CreateFolder(context.TODO(), owner, types.EntryAttr{Name: "sub", ParentID: &file.ID})
			Expect(err).Should(Equal(types.ErrNoFolder))
		})
	})
})

var _ = Describe("TestUploadRoundTrip", func() {
	var (
		owner   = utils.GenerateNewID()
		folder  *types.Entry
		file    *types.Entry
		content = []byte("0123456789")
	)

	Context("upload one file", func() {
		It("create parent folder should be succeed", func() {
			var err error
			folder, err = entryManager.CreateFolder(context.TODO(), owner, types.EntryAttr{Name: "Photos"})
			Expect(err).Should(BeNil())
		})
		It("upload should record measured size", func() {
			var err error
			file, err = entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "cat.png", ParentID: &folder.ID}, bytes.NewReader(content))
			Expect(err).Should(BeNil())
			Expect(file.IsFolder).Should(BeFalse())
			Expect(file.Size).Should(Equal(int64(len(content))))
			Expect(file.BlobRef).ShouldNot(BeEmpty())
		})
		It("read back should return identical bytes", func() {
			en, r, err := entryManager.ResolveForRead(context.TODO(), owner, file.ID)
			Expect(err).Should(BeNil())
			defer r.Close()

			data, err := io.ReadAll(r)
			Expect(err).Should(BeNil())
			Expect(data).Should(Equal(content))
			Expect(en.Size).Should(Equal(int64(len(content))))
		})
		It("list root and folder should match", func() {
			rootChildren, err := entryManager.ListChildren(context.TODO(), owner, nil)
			Expect(err).Should(BeNil())
			Expect(len(rootChildren)).Should(Equal(1))
			Expect(rootChildren[0].Name).Should(Equal("Photos"))

			folderChildren, err := entryManager.ListChildren(context.TODO(), owner, &folder.ID)
			Expect(err).Should(BeNil())
			Expect(len(folderChildren)).Should(Equal(1))
			Expect(folderChildren[0].Name).Should(Equal("cat.png"))
			Expect(folderChildren[0].Size).Should(Equal(int64(10)))
		})
	})

	Context("read folder as content", func() {
		It("should be not found", func() {
			_, _, err := entryManager.ResolveForRead(context.TODO(), owner, folder.ID)
			Expect(err).Should(Equal(types.ErrNotFound))
		})
	})

	Context("list children of a file", func() {
		It("should be failed", func() {
			_, err := entryManager.ListChildren(context.TODO(), owner, &file.ID)
			Expect(err).Should(Equal(types.ErrNoFolder))
		})
	})
})

var _ = Describe("TestListOrdering", func() {
	var owner = utils.GenerateNewID()

	Context("folders sort before files, newest first", func() {
		It("create entries should be succeed", func() {
			_, err := entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "old.txt"}, bytes.NewReader([]byte("old")))
			Expect(err).Should(BeNil())
			time.Sleep(time.Millisecond * 10)

			_, err = entryManager.CreateFolder(context.TODO(), owner, types.EntryAttr{Name: "first"})
			Expect(err).Should(BeNil())
			time.Sleep(time.Millisecond * 10)

			_, err = entryManager.CreateFolder(context.TODO(), owner, types.EntryAttr{Name: "second"})
			Expect(err).Should(BeNil())
			time.Sleep(time.Millisecond * 10)

			_, err = entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "new.txt"}, bytes.NewReader([]byte("new")))
			Expect(err).Should(BeNil())
		})
		It("ordering should be deterministic", func() {
			children, err := entryManager.ListChildren(context.TODO(), owner, nil)
			Expect(err).Should(BeNil())
			Expect(len(children)).Should(Equal(4))
			Expect(children[0].Name).Should(Equal("second"))
			Expect(children[1].Name).Should(Equal("first"))
			Expect(children[2].Name).Should(Equal("new.txt"))
			Expect(children[3].Name).Should(Equal("old.txt"))
		})
		It("repeated listing should be identical", func() {
			first, err := entryManager.ListChildren(context.TODO(), owner, nil)
			Expect(err).Should(BeNil())
			second, err := entryManager.ListChildren(context.TODO(), owner, nil)
			Expect(err).Should(BeNil())
			Expect(len(first)).Should(Equal(len(second)))
			for i := range first {
				Expect(first[i].ID).Should(Equal(second[i].ID))
			}
		})
	})

	Context("same display name twice", func() {
		It("should be allowed", func() {
			_, err := entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "dup.txt"}, bytes.NewReader([]byte("a")))
			Expect(err).Should(BeNil())
			_, err = entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "dup.txt"}, bytes.NewReader([]byte("b")))
			Expect(err).Should(BeNil())
		})
	})
})

var _ = Describe("TestTenantIsolation", func() {
	var (
		ownerA = utils.GenerateNewID()
		ownerB = utils.GenerateNewID()
		folder *types.Entry
		file   *types.Entry
	)

	Context("owner A builds a tree", func() {
		It("create should be succeed", func() {
			var err error
			folder, err = entryManager.CreateFolder(context.TODO(), ownerA, types.EntryAttr{Name: "private"})
			Expect(err).Should(BeNil())
			file, err = entryManager.RegisterUpload(context.TODO(), ownerA,
				types.EntryAttr{Name: "secret.txt", ParentID: &folder.ID}, bytes.NewReader([]byte("secret")))
			Expect(err).Should(BeNil())
		})
	})

	Context("owner B touches A's entries", func() {
		It("list should be not found", func() {
			_, err := entryManager.ListChildren(context.TODO(), ownerB, &folder.ID)
			Expect(err).Should(Equal(types.ErrNotFound))
		})
		It("read should be not found", func() {
			_, _, err := entryManager.ResolveForRead(context.TODO(), ownerB, file.ID)
			Expect(err).Should(Equal(types.ErrNotFound))
		})
		It("delete should be not found", func() {
			err := entryManager.Delete(context.TODO(), ownerB, file.ID)
			Expect(err).Should(Equal(types.ErrNotFound))
		})
		It("B's root listing should be empty", func() {
			children, err := entryManager.ListChildren(context.TODO(), ownerB, nil)
			Expect(err).Should(BeNil())
			Expect(len(children)).Should(Equal(0))
		})
		It("A still reads the file", func() {
			_, r, err := entryManager.ResolveForRead(context.TODO(), ownerA, file.ID)
			Expect(err).Should(BeNil())
			_ = r.Close()
		})
	})
})

var _ = Describe("TestDeleteEntry", func() {
	var owner = utils.GenerateNewID()

	Context("delete a file", func() {
		var file *types.Entry
		It("upload should be succeed", func() {
			var err error
			file, err = entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "trash.txt"}, bytes.NewReader([]byte("bye")))
			Expect(err).Should(BeNil())
		})
		It("delete should be succeed", func() {
			Expect(entryManager.Delete(context.TODO(), owner, file.ID)).Should(BeNil())
		})
		It("delete again should be not found", func() {
			err := entryManager.Delete(context.TODO(), owner, file.ID)
			Expect(err).Should(Equal(types.ErrNotFound))
		})
		It("blob should be unreadable", func() {
			_, _, err := entryManager.ResolveForRead(context.TODO(), owner, file.ID)
			Expect(err).Should(Equal(types.ErrNotFound))
		})
		It("listing should not contain it", func() {
			children, err := entryManager.ListChildren(context.TODO(), owner, nil)
			Expect(err).Should(BeNil())
			for _, en := range children {
				Expect(en.ID).ShouldNot(Equal(file.ID))
			}
		})
	})

	Context("delete a file whose blob is already gone", func() {
		It("delete should still be succeed", func() {
			file, err := entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "halfgone.txt"}, bytes.NewReader([]byte("x")))
			Expect(err).Should(BeNil())

			mgr := entryManager.(*manager)
			Expect(mgr.defaultStorage.Delete(context.TODO(), file.BlobRef)).Should(BeNil())

			Expect(entryManager.Delete(context.TODO(), owner, file.ID)).Should(BeNil())
		})
	})

	Context("delete a non-empty folder", func() {
		var (
			folder *types.Entry
			child  *types.Entry
		)
		It("build folder with child should be succeed", func() {
			var err error
			folder, err = entryManager.CreateFolder(context.TODO(), owner, types.EntryAttr{Name: "doomed"})
			Expect(err).Should(BeNil())
			child, err = entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "kept.txt", ParentID: &folder.ID}, bytes.NewReader([]byte("kept")))
			Expect(err).Should(BeNil())
		})
		It("delete removes only the folder row", func() {
			Expect(entryManager.Delete(context.TODO(), owner, folder.ID)).Should(BeNil())

			_, err := entryManager.ListChildren(context.TODO(), owner, &folder.ID)
			Expect(err).Should(Equal(types.ErrNotFound))

			// the child row survives, reachable by direct id only
			kept, err := entryManager.GetEntry(context.TODO(), owner, child.ID)
			Expect(err).Should(BeNil())
			Expect(kept.Name).Should(Equal("kept.txt"))
		})
	})
})

var _ = Describe("TestPartialBatch", func() {
	var owner = utils.GenerateNewID()

	Context("second item of a batch fails on blob write", func() {
		It("first item should stay committed", func() {
			_, err := entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "a.txt"}, bytes.NewReader([]byte("aaa")))
			Expect(err).Should(BeNil())

			mgr := entryManager.(*manager)
			healthy := mgr.defaultStorage
			mgr.defaultStorage = brokenStorage{}
			_, err = entryManager.RegisterUpload(context.TODO(), owner,
				types.EntryAttr{Name: "b.txt"}, bytes.NewReader([]byte("bbb")))
			mgr.defaultStorage = healthy
			Expect(err).ShouldNot(BeNil())

			children, err := entryManager.ListChildren(context.TODO(), owner, nil)
			Expect(err).Should(BeNil())
			Expect(len(children)).Should(Equal(1))
			Expect(children[0].Name).Should(Equal("a.txt"))
		})
	})
})

type brokenStorage struct{}

var _ storage.Storage = brokenStorage{}

func (b brokenStorage) ID() string { return "broken" }

func (b brokenStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("storage is broken")
}

func (b brokenStorage) Put(ctx context.Context, key string, dataReader io.Reader) (int64, error) {
	return 0, fmt.Errorf("storage is broken")
}

func (b brokenStorage) Delete(ctx context.Context, key string) error {
	return fmt.Errorf("storage is broken")
}

func (b brokenStorage) Head(ctx context.Context, key string) (storage.Info, error) {
	return storage.Info{}, fmt.Errorf("storage is broken")
}
