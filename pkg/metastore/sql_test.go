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
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/loftfs/loftfs/pkg/types"
	"github.com/loftfs/loftfs/utils"
)

func collectEntries(it EntryIterator) []*types.Entry {
	result := make([]*types.Entry, 0)
	for it.HasNext() {
		en, err := it.Next()
		Expect(err).Should(BeNil())
		result = append(result, en)
	}
	return result
}

var _ = Describe("TestEntryCRUD", func() {
	var owner = utils.GenerateNewID()

	Context("create and get entry", func() {
		var en *types.Entry
		It("create should be succeed", func() {
			en = types.NewEntry(owner, "file.txt", false)
			en.BlobRef = "blob-1"
			en.Size = 3
			Expect(testMeta.CreateEntry(context.TODO(), en)).Should(BeNil())
		})
		It("get should return same row", func() {
			got, err := testMeta.GetEntry(context.TODO(), en.ID)
			Expect(err).Should(BeNil())
			Expect(got.Name).Should(Equal("file.txt"))
			Expect(got.OwnerID).Should(Equal(owner))
			Expect(got.BlobRef).Should(Equal("blob-1"))
			Expect(got.ParentID).Should(BeNil())
		})
		It("delete should be succeed", func() {
			Expect(testMeta.DeleteEntry(context.TODO(), en.ID)).Should(BeNil())
		})
		It("get deleted should be not found", func() {
			_, err := testMeta.GetEntry(context.TODO(), en.ID)
			Expect(err).Should(Equal(types.ErrNotFound))
		})
		It("delete missing should be not found", func() {
			Expect(testMeta.DeleteEntry(context.TODO(), en.ID)).Should(Equal(types.ErrNotFound))
		})
	})
})

var _ = Describe("TestListChildren", func() {
	var (
		owner      = utils.GenerateNewID()
		otherOwner = utils.GenerateNewID()
		folder     *types.Entry
	)

	Context("null parent and set parent are distinct filters", func() {
		It("build tree should be succeed", func() {
			folder = types.NewEntry(owner, "docs", true)
			Expect(testMeta.CreateEntry(context.TODO(), folder)).Should(BeNil())
			time.Sleep(time.Millisecond * 5)

			rootFile := types.NewEntry(owner, "root.txt", false)
			Expect(testMeta.CreateEntry(context.TODO(), rootFile)).Should(BeNil())
			time.Sleep(time.Millisecond * 5)

			nested := types.NewEntry(owner, "nested.txt", false)
			nested.ParentID = &folder.ID
			Expect(testMeta.CreateEntry(context.TODO(), nested)).Should(BeNil())

			foreign := types.NewEntry(otherOwner, "foreign.txt", false)
			Expect(testMeta.CreateEntry(context.TODO(), foreign)).Should(BeNil())
		})
		It("root listing returns only null-parent rows of the owner", func() {
			it, err := testMeta.ListChildren(context.TODO(), owner, nil)
			Expect(err).Should(BeNil())
			children := collectEntries(it)
			Expect(len(children)).Should(Equal(2))
			for _, en := range children {
				Expect(en.ParentID).Should(BeNil())
				Expect(en.OwnerID).Should(Equal(owner))
			}
		})
		It("folder listing returns only its children", func() {
			it, err := testMeta.ListChildren(context.TODO(), owner, &folder.ID)
			Expect(err).Should(BeNil())
			children := collectEntries(it)
			Expect(len(children)).Should(Equal(1))
			Expect(children[0].Name).Should(Equal("nested.txt"))
		})
		It("folders sort before files", func() {
			it, err := testMeta.ListChildren(context.TODO(), owner, nil)
			Expect(err).Should(BeNil())
			children := collectEntries(it)
			Expect(children[0].Name).Should(Equal("docs"))
			Expect(children[1].Name).Should(Equal("root.txt"))
		})
	})
})

var _ = Describe("TestUserCRUD", func() {
	var username = fmt.Sprintf("tester-%d", utils.GenerateNewID())

	Context("create and get user", func() {
		It("create should be succeed", func() {
			user := &types.User{
				ID:        utils.GenerateNewID(),
				Username:  username,
				Password:  "hashed",
				CreatedAt: time.Now(),
			}
			Expect(testMeta.CreateUser(context.TODO(), user)).Should(BeNil())
		})
		It("get should be succeed", func() {
			user, err := testMeta.GetUser(context.TODO(), username)
			Expect(err).Should(BeNil())
			Expect(user.Password).Should(Equal("hashed"))
		})
		It("duplicate username should be rejected", func() {
			dup := &types.User{
				ID:        utils.GenerateNewID(),
				Username:  username,
				Password:  "other",
				CreatedAt: time.Now(),
			}
			Expect(testMeta.CreateUser(context.TODO(), dup)).Should(Equal(types.ErrIsExist))
		})
		It("get missing user should be not found", func() {
			_, err := testMeta.GetUser(context.TODO(), "nobody")
			Expect(err).Should(Equal(types.ErrNotFound))
		})
	})
})

var _ = Describe("TestSystemInfo", func() {
	Context("query system info", func() {
		It("service id should be set", func() {
			info, err := testMeta.SystemInfo(context.TODO())
			Expect(err).Should(BeNil())
			Expect(info.ServiceID).ShouldNot(BeEmpty())
		})
	})
})
