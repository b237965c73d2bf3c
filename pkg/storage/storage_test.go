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

package storage

import (
	"bytes"
	"context"
	"io"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/google/uuid"

	"github.com/loftfs/loftfs/config"
	"github.com/loftfs/loftfs/pkg/types"
)

func behaveLikeBlobStore(newStore func() Storage) {
	var (
		s       Storage
		key     string
		content = []byte("loftfs blob bytes")
	)

	BeforeEach(func() {
		s = newStore()
		key = uuid.New().String()
	})

	Context("put and get one blob", func() {
		It("put should return measured length", func() {
			n, err := s.Put(context.TODO(), key, bytes.NewReader(content))
			Expect(err).Should(BeNil())
			Expect(n).Should(Equal(int64(len(content))))
		})
		It("get should round-trip the bytes", func() {
			_, err := s.Put(context.TODO(), key, bytes.NewReader(content))
			Expect(err).Should(BeNil())

			r, err := s.Get(context.TODO(), key)
			Expect(err).Should(BeNil())
			defer r.Close()

			data, err := io.ReadAll(r)
			Expect(err).Should(BeNil())
			Expect(data).Should(Equal(content))
		})
		It("head should report the size", func() {
			_, err := s.Put(context.TODO(), key, bytes.NewReader(content))
			Expect(err).Should(BeNil())

			info, err := s.Head(context.TODO(), key)
			Expect(err).Should(BeNil())
			Expect(info.Size).Should(Equal(int64(len(content))))
		})
	})

	Context("delete one blob", func() {
		It("deleted blob should be gone", func() {
			_, err := s.Put(context.TODO(), key, bytes.NewReader(content))
			Expect(err).Should(BeNil())

			Expect(s.Delete(context.TODO(), key)).Should(BeNil())

			_, err = s.Head(context.TODO(), key)
			Expect(err).Should(Equal(types.ErrNotFound))
		})
		It("delete missing blob should be not found", func() {
			Expect(s.Delete(context.TODO(), key)).Should(Equal(types.ErrNotFound))
		})
	})

	Context("get missing blob", func() {
		It("should be not found", func() {
			r, err := s.Get(context.TODO(), key)
			if err == nil {
				// lazy backends surface the miss on first read
				_, err = io.ReadAll(r)
				_ = r.Close()
			}
			Expect(err).ShouldNot(BeNil())
		})
	})
}

var _ = Describe("TestMemoryStorage", func() {
	behaveLikeBlobStore(func() Storage {
		return newMemoryStorage("memory-ut")
	})
})

var _ = Describe("TestLocalStorage", func() {
	behaveLikeBlobStore(func() Storage {
		s, err := NewStorage("local-ut", config.LocalStorage, config.Storage{ID: "local-ut", Type: config.LocalStorage, LocalDir: workdir})
		Expect(err).Should(BeNil())
		return s
	})
})
