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

package token

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/loftfs/loftfs/pkg/types"
)

var _ = Describe("TestUserRegister", func() {
	Context("register new user", func() {
		It("register should be succeed", func() {
			user, err := tokenManager.Register(context.TODO(), "alice", "passw0rd")
			Expect(err).Should(BeNil())
			Expect(user.ID).ShouldNot(BeZero())
			Expect(user.Password).ShouldNot(Equal("passw0rd"))
		})
		It("duplicate username should be rejected", func() {
			_, err := tokenManager.Register(context.TODO(), "alice", "other")
			Expect(err).Should(Equal(types.ErrIsExist))
		})
		It("empty username or password should be rejected", func() {
			_, err := tokenManager.Register(context.TODO(), "", "passw0rd")
			Expect(err).Should(Equal(types.ErrInvalidRequest))
			_, err = tokenManager.Register(context.TODO(), "bob", "")
			Expect(err).Should(Equal(types.ErrInvalidRequest))
		})
	})
})

var _ = Describe("TestUserLogin", func() {
	Context("login with registered user", func() {
		It("register should be succeed", func() {
			_, err := tokenManager.Register(context.TODO(), "carol", "s3cret")
			Expect(err).Should(BeNil())
		})
		It("login should return verifiable token", func() {
			tokenStr, user, err := tokenManager.Login(context.TODO(), "carol", "s3cret")
			Expect(err).Should(BeNil())
			Expect(tokenStr).ShouldNot(BeEmpty())

			ai, err := tokenManager.Verify(context.TODO(), tokenStr)
			Expect(err).Should(BeNil())
			Expect(ai.UID).Should(Equal(user.ID))
			Expect(ai.Username).Should(Equal("carol"))
		})
		It("wrong password should be rejected", func() {
			_, _, err := tokenManager.Login(context.TODO(), "carol", "wrong")
			Expect(err).Should(Equal(types.ErrNoAccess))
		})
		It("unknown user should be not found", func() {
			_, _, err := tokenManager.Login(context.TODO(), "mallory", "whatever")
			Expect(err).Should(Equal(types.ErrNotFound))
		})
	})

	Context("verify garbage token", func() {
		It("should be rejected", func() {
			_, err := tokenManager.Verify(context.TODO(), "not-a-token")
			Expect(err).Should(Equal(types.ErrNoAccess))
		})
	})
})
