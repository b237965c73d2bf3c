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

package v1

import (
	"bytes"
	"encoding/json"
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/loftfs/loftfs/cmd/apps/apis/apitool"
)

func authBody(username, password string) *bytes.Buffer {
	raw, _ := json.Marshal(RegisterRequest{Username: username, Password: password})
	return bytes.NewBuffer(raw)
}

var _ = Describe("TestRegisterAPI", func() {
	Context("register new user", func() {
		It("should be created", func() {
			w := doRequest("POST", "/api/v1/auth/register", "", "application/json",
				authBody("api-carol", "s3cret"))
			Expect(w.Code).To(Equal(http.StatusCreated))

			env := parseEnvelope(w)
			resp := UserResponse{}
			Expect(json.Unmarshal(env.Data, &resp)).Should(BeNil())
			Expect(resp.User.Username).To(Equal("api-carol"))
		})
		It("duplicate username should conflict", func() {
			w := doRequest("POST", "/api/v1/auth/register", "", "application/json",
				authBody("api-carol", "other"))
			Expect(w.Code).To(Equal(http.StatusConflict))

			env := parseEnvelope(w)
			Expect(env.Error).ShouldNot(BeNil())
			Expect(env.Error.Code).To(Equal(apitool.ApiEntryExisted))
		})
		It("empty password should be bad request", func() {
			w := doRequest("POST", "/api/v1/auth/register", "", "application/json",
				authBody("api-dave", ""))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})

var _ = Describe("TestLoginAPI", func() {
	Context("login with registered user", func() {
		It("should return a token", func() {
			w := doRequest("POST", "/api/v1/auth/login", "", "application/json",
				authBody("api-alice", "passw0rd"))
			Expect(w.Code).To(Equal(http.StatusOK))

			env := parseEnvelope(w)
			resp := LoginResponse{}
			Expect(json.Unmarshal(env.Data, &resp)).Should(BeNil())
			Expect(resp.Token).ShouldNot(BeEmpty())
			Expect(resp.User.Username).To(Equal("api-alice"))
		})
		It("wrong password should be unauthorized", func() {
			w := doRequest("POST", "/api/v1/auth/login", "", "application/json",
				authBody("api-alice", "wrong"))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
		It("unknown user should read as unauthorized, not missing", func() {
			w := doRequest("POST", "/api/v1/auth/login", "", "application/json",
				authBody("api-nobody", "whatever"))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
