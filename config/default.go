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

package config

import (
	"path"

	"github.com/loftfs/loftfs/utils"
)

func Default() Config {
	workdir := LocalUserPath()
	secret, _ := utils.RandString(32)
	return Config{
		Api: Api{Host: "127.0.0.1", Port: 7080},
		Meta: Meta{
			Type: SqliteMeta,
			Path: path.Join(workdir, "meta.db"),
		},
		Storages: []Storage{{
			ID:       "local-data",
			Type:     LocalStorage,
			LocalDir: path.Join(workdir, "data"),
		}},
		Auth: Auth{JWTSecret: secret, TokenDuration: "168h"},
	}
}
