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
	"fmt"
	"regexp"
	"time"
)

var (
	storageIDPattern = "^[A-zA-Z][a-zA-Z0-9-_.]{3,31}$"
	storageIDRegexp  = regexp.MustCompile(storageIDPattern)
)

type verifier func(config *Config) error

var verifiers = []verifier{
	checkApiConfig,
	checkMetaConfig,
	checkStorageConfigs,
	checkAuthConfig,
}

func Verify(config *Config) error {
	for _, v := range verifiers {
		if err := v(config); err != nil {
			return err
		}
	}
	return nil
}

func checkApiConfig(config *Config) error {
	aCfg := config.Api
	if aCfg.Host == "" || aCfg.Port == 0 {
		return fmt.Errorf("api.host or api.port not config")
	}
	return nil
}

func checkMetaConfig(config *Config) error {
	m := config.Meta
	switch m.Type {
	case MemoryMeta:
		return nil
	case SqliteMeta:
		if m.Path == "" {
			return fmt.Errorf("path for sqlite db file is empty")
		}
		return nil
	case PostgresMeta:
		if m.DSN == "" {
			return fmt.Errorf("db dsn is empty")
		}
		return nil
	default:
		return fmt.Errorf("unknown meta type %s", m.Type)
	}
}

func checkStorageConfigs(config *Config) error {
	if len(config.Storages) == 0 {
		return fmt.Errorf("storage not config")
	}
	for i, s := range config.Storages {
		if err := checkStorageConfig(s); err != nil {
			return fmt.Errorf("storages[%d].%s: %s", i, s.ID, err)
		}
	}
	return nil
}

func checkStorageConfig(s Storage) error {
	if !storageIDRegexp.MatchString(s.ID) {
		return fmt.Errorf("storage id must match %s", storageIDPattern)
	}
	switch s.Type {
	case MemoryStorage:
		return nil
	case LocalStorage:
		if s.LocalDir == "" {
			return fmt.Errorf("local_dir is empty")
		}
		return nil
	case MinioStorage:
		if s.MinIO == nil {
			return fmt.Errorf("minio not config")
		}
		return nil
	case S3Storage:
		if s.S3 == nil {
			return fmt.Errorf("s3 not config")
		}
		return nil
	case OSSStorage:
		if s.OSS == nil {
			return fmt.Errorf("oss not config")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage type %s", s.Type)
	}
}

func checkAuthConfig(config *Config) error {
	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret not config")
	}
	if config.Auth.TokenDuration != "" {
		if _, err := time.ParseDuration(config.Auth.TokenDuration); err != nil {
			return fmt.Errorf("auth.token_duration invalid: %s", err)
		}
	}
	return nil
}
