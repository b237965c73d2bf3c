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

const (
	MemoryMeta   = "memory"
	SqliteMeta   = "sqlite"
	PostgresMeta = "postgres"

	LocalStorage  = "local"
	MemoryStorage = "memory"
	MinioStorage  = "minio"
	S3Storage     = "s3"
	OSSStorage    = "oss"
)

type Config struct {
	Api      Api       `json:"api"`
	Meta     Meta      `json:"meta"`
	Storages []Storage `json:"storages"`
	Auth     Auth      `json:"auth"`
	Debug    bool      `json:"debug,omitempty"`
}

type Api struct {
	Host  string `json:"host"`
	Port  int    `json:"port"`
	Pprof bool   `json:"pprof,omitempty"`
}

type Meta struct {
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
	DSN  string `json:"dsn,omitempty"`
}

type Storage struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	LocalDir string       `json:"local_dir,omitempty"`
	MinIO    *MinIOConfig `json:"minio,omitempty"`
	S3       *S3Config    `json:"s3,omitempty"`
	OSS      *OSSConfig   `json:"oss,omitempty"`
}

type MinIOConfig struct {
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	BucketName      string `json:"bucket_name"`
	Location        string `json:"location"`
	Token           string `json:"token"`
	UseSSL          bool   `json:"use_ssl"`
}

type S3Config struct {
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint,omitempty"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	BucketName      string `json:"bucket_name"`
	UsePathStyle    bool   `json:"use_path_style,omitempty"`
}

type OSSConfig struct {
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id"`
	AccessKeySecret string `json:"access_key_secret"`
	BucketName      string `json:"bucket_name"`
}

type Auth struct {
	JWTSecret     string `json:"jwt_secret"`
	TokenDuration string `json:"token_duration,omitempty"`
}
