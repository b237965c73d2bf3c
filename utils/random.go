package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var idGenerator *snowflake.Node

func init() {
	var err error
	idGenerator, err = snowflake.NewNode(1)
	if err != nil {
		fmt.Println(err)
		return
	}
}

// GenerateNewID returns a time-ordered unique id. IDs generated later
// always compare greater than earlier ones.
func GenerateNewID() int64 {
	return idGenerator.Generate().Int64()
}

func RandString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	randomString := hex.EncodeToString(bytes)
	return randomString[:length], nil
}
