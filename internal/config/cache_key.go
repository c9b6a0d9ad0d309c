package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RevokedTokenKey returns the denylist key for a logged-out JWT (by jti).
// Set with a TTL equal to the token's remaining lifetime.
func (r *CacheKeyStruct) RevokedTokenKey(jti string) string {
	return fmt.Sprintf("revoked:%s", jti)
}

// RateLimitKey returns the fixed-window counter key for admission control,
// keyed by endpoint scope and client identity (user id or IP).
func (r *CacheKeyStruct) RateLimitKey(scope, clientID string) string {
	return fmt.Sprintf("rl:%s:%s", scope, clientID)
}

var CacheKey = NewCacheKeyStruct()
