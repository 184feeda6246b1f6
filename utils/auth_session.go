package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const AuthSessionPrefix = "authSession:"

const authSessionTTL = 72 * time.Hour

// SaveAuthSession records the hash of the account's active token. A signin
// replaces the previous session, which invalidates older tokens.
func SaveAuthSession(client *redis.Client, role, accountID, tokenHash string) error {
	ctx := context.Background()
	return client.Set(ctx, AuthSessionPrefix+role+":"+accountID, tokenHash, authSessionTTL).Err()
}

// GetAuthSession returns the stored token hash for the account, if any.
func GetAuthSession(client *redis.Client, role, accountID string) (string, error) {
	ctx := context.Background()
	return client.Get(ctx, AuthSessionPrefix+role+":"+accountID).Result()
}

// DeleteAuthSession revokes the account's active session.
func DeleteAuthSession(client *redis.Client, role, accountID string) error {
	ctx := context.Background()
	return client.Del(ctx, AuthSessionPrefix+role+":"+accountID).Err()
}
