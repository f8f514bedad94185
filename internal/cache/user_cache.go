package cache

import (
	"fmt"
	"strconv"
	"time"
)

const (
	OnlineUsersTTL   = 90 * time.Second // Match pong timeout
	ProfileSyncedTTL = 15 * time.Minute
)

// UserCache tracks the online-user set and remembers which profiles were
// already provisioned from token claims, so the identity middleware does not
// hit the database on every request.
type UserCache struct {
	redis *RedisCache
}

func NewUserCache(redis *RedisCache) *UserCache {
	return &UserCache{redis: redis}
}

// SetUserOnline adds a user to the online users set
func (uc *UserCache) SetUserOnline(userID uint) error {
	if uc == nil || uc.redis == nil {
		return nil
	}
	if err := uc.redis.SetAdd("online:users", userID); err != nil {
		return err
	}

	// Individual key with TTL for auto-expiration of stale presence
	userKey := fmt.Sprintf("online:%d", userID)
	return uc.redis.Set(userKey, []byte("1"), OnlineUsersTTL)
}

// SetUserOffline removes a user from the online users set
func (uc *UserCache) SetUserOffline(userID uint) error {
	if uc == nil || uc.redis == nil {
		return nil
	}
	if err := uc.redis.SetRemove("online:users", userID); err != nil {
		return err
	}
	return uc.redis.Delete(fmt.Sprintf("online:%d", userID))
}

// IsUserOnline checks if a user is online
func (uc *UserCache) IsUserOnline(userID uint) bool {
	if uc == nil || uc.redis == nil {
		return false
	}
	return uc.redis.Exists(fmt.Sprintf("online:%d", userID))
}

// GetOnlineUsers returns all online user IDs
func (uc *UserCache) GetOnlineUsers() ([]uint, error) {
	if uc == nil || uc.redis == nil {
		return nil, nil
	}
	members, err := uc.redis.SetMembers("online:users")
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(members))
	for _, member := range members {
		if id, err := strconv.ParseUint(member, 10, 32); err == nil {
			userIDs = append(userIDs, uint(id))
		}
	}
	return userIDs, nil
}

// GetOnlineCount returns the number of online users
func (uc *UserCache) GetOnlineCount() (int64, error) {
	if uc == nil || uc.redis == nil {
		return 0, nil
	}
	return uc.redis.SetCard("online:users")
}

// MarkProfileSynced records that the user's profile row matches the claims.
func (uc *UserCache) MarkProfileSynced(userID uint) error {
	if uc == nil || uc.redis == nil {
		return nil
	}
	key := fmt.Sprintf("profile:synced:%d", userID)
	return uc.redis.Set(key, []byte("1"), ProfileSyncedTTL)
}

// IsProfileSynced reports whether the profile was provisioned recently.
func (uc *UserCache) IsProfileSynced(userID uint) bool {
	if uc == nil || uc.redis == nil {
		return false
	}
	return uc.redis.Exists(fmt.Sprintf("profile:synced:%d", userID))
}
