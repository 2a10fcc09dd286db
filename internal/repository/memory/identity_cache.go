package memory

import (
	"time"

	"retro-board-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// IdentityCache keeps recently resolved users keyed by username.
type IdentityCache struct {
	cache *cache.Cache
}

func NewIdentityCache(ttl time.Duration) *IdentityCache {
	return &IdentityCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *IdentityCache) Save(user *entity.User) {
	r.cache.Set(user.Username, user, cache.DefaultExpiration)
}

func (r *IdentityCache) Get(username string) (*entity.User, bool) {
	if x, found := r.cache.Get(username); found {
		return x.(*entity.User), true
	}
	return nil, false
}

func (r *IdentityCache) Delete(username string) {
	r.cache.Delete(username)
}
