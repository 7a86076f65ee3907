package admin

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vitrine/store"
)

const (
	ownerCtxKey    = "admin.owner"
	anonymousOwner = "anonymous"
)

// ownerKey names the owner behind a backend token without keeping the token
// itself. Requests without a token share the anonymous owner.
func ownerKey(token string) string {
	if token == "" {
		return anonymousOwner
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:12])
}

// ownerStores holds one store per owner, created on first use.
type ownerStores struct {
	mu     sync.Mutex
	stores map[string]*store.Store
	log    *zap.Logger
}

func newOwnerStores(log *zap.Logger) *ownerStores {
	return &ownerStores{stores: make(map[string]*store.Store), log: log}
}

func (o *ownerStores) get(owner string) *store.Store {
	o.mu.Lock()
	defer o.mu.Unlock()
	st, ok := o.stores[owner]
	if !ok {
		st = store.New(o.log.With(zap.String("owner", owner)))
		o.stores[owner] = st
	}
	return st
}

func (o *ownerStores) drop(owner string) {
	o.mu.Lock()
	delete(o.stores, owner)
	o.mu.Unlock()
}

// owner is the key set by requireAuth.
func (a *AdminModule) owner(c *gin.Context) string {
	if owner := c.GetString(ownerCtxKey); owner != "" {
		return owner
	}
	return anonymousOwner
}

func (a *AdminModule) storeOf(c *gin.Context) *store.Store {
	return a.stores.get(a.owner(c))
}
