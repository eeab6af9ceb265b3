// Package identity resolves the current reviewer and the identities whose
// bills are hidden from the dashboard buckets.
package identity

import "encoding/json"

// TestUsers are the fixed demo identities excluded from production dashboard
// listings alongside the current reviewer.
var TestUsers = []string{
	"cedric.hiely@billed.com",
	"christian.saluzzo@billed.com",
	"jean.limbert@billed.com",
	"joanna.binet@billed.com",
}

// Storage is the persisted-identity collaborator: a key-value store holding
// the connected user. Read-only from the core's perspective.
type Storage interface {
	Get(key string) (string, bool)
}

// User is the persisted identity record.
type User struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// Resolver supplies the current reviewer's email and the set of identities
// to exclude from status buckets. The review workflow takes it injected so
// the filter itself never branches on the execution environment.
type Resolver interface {
	CurrentEmail() string
	ExcludedEmails() []string
}

// StorageResolver resolves identity from a persisted key-value store.
type StorageResolver struct {
	storage  Storage
	excluded []string
}

// NewStorageResolver builds a resolver over the given storage. When
// excluded is nil the fixed TestUsers set applies.
func NewStorageResolver(storage Storage, excluded []string) *StorageResolver {
	if excluded == nil {
		excluded = TestUsers
	}
	return &StorageResolver{storage: storage, excluded: excluded}
}

// CurrentEmail returns the connected user's email, empty when no user record
// is stored or it does not decode.
func (r *StorageResolver) CurrentEmail() string {
	raw, ok := r.storage.Get("user")
	if !ok {
		return ""
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return ""
	}
	return user.Email
}

// ExcludedEmails returns the test identities plus the current reviewer.
func (r *StorageResolver) ExcludedEmails() []string {
	excluded := make([]string, 0, len(r.excluded)+1)
	excluded = append(excluded, r.excluded...)
	if email := r.CurrentEmail(); email != "" {
		excluded = append(excluded, email)
	}
	return excluded
}

// MapStorage is an in-memory Storage, the server-side stand-in for the
// browser's persisted store.
type MapStorage map[string]string

func (m MapStorage) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
