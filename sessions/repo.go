package sessions

// Persisted key names. They are stable across releases so that a restart reads
// back exactly what Login wrote.
const (
	KeyCredential  = "token"
	KeyUserID      = "userId"
	KeyDisplayName = "username"
	KeyIsAdmin     = "isAdmin"
)

// PersistedKeys lists every key the Store writes
var PersistedKeys = []string{KeyCredential, KeyUserID, KeyDisplayName, KeyIsAdmin}

// Repo is the client-side durable string storage behind the Store
type Repo interface {
	// Get returns the stored value and whether the key exists
	Get(key string) (string, bool, error)

	// SetAll stores every entry in one write
	SetAll(entries map[string]string) error

	// Delete removes the given keys; missing keys are not an error
	Delete(keys ...string) error
}
