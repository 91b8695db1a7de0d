package contextkeys

// Custom key type to avoid collisions in context values.
type contextKey string

// DBContextKey is the key under which the per-request *gorm.DB handle
// (the shared pool, or a transaction in tests) is stored.
const DBContextKey = contextKey("db")
