package constant

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUserRole contextKey = "user_role"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Storage keys. They match the localStorage keys of the campus web client so
// that exported snapshots load unchanged.
const (
	StorageKeyFacilities   = "facilities"
	StorageKeyReservations = "reservations"
	StorageKeyUser         = "user"
	StorageKeyUsers        = "users"

	StorageCorruptSuffix = ".corrupt"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
	StorageDriverS3       = "s3"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelStorageScopeName    = "storage"
	OtelCommandScopeName    = "command"

	OtelStorageKeyAttribute = "storage.key"
	OtelEntityIDAttribute   = "entity.id"
)

const (
	ServerEnvDevelopment = "development"
)

const (
	Empty = ""
)
