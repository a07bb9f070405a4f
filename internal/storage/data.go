package storage

const (
	DefaultPath = "rudolf.db"

	// busy_timeout must come first so it already applies while journal_mode
	// takes its lock.
	dsnPragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	driverName = "sqlite"
)
