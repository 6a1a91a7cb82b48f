package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	TableCount string

	// Staff view settings.
	ServerURL               string
	SnapshotIntervalSeconds string
}
