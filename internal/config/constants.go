package config

const (
	DefaultDatabaseDriver = "sqlite"
	DefaultDatabasePath   = "./bookr.db"
	DefaultCoversDir      = "./covers"
)
