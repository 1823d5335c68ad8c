// Package config provides the environment configuration of the warehouse seeder
// and factory functions for PostgreSQL connections.
//
// Settings are read from environment variables through viper. A local .env file is loaded
// first when present, without overriding variables that are already set.
//
// The factories create connections for the different PostgreSQL drivers
// (pgx.Pool, sql.DB, sqlx.DB, gorm.DB) with pre-configured pool settings.
package config
