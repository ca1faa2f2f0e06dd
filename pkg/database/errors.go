package database

import "errors"

var (
	ErrNoDatabaseSelected       = errors.New("database.no_database_selected")
	ErrFailedToParseConfig      = errors.New("database.failed_to_parse_config")
	ErrFailedToOpenConnection   = errors.New("database.failed_to_open_connection")
	ErrHealthcheckFailed        = errors.New("database.healthcheck_failed")
	ErrQueryFailed              = errors.New("database.query_failed")
	ErrNoResultSet              = errors.New("database.no_result_set")
	ErrFailedToApplyMigrations  = errors.New("database.failed_to_apply_migrations")
	ErrMigrationsDirNotFound    = errors.New("database.migrations_dir_not_found")
	ErrMigrationPathNotProvided = errors.New("database.migration_path_not_provided")
)
