package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("config.parsing_failed")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("config.nil_pointer")

	// ErrLoadingEnvFile is returned when an explicitly requested env file cannot be read
	ErrLoadingEnvFile = errors.New("config.env_file_failed")
)
