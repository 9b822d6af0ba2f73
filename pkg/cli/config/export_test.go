package config

// NewAppConfigForTest creates an AppConfig for testing purposes
func NewAppConfigForTest(viewFiles, messageFiles []string) *AppConfig {
	return &AppConfig{
		viewFiles:    viewFiles,
		messageFiles: messageFiles,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
	}
}

// NewRESTForTest creates a REST config for testing purposes
func NewRESTForTest(baseURL string) *REST {
	return &REST{baseURL: baseURL}
}
