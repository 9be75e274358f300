package postgresengine

import "time"

// logQueryWithDuration logs the executed SQL and its duration at debug
// level when a logger is configured.
func (s *Store) logQueryWithDuration(action string, sqlQuery string, duration time.Duration) {
	if s.logger == nil {
		return
	}

	s.logger.Debug(
		logMsgSQLExecuted+action,
		logAttrDurationMS, duration.Milliseconds(),
		logAttrQuery, sqlQuery,
	)
}

// logError logs a message with the error and optional extra attributes at
// error level when a logger is configured.
func (s *Store) logError(msg string, err error, extraArgs ...any) {
	if s.logger == nil {
		return
	}

	args := append([]any{logAttrError, err.Error()}, extraArgs...)
	s.logger.Error(msg, args...)
}
