package chartful

import "go.uber.org/zap"

// Logging is off by default; callers opt in with SetLogger.
var logger = zap.NewNop()

// SetLogger installs the logger used by chart construction and export. A nil
// logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
