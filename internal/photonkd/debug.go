package photonkd

import "go.uber.org/zap"

// SetLogger replaces the package logger. A nil logger disables output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Logger = l.Sugar()
}

func DebugLog(format string, args ...interface{}) {
	if !Debug {
		return
	}
	Logger.Debugf(format, args...)
}
