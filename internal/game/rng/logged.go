package rng

import "go.uber.org/zap"

// Logged wraps a Source and logs every draw at debug level, giving an audit
// trail of all randomness consumed by a simulation run.
type Logged struct {
	src    Source
	logger *zap.Logger
}

// NewLogged creates a Source that draws from src and logs each value.
//
// Precondition: src and logger must be non-nil.
func NewLogged(src Source, logger *zap.Logger) *Logged {
	if src == nil {
		panic("rng: NewLogged called with nil src")
	}
	if logger == nil {
		panic("rng: NewLogged called with nil logger")
	}
	return &Logged{src: src, logger: logger}
}

// Float64 draws from the wrapped source and logs the value.
func (l *Logged) Float64() float64 {
	v := l.src.Float64()
	l.logger.Debug("rng draw", zap.Float64("value", v))
	return v
}
