// Package mocks provides mock implementations for testing.
package mocks

import (
	"fmt"
	"sync"

	"github.com/user/stegosub/pkg/ports"
)

// Logger is a mock implementation of ports.Logger that records messages.
type Logger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// LogMessage records one logged message.
type LogMessage struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

func (m *Logger) log(level ports.LogLevel, msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, LogMessage{
		Level:   level,
		Message: fmt.Sprintf(msg, args...),
	})
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.log(ports.LevelDebug, msg, args...) }
func (m *Logger) Info(msg string, args ...interface{})  { m.log(ports.LevelInfo, msg, args...) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.log(ports.LevelWarn, msg, args...) }
func (m *Logger) Error(msg string, args ...interface{}) { m.log(ports.LevelError, msg, args...) }

func (m *Logger) WithComponent(component string) ports.Logger { return m }

// HasLevel reports whether any recorded message has the given level.
func (m *Logger) HasLevel(level ports.LogLevel) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.Messages {
		if msg.Level == level {
			return true
		}
	}
	return false
}
