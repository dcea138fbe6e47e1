package logger

import (
	"time"

	"github.com/lumentone/midilight/sdk/contracts"
)

// NewNopLogger returns a logger that discards everything. Useful in tests.
func NewNopLogger() contracts.Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...contracts.Field)  {}
func (nopLogger) Error(string, ...contracts.Field) {}
func (nopLogger) Debug(string, ...contracts.Field) {}
func (nopLogger) Warn(string, ...contracts.Field)  {}
func (nopLogger) Fatal(string, ...contracts.Field) {}
func (nopLogger) Field() contracts.Field           { return nopField{} }
func (nopLogger) SetLevel(contracts.LogLevel)      {}

type nopField struct{}

func (nopField) Int(string, int) contracts.Field                { return nopField{} }
func (nopField) Float64(string, float64) contracts.Field        { return nopField{} }
func (nopField) String(string, string) contracts.Field          { return nopField{} }
func (nopField) Duration(string, time.Duration) contracts.Field { return nopField{} }
func (nopField) Error(string, error) contracts.Field            { return nopField{} }
func (nopField) Uint8(string, uint8) contracts.Field            { return nopField{} }
