package rubyclient

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedDiagnostics() (*Diagnostics, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewDiagnostics(zap.New(core)), logs
}

func TestDiagnosticsSkippedShapeLogsShapeAndReason(test *testing.T) {
	diag, logs := newObservedDiagnostics()
	diag.SkippedShape("example#Thing", "unsupported trait combination")
	entries := logs.All()
	if len(entries) != 1 {
		test.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Message != "skipped shape" {
		test.Errorf("unexpected message: %q", entries[0].Message)
	}
	fields := entries[0].ContextMap()
	if fields["shape"] != "example#Thing" {
		test.Errorf("expected shape field, got %v", fields)
	}
	if fields["reason"] != "unsupported trait combination" {
		test.Errorf("expected reason field, got %v", fields)
	}
}

func TestDiagnosticsResolvedProtocolLogsAtInfo(test *testing.T) {
	diag, logs := newObservedDiagnostics()
	diag.ResolvedProtocol("example#Svc", RailsJsonProtocolId)
	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.InfoLevel {
		test.Fatalf("expected a single info-level entry, got %v", entries)
	}
}

func TestDiagnosticsNewWithNilLoggerDoesNotPanic(test *testing.T) {
	diag := NewDiagnostics(nil)
	diag.SkippedShape("example#Thing", "reason")
	diag.ResolvedProtocol("example#Svc", "proto")
	diag.WroteFile("out.rb")
	if err := diag.Sync(); err != nil {
		test.Errorf("unexpected error syncing a nop logger: %v", err)
	}
}
