package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithSyncCarriesContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := &Logger{Logger: zap.New(core)}

	log.WithSync("user-1", "chat-1").Warn("conversation body load failed")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["buid"] != "user-1" {
		t.Errorf("buid = %v, want user-1", ctx["buid"])
	}
	if ctx["conversation_id"] != "chat-1" {
		t.Errorf("conversation_id = %v, want chat-1", ctx["conversation_id"])
	}
}

func TestWithDoesNotMutateParent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := &Logger{Logger: zap.New(core)}

	child := log.With(zap.String("component", "sync"))
	log.Info("plain")
	child.Info("scoped")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if _, ok := entries[0].ContextMap()["component"]; ok {
		t.Error("parent logger picked up the child's field")
	}
	if entries[1].ContextMap()["component"] != "sync" {
		t.Error("child logger lost its field")
	}
}
