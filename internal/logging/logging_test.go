// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestErrKeyConstant(t *testing.T) {
	if ErrKey != "error" {
		t.Errorf("expected ErrKey to be 'error', got %q", ErrKey)
	}
}

func TestAppendCtx(t *testing.T) {
	attr := slog.String("meeting_uid", "abc-123")
	ctx := AppendCtx(context.TODO(), attr)

	if ctx == nil {
		t.Fatal("expected non-nil context")
	}

	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		if len(attrs) != 1 {
			t.Errorf("expected 1 attribute, got %d", len(attrs))
		}
		if attrs[0].Key != "meeting_uid" {
			t.Errorf("expected key 'meeting_uid', got %q", attrs[0].Key)
		}
		if attrs[0].Value.String() != "abc-123" {
			t.Errorf("expected value 'abc-123', got %q", attrs[0].Value.String())
		}
	} else {
		t.Error("expected slog attributes in context")
	}
}

func TestAppendCtx_WithParent(t *testing.T) {
	parentCtx := AppendCtx(context.Background(), slog.String("board_uid", "board-1"))
	childCtx := AppendCtx(parentCtx, slog.String("meeting_uid", "meeting-1"))

	attrs, ok := childCtx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "board_uid" || attrs[1].Key != "meeting_uid" {
		t.Errorf("unexpected attribute ordering: %v", attrs)
	}
}

func TestAppendCtx_NilParent(t *testing.T) {
	//nolint:staticcheck // exercising the nil-parent branch deliberately
	ctx := AppendCtx(nil, slog.String("k", "v"))
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
}
