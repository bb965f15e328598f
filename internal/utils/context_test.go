// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	if UserIDCtxKey.String() != "userID" {
		t.Errorf("expected 'userID', got '%s'", UserIDCtxKey.String())
	}
}

func TestGetUserIDFromContext_Success(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-42")

	userID, ok := GetUserIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if userID != "user-42" {
		t.Errorf("expected userID=user-42, got %s", userID)
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	userID, ok := GetUserIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if userID != "" {
		t.Errorf("expected empty userID, got %s", userID)
	}
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(42))

	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for int64 value")
	}
}

func TestGetUserIDFromContext_Empty(t *testing.T) {
	ctx := WithUserID(context.Background(), "")

	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty user id")
	}
}
