package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/openfantasy/rooms/internal/domain/room"
	"github.com/openfantasy/rooms/internal/domain/roster"
	"github.com/openfantasy/rooms/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_StatusCodes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		err        error
		wantHTTP   int
		wantStatus string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad", usecase.ErrInvalidInput), wantHTTP: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT"},
		{name: "not found", err: fmt.Errorf("%w: room=x", usecase.ErrNotFound), wantHTTP: http.StatusNotFound, wantStatus: "NOT_FOUND"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantHTTP: http.StatusUnauthorized, wantStatus: "UNAUTHENTICATED"},
		{name: "room full", err: fmt.Errorf("join room: %w", room.ErrRoomFull), wantHTTP: http.StatusConflict, wantStatus: "ALREADY_EXISTS"},
		{name: "already member", err: fmt.Errorf("join room: %w", room.ErrAlreadyMember), wantHTTP: http.StatusConflict, wantStatus: "ALREADY_EXISTS"},
		{name: "not creator", err: fmt.Errorf("%w: %w", usecase.ErrUnauthorized, room.ErrNotCreator), wantHTTP: http.StatusForbidden, wantStatus: "PERMISSION_DENIED"},
		{name: "formation mismatch", err: fmt.Errorf("%w: %w", usecase.ErrInvalidInput, roster.ErrFormationMismatch), wantHTTP: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT"},
		{name: "deadline passed", err: fmt.Errorf("%w: %w", usecase.ErrInvalidInput, roster.ErrDeadlinePassed), wantHTTP: http.StatusUnprocessableEntity, wantStatus: "FAILED_PRECONDITION"},
		{name: "tokens exhausted", err: fmt.Errorf("%w: %w", usecase.ErrInvalidInput, roster.ErrNoTokensRemaining), wantHTTP: http.StatusUnprocessableEntity, wantStatus: "FAILED_PRECONDITION"},
		{name: "dependency", err: usecase.ErrDependencyUnavailable, wantHTTP: http.StatusServiceUnavailable, wantStatus: "UNAVAILABLE"},
		{name: "unknown", err: fmt.Errorf("boom"), wantHTTP: http.StatusInternalServerError, wantStatus: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(ctx, tt.err)
			if mapped.HTTPStatus != tt.wantHTTP {
				t.Fatalf("expected http status %d, got %d", tt.wantHTTP, mapped.HTTPStatus)
			}
			if mapped.Status != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, mapped.Status)
			}
		})
	}
}
