package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := NewNotFound("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	want := "NOT_FOUND: edition not found: 01ARZ3NDEKTSV4RRFFQ69G5FAV"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["id"] != "01ARZ3NDEKTSV4RRFFQ69G5FAV" {
		t.Errorf("Details[id] = %v", err.Details["id"])
	}
}

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *HeraldError
		code   ErrorCode
		status int
	}{
		{NewInvalidRequest("bad"), ErrInvalidRequest, 400},
		{NewNotFound("x"), ErrNotFound, 404},
		{NewConflict("already approved"), ErrConflict, 409},
		{NewEmptyContent("x"), ErrEmptyContent, 422},
		{NewInternal(stderrors.New("boom")), ErrInternal, 500},
	}
	for _, c := range cases {
		if c.err.Code != c.code {
			t.Errorf("Code = %s, want %s", c.err.Code, c.code)
		}
		if c.err.Status != c.status {
			t.Errorf("%s: Status = %d, want %d", c.code, c.err.Status, c.status)
		}
	}
}

func TestIs(t *testing.T) {
	if !Is(NewEmptyContent("x"), ErrEmptyContent) {
		t.Error("Is should match EMPTY_CONTENT")
	}
	if Is(NewEmptyContent("x"), ErrNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrInternal) {
		t.Error("Is should not match plain errors")
	}
	if Is(nil, ErrInternal) {
		t.Error("Is should not match nil")
	}
}

func TestNewInternalNilError(t *testing.T) {
	err := NewInternal(nil)
	if err.Message != "internal error" {
		t.Errorf("Message = %q", err.Message)
	}
}
