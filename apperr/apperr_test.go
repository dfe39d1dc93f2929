package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	if KindOf(NotFound("x")) != KindNotFound {
		t.Error("not-found kind lost")
	}
	if KindOf(fmt.Errorf("wrapped: %w", Conflict("x"))) != KindConflict {
		t.Error("kind should survive wrapping")
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("plain errors are unknown")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[error]int{
		Validation("v"):     http.StatusBadRequest,
		Unauthorized("u"):   http.StatusUnauthorized,
		Forbidden("f"):      http.StatusForbidden,
		NotFound("n"):       http.StatusNotFound,
		Conflict("c"):       http.StatusConflict,
		errors.New("plain"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := HTTPStatus(err); got != want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", err, got, want)
		}
	}
}

func TestFromDB(t *testing.T) {
	if FromDB(nil, "nf", "cf") != nil {
		t.Error("nil passes through")
	}
	if KindOf(FromDB(gorm.ErrRecordNotFound, "nf", "cf")) != KindNotFound {
		t.Error("record-not-found should map to not-found")
	}
	if KindOf(FromDB(gorm.ErrDuplicatedKey, "nf", "cf")) != KindConflict {
		t.Error("duplicated-key should map to conflict")
	}
	plain := errors.New("io broke")
	if FromDB(plain, "nf", "cf") != plain {
		t.Error("unrelated errors pass through untouched")
	}
}
