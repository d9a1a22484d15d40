package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad input", nil), http.StatusBadRequest},
		{UnauthorizedErr("login required"), http.StatusUnauthorized},
		{ForbiddenErr("no access"), http.StatusForbidden},
		{NotFoundErr("missing"), http.StatusNotFound},
		{ConflictErr("taken"), http.StatusConflict},
		{Wrap(errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v): got %d, want %d", c.err, got, c.want)
		}
	}
}

func TestPublicMessage(t *testing.T) {
	if got := PublicMessage(NotFoundErr("Order not found.")); got != "Order not found." {
		t.Errorf("got %q", got)
	}
	if got := PublicMessage(errors.New("sql: connection refused")); got != "Something went wrong. Please try again." {
		t.Errorf("plain error must not leak: got %q", got)
	}
	if got := PublicMessage(Wrap(errors.New("internal detail"))); got == "internal detail" {
		t.Error("wrapped cause must not leak")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(fmt.Errorf("loading settings: %w", cause))
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through Wrap")
	}
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}
