package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeTooManyRequests: http.StatusTooManyRequests,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeDuplicateKey:    http.StatusConflict,
		ErrorCodeDB:              http.StatusInternalServerError,
		ErrorCodePanic:           http.StatusInternalServerError,
		ErrorCode(999):           http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Errorf("HTTPStatusCode(%d) = %d, want %d", code, got, want)
		}
	}
}

func TestError_MessageAndUnwrap(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil *Error = %q", nilErr.Error())
	}

	upstream := stderrs.New("connection reset")
	err := Wrapf(upstream, ErrorCodeUnavailable, "fetch %s", "multiline")
	if err.Error() != "fetch multiline: connection reset" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, upstream) {
		t.Fatal("cause not reachable through errors.Is")
	}
	if Root(fmt.Errorf("outer: %w", err)) != upstream {
		t.Fatal("Root did not reach the upstream cause")
	}
}

func TestCodeOf_ThroughForeignWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", InvalidArgf("bad date %q", "2024-13-01"))
	if CodeOf(err) != ErrorCodeInvalidArgument {
		t.Fatalf("CodeOf = %d", CodeOf(err))
	}
	if HTTPStatus(err) != http.StatusUnprocessableEntity {
		t.Fatalf("HTTPStatus = %d", HTTPStatus(err))
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatal("foreign error should be Unknown")
	}
}

func TestWithFieldAndOp_CopyOnWrite(t *testing.T) {
	base := New(ErrorCodeInvalidArgument, "invalid unit")
	withField := WithField(base, "unit")
	withOp := WithOp(withField, "resolve")

	if e, _ := As(base); e.Field() != "" || e.Op() != "" {
		t.Fatal("base error was mutated")
	}
	e, ok := As(withOp)
	if !ok {
		t.Fatal("As failed")
	}
	if e.Field() != "unit" || e.Op() != "resolve" {
		t.Fatalf("got field=%q op=%q", e.Field(), e.Op())
	}

	plain := stderrs.New("plain")
	if WithField(plain, "x") != plain || WithOp(plain, "x") != plain {
		t.Fatal("foreign errors must pass through unchanged")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil = %+v", w)
	}

	err := WithOp(WithField(Wrap(stderrs.New("secret"), ErrorCodeValidation, "keywords required"), "keywords"), "fetch")
	w := WireFrom(err)
	if w.Code != ErrorCodeValidation || w.Message != "keywords required" || w.Field != "keywords" {
		t.Fatalf("wire = %+v", w)
	}

	w = WireFrom(stderrs.New("boom"))
	if w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("run %s", "x"), ErrorCodeNotFound},
		{InvalidArgf("mode %q", "weekly"), ErrorCodeInvalidArgument},
		{JSONErrf("widget %d", 2), ErrorCodeJSON},
		{PanicErrf("boom"), ErrorCodePanic},
		{Unavailablef("archive"), ErrorCodeUnavailable},
		{Internalf("oops"), ErrorCodeUnknown},
		{Newf(ErrorCodeTooManyRequests, "%d", 429), ErrorCodeTooManyRequests},
	}
	for _, c := range cases {
		if CodeOf(c.err) != c.code {
			t.Errorf("%v: code = %d, want %d", c.err, CodeOf(c.err), c.code)
		}
	}
}
