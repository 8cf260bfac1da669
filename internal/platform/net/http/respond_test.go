package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "combatlog/internal/platform/errors"
	pnet "combatlog/internal/platform/net"
	phttp "combatlog/internal/platform/net/http"
)

// reqWithReqID builds a request with a request id in context
func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestJSON_SetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestRespondOK(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, reqWithReqID("GET", "/x", "rid-1"), map[string]string{"a": "b"})
	env := decode(t, rec)
	if rec.Code != http.StatusOK || env.StatusCode != 200 || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("bad envelope: %d %+v", rec.Code, env)
	}
}

func TestRespondError_MapsCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{perr.NotFoundf("encounter not found"), http.StatusNotFound},
		{perr.InvalidArgf("bad date"), http.StatusUnprocessableEntity},
		{perr.New(perr.ErrorCodeStorage, "disk"), http.StatusInternalServerError},
		{perr.New(perr.ErrorCodeCodec, "decode"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		phttp.RespondError(rec, reqWithReqID("GET", "/x", "rid-e"), c.err)
		env := decode(t, rec)
		if rec.Code != c.want || env.StatusCode != c.want || env.Error == "" || env.RequestID != "rid-e" {
			t.Fatalf("RespondError(%v) = %d %+v, want %d", c.err, rec.Code, env, c.want)
		}
	}
}

func TestHandle_ReturnStyle(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h := phttp.Handle(func(*http.Request) phttp.Response {
			return phttp.Response{Status: http.StatusOK, Body: []int{1}, Header: http.Header{"X-Test": {"1"}}}
		})
		h(rec, reqWithReqID("GET", "/", "r"))
		if rec.Code != http.StatusOK || rec.Header().Get("X-Test") != "1" {
			t.Fatalf("ok path = %d %v", rec.Code, rec.Header())
		}
	})

	t.Run("no content", func(t *testing.T) {
		rec := httptest.NewRecorder()
		phttp.Handle(func(*http.Request) phttp.Response { return phttp.NoContent() })(rec, reqWithReqID("POST", "/", "r"))
		if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
			t.Fatalf("no content = %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("error with field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := perr.WithField(perr.InvalidArgf("date must be YYYY-MM-DD"), "date")
		phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(err) })(rec, reqWithReqID("GET", "/", "r"))
		env := decode(t, rec)
		if rec.Code != http.StatusUnprocessableEntity || env.Field != "date" || env.Code != perr.ErrorCodeInvalidArgument {
			t.Fatalf("error path = %d %+v", rec.Code, env)
		}
	})

	t.Run("zero status defaults to 200", func(t *testing.T) {
		rec := httptest.NewRecorder()
		phttp.Handle(func(*http.Request) phttp.Response { return phttp.Response{Body: "x"} })(rec, reqWithReqID("GET", "/", "r"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}
