package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovista/smart-farm-api/internal/contract"
	"github.com/agrovista/smart-farm-api/internal/model"
)

type addInput struct {
	A float64 `json:"a" validate:"gte=0"`
	B float64 `json:"b" validate:"gte=0"`
}

type addOutput struct {
	Sum float64 `json:"sum"`
	Tag string  `json:"tag" validate:"required"`
}

type lookupQuery struct {
	Kind string `json:"kind,omitempty" query:"kind" validate:"omitempty,oneof=fast slow"`
}

func testRegistry() *contract.Registry {
	r := contract.NewRegistry()
	r.Define("math.add", http.MethodPost, "/api/add",
		contract.Struct[addInput](),
		map[int]contract.Schema{
			http.StatusOK:         contract.Struct[addOutput](),
			http.StatusBadRequest: contract.Struct[model.ErrorMessage](),
		})
	r.Define("math.lookup", http.MethodGet, "/api/lookup",
		contract.Struct[lookupQuery](),
		map[int]contract.Schema{
			http.StatusOK:         contract.Struct[addOutput](),
			http.StatusBadRequest: contract.Struct[model.ErrorMessage](),
		})
	return r
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandleValidInput(t *testing.T) {
	e := echo.New()
	Handle[addInput](e, testRegistry(), "math.add", func(c echo.Context, in addInput) (int, any, error) {
		return http.StatusOK, addOutput{Sum: in.A + in.B, Tag: "ok"}, nil
	})

	rec := doJSON(t, e, http.MethodPost, "/api/add", `{"a":2,"b":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out addOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 5.0, out.Sum)
}

func TestHandleInvalidInputNeverReachesHandler(t *testing.T) {
	var invoked atomic.Bool
	e := echo.New()
	Handle[addInput](e, testRegistry(), "math.add", func(c echo.Context, in addInput) (int, any, error) {
		invoked.Store(true)
		return http.StatusOK, addOutput{Sum: 0, Tag: "ok"}, nil
	})

	for _, body := range []string{
		`{"a":-1,"b":3}`,       // range violation
		`{"a":1,"id":7}`,       // unknown field
		`{"a":1,"b":"twelve"}`, // type mismatch
		`not json`,
	} {
		rec := doJSON(t, e, http.MethodPost, "/api/add", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)

		var em model.ErrorMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &em))
		assert.NotEmpty(t, em.Message)
	}
	assert.False(t, invoked.Load(), "handler must not see invalid input")
}

func TestHandleOutboundShapeEnforced(t *testing.T) {
	e := echo.New()
	Handle[addInput](e, testRegistry(), "math.add", func(c echo.Context, in addInput) (int, any, error) {
		return http.StatusOK, addOutput{Sum: in.A + in.B}, nil // Tag missing
	})

	rec := doJSON(t, e, http.MethodPost, "/api/add", `{"a":2,"b":3}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var em model.ErrorMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &em))
	assert.Equal(t, "Internal server error", em.Message)
}

func TestHandleUnregisteredStatusEnforced(t *testing.T) {
	e := echo.New()
	Handle[addInput](e, testRegistry(), "math.add", func(c echo.Context, in addInput) (int, any, error) {
		return http.StatusAccepted, addOutput{Sum: 1, Tag: "ok"}, nil
	})

	rec := doJSON(t, e, http.MethodPost, "/api/add", `{"a":2,"b":3}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleInternalError(t *testing.T) {
	e := echo.New()
	Handle[addInput](e, testRegistry(), "math.add", func(c echo.Context, in addInput) (int, any, error) {
		return 0, nil, assert.AnError
	})

	rec := doJSON(t, e, http.MethodPost, "/api/add", `{"a":2,"b":3}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleGetBindsQuery(t *testing.T) {
	e := echo.New()
	Handle[lookupQuery](e, testRegistry(), "math.lookup", func(c echo.Context, in lookupQuery) (int, any, error) {
		return http.StatusOK, addOutput{Sum: 0, Tag: in.Kind}, nil
	})

	rec := doJSON(t, e, http.MethodGet, "/api/lookup?kind=fast", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out addOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "fast", out.Tag)

	rec = doJSON(t, e, http.MethodGet, "/api/lookup?kind=sideways", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUnknownKeyPanics(t *testing.T) {
	e := echo.New()
	assert.Panics(t, func() {
		Handle[addInput](e, testRegistry(), "math.missing", func(c echo.Context, in addInput) (int, any, error) {
			return http.StatusOK, nil, nil
		})
	})
}
