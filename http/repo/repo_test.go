package repo_test

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/switchback-web/switchback"
	"github.com/switchback-web/switchback/http/middleware"
	"github.com/switchback-web/switchback/http/repo"
	"github.com/switchback-web/switchback/http/router"
	"github.com/switchback-web/switchback/http/schema"
	"github.com/switchback-web/switchback/logger"
)

type newProduct struct {
	Name string `json:"name" validate:"min=3"`
}

// creatorOnly implements just repo.Creator.
type creatorOnly struct {
	created []string
}

func (c *creatorOnly) Create(w http.ResponseWriter, r *http.Request) error {
	p, _ := schema.Body[newProduct](r)
	c.created = append(c.created, p.Name)
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(map[string]string{"name": p.Name})
}

// ProductRepository implements all six operations, each echoing its name.
type ProductRepository struct{}

func echo(op string) func(http.ResponseWriter, *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		return json.NewEncoder(w).Encode(map[string]string{"op": op})
	}
}

func (ProductRepository) Create(w http.ResponseWriter, r *http.Request) error { return echo("create")(w, r) }
func (ProductRepository) List(w http.ResponseWriter, r *http.Request) error   { return echo("list")(w, r) }
func (ProductRepository) Get(w http.ResponseWriter, r *http.Request) error    { return echo("get")(w, r) }
func (ProductRepository) Update(w http.ResponseWriter, r *http.Request) error { return echo("update")(w, r) }
func (ProductRepository) Patch(w http.ResponseWriter, r *http.Request) error  { return echo("patch")(w, r) }
func (ProductRepository) Delete(w http.ResponseWriter, r *http.Request) error { return echo("delete")(w, r) }

func newRouter() *router.Router {
	quiet := logger.New(logger.WithLogger(log.New(os.Stdout, "", 0)), logger.WithLevel(logger.LogLevelFatal))
	return router.New(switchback.Testing, router.WithLogger(quiet))
}

func TestRegisterSkipsAbsentMethods(t *testing.T) {
	r := newRouter()
	repo.Register(r, &creatorOnly{}, repo.Config{PathName: "products"})
	app := r.Finish()

	t.Run("PresentMethodRouted", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"anvil"}`)))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	absent := []struct {
		verb string
		path string
	}{
		{http.MethodGet, "/products"},
		{http.MethodGet, "/products/1"},
		{http.MethodPut, "/products/1"},
		{http.MethodPatch, "/products/1"},
		{http.MethodDelete, "/products/1"},
	}
	for _, tc := range absent {
		t.Run(tc.verb+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(tc.verb, tc.path, nil))
			assert.NotEqual(t, http.StatusOK, w.Code)
			assert.NotEqual(t, http.StatusCreated, w.Code)
		})
	}
}

func TestRegisterFullTable(t *testing.T) {
	r := newRouter()
	repo.Register(r, ProductRepository{}, repo.Config{})
	app := r.Finish()

	tcs := []struct {
		verb string
		path string
		op   string
	}{
		{http.MethodPost, "/product", "create"},
		{http.MethodGet, "/product", "list"},
		{http.MethodGet, "/product/42", "get"},
		{http.MethodPut, "/product/42", "update"},
		{http.MethodPatch, "/product/42", "patch"},
		{http.MethodDelete, "/product/42", "delete"},
	}

	for _, tc := range tcs {
		t.Run(tc.op, func(t *testing.T) {
			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(tc.verb, tc.path, nil))
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"op":"`+tc.op+`"}`, w.Body.String())
		})
	}
}

func TestRegisterSchemaValidatesBeforeHandler(t *testing.T) {
	store := &creatorOnly{}
	r := newRouter()
	repo.Register(r, store, repo.Config{
		PathName: "products",
		Methods: map[repo.Op]repo.Method{
			repo.OpCreate: {Schema: schema.Single(schema.Struct[newProduct]())},
		},
	})
	app := r.Finish()

	t.Run("Invalid", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"a"}`)))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, store.created, "handler must not run on validation failure")

		var got struct {
			Error   bool `json:"error"`
			Content struct {
				SchemaIssues []struct {
					Attribute string `json:"attribute"`
					Error     string `json:"error"`
				} `json:"schemaIssues"`
			} `json:"content"`
		}
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got.Content.SchemaIssues, 1)
		assert.Equal(t, "body.name", got.Content.SchemaIssues[0].Attribute)
	})

	t.Run("Valid", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"anvil"}`)))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, []string{"anvil"}, store.created)
		assert.JSONEq(t, `{"name":"anvil"}`, w.Body.String())
	})
}

func TestRegisterZeroMethodBindsNoSchema(t *testing.T) {
	store := &creatorOnly{}
	r := newRouter()
	repo.Register(r, store, repo.Config{
		PathName: "products",
		Methods:  map[repo.Op]repo.Method{repo.OpCreate: {}},
	})
	app := r.Finish()

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusCreated, w.Code, "an unconfigured operation registers without validation")
}

func TestRegisterMiddlewareRunsPerOperation(t *testing.T) {
	mark := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Add("X-Marker", name)
				h.ServeHTTP(w, r)
			})
		}
	}

	r := newRouter()
	repo.Register(r, ProductRepository{}, repo.Config{
		PathName: "products",
		Methods: map[repo.Op]repo.Method{
			repo.OpList: {Middleware: []middleware.Adapter{mark("list-only")}},
		},
	})
	app := r.Finish()

	t.Run("Configured", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"list-only"}, w.Header().Values("X-Marker"))
	})

	t.Run("Others", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/1", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Values("X-Marker"))
	})
}

func TestRegisterIDParam(t *testing.T) {
	type idParams struct {
		SKU string `schema:"sku" validate:"required,len=4"`
	}

	r := newRouter()
	repo.Register(r, ProductRepository{}, repo.Config{
		PathName: "products",
		IDParam:  "sku",
		Methods: map[repo.Op]repo.Method{
			repo.OpGet: {Schema: schema.Spec{Params: schema.Struct[idParams]()}},
		},
	})
	app := r.Finish()

	t.Run("Valid", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/AB12", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid", func(t *testing.T) {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/AB123", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterDefaultNaming(t *testing.T) {
	r := newRouter()
	repo.Register(r, &ProductRepository{}, repo.Config{})
	app := r.Finish()

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product", nil))
	assert.Equal(t, http.StatusOK, w.Code, "pointer receiver derives the same base path")
}

func TestRegisterWithNamer(t *testing.T) {
	r := newRouter()
	repo.Register(r, ProductRepository{}, repo.Config{}, repo.WithNamer(func(name string) string {
		return "catalog"
	}))
	app := r.Finish()

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterNilRepository(t *testing.T) {
	require.Panics(t, func() { repo.Register(newRouter(), nil, repo.Config{}) })
}
