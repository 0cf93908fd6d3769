package backend

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourofheroes/heroes/internal/config"
	"github.com/tourofheroes/heroes/internal/registry"
	"github.com/tourofheroes/heroes/internal/storage"
)

func TestBackendModule_DefaultSeed(t *testing.T) {
	reg := registry.New(&config.Config{})
	m := New(Dependencies{Files: storage.NewAferoStore(afero.NewMemMapFs())})

	require.NoError(t, m.Register(reg))

	store := registry.MustGet(reg, StoreKey)
	assert.Len(t, store.List(), 10)
	assert.Equal(t, "/apis/heroes", m.Prefix())
	assert.Equal(t, "backend", m.Name())
}

func TestBackendModule_SeedFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/seed/heroes.json", []byte(`[{"id":1,"name":"Solo"}]`), 0o644))
	reg := registry.New(&config.Config{SeedFile: "/seed/heroes.json"})
	m := New(Dependencies{Files: storage.NewAferoStore(fs)})

	require.NoError(t, m.Register(reg))

	store := registry.MustGet(reg, StoreKey)
	require.Len(t, store.List(), 1)
	assert.Equal(t, "Solo", store.List()[0].Name)
}

func TestBackendModule_BadSeedFails(t *testing.T) {
	reg := registry.New(&config.Config{SeedFile: "/missing.json"})
	m := New(Dependencies{Files: storage.NewAferoStore(afero.NewMemMapFs())})

	assert.ErrorContains(t, m.Register(reg), "load hero seed")
}

func TestBackendModule_BootMountsRoutes(t *testing.T) {
	reg := registry.New(&config.Config{})
	m := New(Dependencies{Files: storage.NewAferoStore(afero.NewMemMapFs())})
	require.NoError(t, m.Register(reg))

	e := echo.New()
	require.NoError(t, m.Boot(context.Background(), e.Group(m.Prefix()), reg))

	rec := serve(t, e, http.MethodGet, "/apis/heroes/11", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	api := registry.MustGet(reg, APIKey)
	rec = serve(t, api.(*echo.Echo), http.MethodGet, "/apis/heroes?name=nice", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":11,"name":"Dr Nice"}]`, rec.Body.String())
}
