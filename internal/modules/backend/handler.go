package backend

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tourofheroes/heroes/internal/domain"
)

// Handler serves the heroes REST collection.
type Handler struct {
	store     *Store
	validator *CustomValidator
	logger    *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store:     store,
		validator: NewValidator(),
		logger:    slog.Default().With("component", "backend"),
	}
}

// Register mounts the collection routes on g, which is expected to be rooted
// at the collection path.
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("", h.Update)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET with optional ?id= or ?name= filters. id wins when both are given.
func (h *Handler) List(c echo.Context) error {
	if raw := c.QueryParam("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
		}
		return c.JSON(http.StatusOK, h.store.FilterByID(id))
	}
	if name, ok := c.QueryParams()["name"]; ok {
		return c.JSON(http.StatusOK, h.store.Search(name[0]))
	}
	return c.JSON(http.StatusOK, h.store.List())
}

// Get handles GET /{id}.
func (h *Handler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	hero, err := h.store.Get(id)
	if errors.Is(err, domain.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "hero "+strconv.Itoa(id)+" not found")
	}
	return c.JSON(http.StatusOK, hero)
}

// Create handles POST. Any id in the body is ignored.
func (h *Handler) Create(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return err
	}
	hero := h.store.Create(req.Name)
	h.logger.Debug("Hero created", "id", hero.ID, "name", hero.Name)
	return c.JSON(http.StatusCreated, hero)
}

// Update handles PUT on the collection and on /{id}. An unknown id is added,
// as the in-memory web API does by default.
func (h *Handler) Update(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return err
	}
	if c.Param("id") != "" {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if req.ID != 0 && req.ID != id {
			return echo.NewHTTPError(http.StatusBadRequest, "body id does not match path id")
		}
		req.ID = id
	}
	if req.ID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	hero := domain.Hero{ID: req.ID, Name: req.Name}
	if h.store.Upsert(hero) {
		h.logger.Debug("Hero added by update", "id", hero.ID)
		return c.JSON(http.StatusCreated, hero)
	}
	h.logger.Debug("Hero updated", "id", hero.ID)
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /{id}. Deleting an unknown id still succeeds.
func (h *Handler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if h.store.Delete(id) {
		h.logger.Debug("Hero deleted", "id", id)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) bind(c echo.Context) (heroRequest, error) {
	var req heroRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid hero payload")
	}
	req.Name = domain.NormalizeName(req.Name)
	if err := h.validator.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, domain.ErrInvalidHero.Error()).SetInternal(err)
	}
	return req, nil
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}
