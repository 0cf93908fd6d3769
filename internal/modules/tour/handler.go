package tour

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"maragu.dev/gomponents"

	"github.com/tourofheroes/heroes/internal/domain"
	"github.com/tourofheroes/heroes/internal/middleware"
	"github.com/tourofheroes/heroes/internal/modules/tour/components"
	"github.com/tourofheroes/heroes/internal/rendering"
	"github.com/tourofheroes/heroes/internal/view"
)

// MessageSource lists the message log.
type MessageSource interface {
	All() []string
}

// Handler serves the tour pages and fragments.
type Handler struct {
	dashboard *DashboardController
	heroes    *HeroesController
	detail    *DetailController
	messages  MessageSource
	renderer  rendering.Renderer
}

// NewHandler creates a new Handler.
func NewHandler(svc HeroService, messages MessageSource, renderer rendering.Renderer) *Handler {
	return &Handler{
		dashboard: NewDashboardController(svc),
		heroes:    NewHeroesController(svc),
		detail:    NewDetailController(svc),
		messages:  messages,
		renderer:  renderer,
	}
}

// Root redirects to the dashboard.
func (h *Handler) Root(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Dashboard renders the top heroes and the search box.
func (h *Handler) Dashboard(c echo.Context) error {
	state := h.dashboard.Init(c.Request().Context())
	return h.page(c, "Dashboard", components.Dashboard(state.TopHeroes))
}

// Heroes renders the full list.
func (h *Handler) Heroes(c echo.Context) error {
	state := h.heroes.Init(c.Request().Context())
	return h.page(c, "Heroes", components.HeroList(state.Heroes))
}

// AddHero creates a hero from the "name" form field and answers with its row.
// Nothing is swapped when the name is blank or creation fails.
func (h *Handler) AddHero(c echo.Context) error {
	_, created := h.heroes.Add(c.Request().Context(), HeroesState{}, c.FormValue("name"))
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/heroes")
	}
	if created == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return h.renderer.RenderPage(c, http.StatusOK, components.HeroItem(*created))
}

// DeleteHero drops the row immediately and deletes in the background.
func (h *Handler) DeleteHero(c echo.Context) error {
	id, err := heroID(c)
	if err != nil {
		return err
	}
	h.heroes.Delete(c.Request().Context(), HeroesState{}, domain.HeroID(id))
	middleware.FromContext(c.Request().Context()).Debug("Hero delete dispatched", "id", id)
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/heroes")
	}
	return c.HTML(http.StatusOK, "")
}

// Detail renders the edit form for one hero.
func (h *Handler) Detail(c echo.Context) error {
	id, err := heroID(c)
	if err != nil {
		return err
	}
	state := h.detail.Init(c.Request().Context(), id)
	title := "Hero"
	if state.Hero != nil {
		title = state.Hero.Name
	}
	return h.page(c, title, components.HeroDetail(state.Hero))
}

// SaveDetail updates the hero and navigates back, whatever the outcome; a
// failure shows up in the message log.
func (h *Handler) SaveDetail(c echo.Context) error {
	id, err := heroID(c)
	if err != nil {
		return err
	}
	h.detail.Save(c.Request().Context(), domain.Hero{ID: id, Name: c.FormValue("name")})
	return c.Redirect(http.StatusSeeOther, view.Back(c))
}

// Back navigates to the previous page.
func (h *Handler) Back(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, view.Back(c))
}

// Messages renders the message panel on its own.
func (h *Handler) Messages(c echo.Context) error {
	return h.renderer.RenderPage(c, http.StatusOK, view.MessagePanel(h.messages.All()))
}

// Wait blocks until background deletes have finished.
func (h *Handler) Wait() {
	h.heroes.Wait()
}

// page wraps content in the layout. The message log is read last so it
// includes the messages produced while loading the page.
func (h *Handler) page(c echo.Context, title string, content gomponents.Node) error {
	p := view.Page{
		Title:    title,
		Path:     c.Request().URL.Path,
		Messages: h.messages.All(),
	}
	return h.renderer.RenderPage(c, http.StatusOK, view.Layout(p, content))
}

func heroID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "hero id must be an integer")
	}
	return id, nil
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
