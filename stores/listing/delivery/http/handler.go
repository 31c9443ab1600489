package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/delivery"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/listing"
	"github.com/cardbay/goapi/middleware"
	authMiddleware "github.com/cardbay/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing listing.Usecase
}

// New registers listing endpoints
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, listing listing.Usecase) {
	h := &handler{listing}

	gs := e.Group("/listings")
	gs.POST("", h.create, authMiddleware.Auth(), authMiddleware.CanTrade())
	gs.GET("", h.search, middleware.CacheHttp(15*time.Second))

	g := e.Group("/listing")
	g.GET("/:id", h.get)
	g.GET("/:id/view-count", h.viewCount)
	g.PATCH("/:id", h.update, authMiddleware.Auth())
	g.DELETE("/:id", h.cancel, authMiddleware.Auth())
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	seller := c.Get("userId").(domain.UserId)

	p := &listing.CreatePayload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if res, err := h.listing.Create(ctx, seller, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listing.SearchParams{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	opts := []listing.FindAllOptionsFunc{
		listing.WithPagination(p.Offset, p.Limit),
	}
	if p.Status != nil {
		opts = append(opts, listing.WithStatus(*p.Status))
	}
	if p.SaleMode != nil {
		opts = append(opts, listing.WithSaleMode(listing.SaleMode(*p.SaleMode)))
	}
	if p.Seller != nil {
		opts = append(opts, listing.WithSeller(domain.UserId(*p.Seller)))
	}

	if res, err := h.listing.Search(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := listing.Id(c.Param("id"))

	res, err := h.listing.Get(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// viewCount bumps and returns the view counter. The client pings this once
// per render so the detail read itself stays cacheable.
func (h *handler) viewCount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := listing.Id(c.Param("id"))

	if res, err := h.listing.IncreaseViewCount(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	identity := c.Get("identity").(*domain.Identity)
	id := listing.Id(c.Param("id"))

	p := &listing.UpdatePayload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if res, err := h.listing.Update(ctx, id, identity, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	userId := c.Get("userId").(domain.UserId)
	id := listing.Id(c.Param("id"))

	if err := h.listing.Cancel(ctx, id, userId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
