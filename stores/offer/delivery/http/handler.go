package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/delivery"
	"github.com/cardbay/goapi/domain"
	"github.com/cardbay/goapi/domain/listing"
	"github.com/cardbay/goapi/domain/offer"
	authMiddleware "github.com/cardbay/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	offer offer.Usecase
}

// New registers offer endpoints
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, offer offer.Usecase) {
	h := &handler{offer}

	gs := e.Group("/offers")
	gs.POST("", h.submit, authMiddleware.Auth(), authMiddleware.CanTrade())
	gs.GET("", h.search)

	g := e.Group("/offer")
	g.GET("/:id", h.get)
	g.PATCH("/:id/accept", h.accept, authMiddleware.Auth())
	g.PATCH("/:id/reject", h.reject, authMiddleware.Auth())
}

func (h *handler) submit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	bidder := c.Get("userId").(domain.UserId)

	p := &offer.SubmitPayload{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	if res, err := h.offer.Submit(ctx, bidder, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Offset    int32   `query:"offset"`
		Limit     int32   `query:"limit"`
		ListingId *string `query:"listingId"`
		Bidder    *string `query:"bidder"`
		Status    *string `query:"status"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	opts := []offer.FindAllOptionsFunc{
		offer.WithPagination(p.Offset, p.Limit),
	}
	if p.ListingId != nil {
		opts = append(opts, offer.WithListingId(listing.Id(*p.ListingId)))
	}
	if p.Bidder != nil {
		opts = append(opts, offer.WithBidder(domain.UserId(*p.Bidder)))
	}
	if p.Status != nil {
		opts = append(opts, offer.WithStatus(offer.Status(*p.Status)))
	}

	if res, err := h.offer.Search(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	id := offer.Id(c.Param("id"))

	if res, err := h.offer.Get(ctx, id); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) accept(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	requester := c.Get("userId").(domain.UserId)
	id := offer.Id(c.Param("id"))

	if res, err := h.offer.Accept(ctx, id, requester); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) reject(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	requester := c.Get("userId").(domain.UserId)
	id := offer.Id(c.Param("id"))

	if res, err := h.offer.Reject(ctx, id, requester); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
