package main

import (
	"net/http"

	"github.com/aryant0/mithila-bazaar/internal/middleware"
	"github.com/aryant0/mithila-bazaar/internal/services"

	"github.com/labstack/echo/v4"
)

type addCartRequest struct {
	ItemID int64 `json:"itemId"`
}

type updateCartRequest struct {
	Qty *int `json:"quantity"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")

	// GET cart
	p.GET("", func(c echo.Context) error {
		cart, err := cs.Get(c.Request().Context(), middleware.SessionID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// ADD item
	p.POST("/items", func(c echo.Context) error {
		req := new(addCartRequest)
		if err := c.Bind(req); err != nil || req.ItemID <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		cart, err := cs.AddItem(c.Request().Context(), middleware.SessionID(c), req.ItemID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, cart)
	})

	// UPDATE quantity
	p.PUT("/items/:id", func(c echo.Context) error {
		req := new(updateCartRequest)
		if err := c.Bind(req); err != nil || req.Qty == nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "quantity is required"})
		}
		cart, err := cs.UpdateQuantity(c.Request().Context(), middleware.SessionID(c), c.Param("id"), *req.Qty)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// REMOVE item
	p.DELETE("/items/:id", func(c echo.Context) error {
		cart, err := cs.Remove(c.Request().Context(), middleware.SessionID(c), c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// CLEAR cart
	p.DELETE("", func(c echo.Context) error {
		if err := cs.Clear(c.Request().Context(), middleware.SessionID(c)); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "cleared"})
	})
}
