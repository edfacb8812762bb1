package main

import (
	"net/http"

	"github.com/aryant0/mithila-bazaar/internal/middleware"
	"github.com/aryant0/mithila-bazaar/internal/model"
	"github.com/aryant0/mithila-bazaar/internal/services"

	"github.com/labstack/echo/v4"
)

func registerCheckoutRoutes(g *echo.Group, os *services.OrderService) {
	g.POST("/checkout", func(c echo.Context) error {
		req := new(model.CheckoutRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}

		receipt, err := os.PlaceOrder(c.Request().Context(), middleware.SessionID(c), *req)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusCreated, receipt)
	})
}
