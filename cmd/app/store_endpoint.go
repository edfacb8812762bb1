package main

import (
	"net/http"

	"github.com/aryant0/mithila-bazaar/external/whatsapp"
	"github.com/aryant0/mithila-bazaar/internal/config"

	"github.com/labstack/echo/v4"
)

func registerStoreRoutes(g *echo.Group, profile config.StoreProfile) {
	contactLink := whatsapp.Link(profile.WhatsAppNumber, profile.ContactMessage)

	g.GET("/store", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"profile":     profile,
			"contactLink": contactLink,
		})
	})
}
