package main

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/aryant0/mithila-bazaar/internal/middleware"
	"github.com/aryant0/mithila-bazaar/internal/model"
	"github.com/aryant0/mithila-bazaar/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	maxImportBytes   = 10 << 20
	defaultOrderList = 50
)

// orderHistory is the durable order log; nil when orders are not logged.
type orderHistory interface {
	Recent(ctx context.Context, limit int) ([]model.OrderRecord, error)
}

func registerAdminRoutes(
	g *echo.Group,
	tm *middleware.TokenManager,
	auth *services.AdminAuthService,
	imp *services.ImportService,
	browser *services.ProductBrowser,
	visitors *services.VisitorService,
	orders orderHistory,
) {
	products := browser.Products

	// login is the only open admin route
	g.POST("/admin/login", func(c echo.Context) error {
		req := new(model.AdminLoginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := auth.Login(c.Request().Context(), req.Username, req.Password); err != nil {
			return respondError(c, err)
		}
		token, exp, err := tm.GenerateToken(req.Username, services.AdminRole)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, model.AdminToken{Token: token, ExpiresAt: exp})
	})

	p := g.Group("/admin", tm.JWTMiddleware(), middleware.AdminOnly)

	p.POST("/logout", func(c echo.Context) error {
		tm.Revoke(middleware.GetClaims(c))
		return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
	})

	// POST /api/admin/products/json (raw JSON array body)
	p.POST("/products/json", func(c echo.Context) error {
		body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBytes))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		res, err := imp.ImportJSON(c.Request().Context(), body)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})

	// POST /api/admin/products/excel (multipart "file")
	p.POST("/products/excel", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
		}
		if fh.Size > maxImportBytes {
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
		}
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read file"})
		}
		defer f.Close()

		res, err := imp.ImportExcel(c.Request().Context(), f)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})

	p.GET("/products", func(c echo.Context) error {
		items, _ := products.List()
		if items == nil {
			items = []model.CatalogItem{}
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": products.Status(),
			"items":  items,
		})
	})

	// DELETE reverts the storefront to the catalog source
	p.DELETE("/products", func(c echo.Context) error {
		browser.RevertToCatalog()
		return c.JSON(http.StatusOK, map[string]string{"message": "imported products cleared"})
	})

	p.GET("/stats", func(c echo.Context) error {
		stats, err := visitors.Stats(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"visitorsToday": stats.VisitorsToday,
			"date":          stats.Date,
			"key":           stats.Key,
			"products":      products.Status(),
		})
	})

	p.GET("/orders", func(c echo.Context) error {
		if orders == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "order log is not enabled"})
		}
		limit, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil || limit <= 0 {
			limit = defaultOrderList
		}
		list, err := orders.Recent(c.Request().Context(), limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"orders": list})
	})
}
