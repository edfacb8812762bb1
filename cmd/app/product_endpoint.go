package main

import (
	"net/http"
	"strconv"

	"github.com/aryant0/mithila-bazaar/internal/model"
	"github.com/aryant0/mithila-bazaar/internal/services"

	"github.com/labstack/echo/v4"
)

func registerProductRoutes(g *echo.Group, pb *services.ProductBrowser) {
	// GET /api/products?search=&category=&page=&per_page=
	g.GET("/products", func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

		listing := pb.Browse(c.Request().Context(), model.BrowseQuery{
			Search:   c.QueryParam("search"),
			Category: c.QueryParam("category"),
			Page:     page,
			PerPage:  perPage,
		})
		return c.JSON(http.StatusOK, listing)
	})

	g.GET("/products/suggest", func(c echo.Context) error {
		names, err := pb.Suggest(c.Request().Context(), c.QueryParam("q"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"suggestions": names})
	})

	g.GET("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		}
		item, err := pb.Item(c.Request().Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, item)
	})

	// GET /api/categories?catName=
	g.GET("/categories", func(c echo.Context) error {
		cats := pb.Categories(c.Request().Context(), c.QueryParam("catName"))
		return c.JSON(http.StatusOK, map[string]interface{}{"categoryValues": cats})
	})
}
