package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpmarket/internal/contracts"
)

// Category is the API representation of a catalog category.
type Category struct {
	ID   string `doc:"Category identifier" example:"development" json:"id"`
	Name string `doc:"Display name"        example:"Development" json:"name"`
	Icon string `doc:"Display icon"        example:"💻"          json:"icon"`
}

// CategoriesResponse represents the wrapped API response for the catalog categories.
type CategoriesResponse struct {
	Body struct {
		Categories []Category `doc:"Catalog categories" json:"categories"`
	}
}

// RegisterCategoryRoutes sets up catalog category API endpoints
func RegisterCategoryRoutes(routerAPI huma.API, catalog contracts.CatalogReader, apiPathPrefix string) {
	categoriesAPI := huma.NewGroup(routerAPI, apiPathPrefix)

	huma.Register(
		categoriesAPI,
		huma.Operation{
			OperationID: "listCategories",
			Method:      http.MethodGet,
			Summary:     "List catalog categories",
			Tags:        []string{"Categories"},
		},
		func(ctx context.Context, _ *struct{}) (*CategoriesResponse, error) {
			return handleCategories(catalog)
		},
	)
}

func handleCategories(catalog contracts.CatalogReader) (*CategoriesResponse, error) {
	categories := catalog.ListCategories()

	resp := &CategoriesResponse{}
	resp.Body.Categories = make([]Category, 0, len(categories))
	for _, c := range categories {
		data, err := DomainCategory(c).ToAPIType()
		if err != nil {
			return nil, err
		}
		resp.Body.Categories = append(resp.Body.Categories, data)
	}

	return resp, nil
}
