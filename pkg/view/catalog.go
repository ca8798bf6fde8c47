package view

import "net/url"

// CatalogURL links to the catalog pre-filtered by category.
func CatalogURL(category string) string {
	if category == "" {
		return "/catalog"
	}
	return "/catalog?category=" + url.QueryEscape(category)
}

// EmptyState is shown when a lookup finds nothing.
type EmptyState struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	BackURL string `json:"backUrl"`
	Back    string `json:"back"`
}

var ProductNotFound = EmptyState{
	Title:   "Produto não encontrado",
	Message: "O produto que você procura não existe ou foi removido.",
	BackURL: "/catalog",
	Back:    "Voltar ao catálogo",
}

var NoResults = EmptyState{
	Title:   "Nenhum produto encontrado",
	Message: "Tente outra categoria ou termo de busca.",
	BackURL: "/catalog",
	Back:    "Limpar filtros",
}
