// Package seed holds the reference data loaded into a fresh catalog store.
package seed

import "marketplace/pkg/model"

var States = []model.State{
	{Name: "Acre", Initials: "AC"},
	{Name: "Alagoas", Initials: "AL"},
	{Name: "Amapá", Initials: "AP"},
	{Name: "Amazonas", Initials: "AM"},
	{Name: "Bahia", Initials: "BA"},
	{Name: "Ceará", Initials: "CE"},
	{Name: "Distrito Federal", Initials: "DF"},
	{Name: "Espírito Santo", Initials: "ES"},
	{Name: "Goiás", Initials: "GO"},
	{Name: "Maranhão", Initials: "MA"},
	{Name: "Mato Grosso", Initials: "MT"},
	{Name: "Mato Grosso do Sul", Initials: "MS"},
	{Name: "Minas Gerais", Initials: "MG"},
	{Name: "Pará", Initials: "PA"},
	{Name: "Paraíba", Initials: "PB"},
	{Name: "Paraná", Initials: "PR"},
	{Name: "Pernambuco", Initials: "PE"},
	{Name: "Piauí", Initials: "PI"},
	{Name: "Rio de Janeiro", Initials: "RJ"},
	{Name: "Rio Grande do Norte", Initials: "RN"},
	{Name: "Rio Grande do Sul", Initials: "RS"},
	{Name: "Rondônia", Initials: "RO"},
	{Name: "Roraima", Initials: "RR"},
	{Name: "Santa Catarina", Initials: "SC"},
	{Name: "São Paulo", Initials: "SP"},
	{Name: "Sergipe", Initials: "SE"},
	{Name: "Tocantins", Initials: "TO"},
}

// City pairs a city name with the initials of its state.
type City struct {
	Name          string
	StateInitials string
}

var Cities = []City{
	{Name: "Florianópolis", StateInitials: "SC"},
	{Name: "Joinville", StateInitials: "SC"},
	{Name: "Blumenau", StateInitials: "SC"},
	{Name: "São Paulo", StateInitials: "SP"},
	{Name: "Campinas", StateInitials: "SP"},
	{Name: "Curitiba", StateInitials: "PR"},
	{Name: "Porto Alegre", StateInitials: "RS"},
	{Name: "Rio de Janeiro", StateInitials: "RJ"},
}

var Categories = []string{"technology", "home", "beauty", "health", "books"}

// Product references its category by name.
type Product struct {
	Name           string
	SuggestedPrice float64
	Category       string
}

var Products = []Product{
	{Name: "Smartphone A21s", SuggestedPrice: 2500, Category: "technology"},
	{Name: "Notebook Dell", SuggestedPrice: 3500, Category: "technology"},
	{Name: "Mackbook Pro", SuggestedPrice: 7500, Category: "technology"},
	{Name: "Pc Gamer", SuggestedPrice: 5500, Category: "technology"},
	{Name: "Monitor Ultrawide Curvo", SuggestedPrice: 1700, Category: "technology"},
	{Name: "Teclado Husky Gaming Blizzard", SuggestedPrice: 229, Category: "technology"},
	{Name: "Mouse Gamer Redragon Cobra", SuggestedPrice: 114.9, Category: "technology"},
	{Name: "Playstation 5", SuggestedPrice: 5900, Category: "technology"},
	{Name: "Impressora Multifuncional HP Ink Advantage", SuggestedPrice: 499.9, Category: "technology"},
	{Name: "Smart TV Samsung 75´ 8K Neo", SuggestedPrice: 21999, Category: "home"},
}

var Permissions = []string{
	model.PermissionRead,
	model.PermissionWrite,
	model.PermissionUpdate,
	model.PermissionDelete,
}
