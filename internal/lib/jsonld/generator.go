package jsonld

import (
	"encoding/json"
	"fmt"

	"dream_match/internal/domain"
)

// Generator — генератор JSON-LD разметки (schema.org) для объявлений.
type Generator struct{}

// NewGenerator создаёт новый генератор JSON-LD.
func NewGenerator() *Generator {
	return &Generator{}
}

// RealEstateListing — JSON-LD структура листинга недвижимости.
type RealEstateListing struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	ID          string `json:"@id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Offers  *Offer         `json:"offers,omitempty"`
	Address *PostalAddress `json:"address,omitempty"`

	FloorSize     *QuantitativeValue `json:"floorSize,omitempty"`
	NumberOfRooms *int32             `json:"numberOfRooms,omitempty"`
	FloorLevel    string             `json:"floorLevel,omitempty"`

	AdditionalProperty []PropertyValue `json:"additionalProperty,omitempty"`
}

// Offer — цена и валюта.
type Offer struct {
	Type          string `json:"@type"`
	Price         int64  `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
}

// PostalAddress — адрес.
type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
}

// QuantitativeValue — величина с единицей измерения.
type QuantitativeValue struct {
	Type     string  `json:"@type"`
	Value    float64 `json:"value"`
	UnitCode string  `json:"unitCode"` // MTK = квадратные метры
}

// PropertyValue — произвольное дополнительное свойство.
type PropertyValue struct {
	Type  string `json:"@type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Generate строит JSON-LD документ для объявления.
func (g *Generator) Generate(l domain.Listing) ([]byte, error) {
	const op = "jsonld.Generator.Generate"

	doc := RealEstateListing{
		Context:       "https://schema.org",
		Type:          "RealEstateListing",
		ID:            l.ID.String(),
		Name:          l.Title,
		NumberOfRooms: l.Rooms,
		Offers: &Offer{
			Type:          "Offer",
			Price:         l.Price,
			PriceCurrency: "RUB",
		},
	}

	if l.Address != "" || l.District != nil {
		addr := &PostalAddress{Type: "PostalAddress", StreetAddress: l.Address}
		if l.District != nil {
			addr.AddressLocality = *l.District
		}
		doc.Address = addr
	}

	if l.TotalArea != nil {
		doc.FloorSize = &QuantitativeValue{Type: "QuantitativeValue", Value: *l.TotalArea, UnitCode: "MTK"}
	}

	if l.Floor != nil {
		doc.FloorLevel = fmt.Sprintf("%d", *l.Floor)
	}

	doc.AdditionalProperty = additionalProperties(l)

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

// additionalProperties собирает известные характеристики дома и сделки.
func additionalProperties(l domain.Listing) []PropertyValue {
	var props []PropertyValue

	add := func(name, value string) {
		props = append(props, PropertyValue{Type: "PropertyValue", Name: name, Value: value})
	}

	if l.BuildingType != domain.BuildingUnknown {
		add("buildingType", l.BuildingType.String())
	}
	if l.Renovation != domain.RenovationUnknown {
		add("renovation", l.Renovation.String())
	}
	if l.BuildYear != nil {
		add("buildYear", fmt.Sprintf("%d", *l.BuildYear))
	}
	if l.Complex != nil {
		add("complex", *l.Complex)
	}
	if l.MetroStation != nil {
		add("metroStation", *l.MetroStation)
	}
	if l.MortgageAvailable != nil && *l.MortgageAvailable {
		add("mortgageAvailable", "true")
	}

	return props
}
