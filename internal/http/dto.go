package http

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"dream_match/internal/domain"
)

// ListingDTO — транспортное представление объявления.
type ListingDTO struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	Address  string `json:"address,omitempty"`
	Price    int64  `json:"price"`
	DealType string `json:"deal_type,omitempty"`

	Rooms         *int32   `json:"rooms,omitempty"`
	TotalArea     *float64 `json:"total_area,omitempty"`
	LivingArea    *float64 `json:"living_area,omitempty"`
	KitchenArea   *float64 `json:"kitchen_area,omitempty"`
	CeilingHeight *float64 `json:"ceiling_height,omitempty"`
	Balcony       string   `json:"balcony,omitempty"`
	Bathroom      string   `json:"bathroom,omitempty"`
	BathroomCount *int32   `json:"bathroom_count,omitempty"`

	District      *string `json:"district,omitempty"`
	MetroStation  *string `json:"metro_station,omitempty"`
	MetroDistance *int32  `json:"metro_distance,omitempty"`
	Floor         *int32  `json:"floor,omitempty"`
	FloorsTotal   *int32  `json:"floors_total,omitempty"`

	BuildingType      string  `json:"building_type,omitempty"`
	Renovation        string  `json:"renovation,omitempty"`
	BuildYear         *int32  `json:"build_year,omitempty"`
	ConstructionState string  `json:"construction_state,omitempty"`
	Complex           *string `json:"complex,omitempty"`
	Developer         *string `json:"developer,omitempty"`
	HasElevator       *bool   `json:"has_elevator,omitempty"`
	HasParking        *bool   `json:"has_parking,omitempty"`

	MortgageAvailable *bool    `json:"mortgage_available,omitempty"`
	PaymentMethods    []string `json:"payment_methods,omitempty"`
	HaggleAllowed     *bool    `json:"haggle_allowed,omitempty"`

	SchoolNearby       *bool `json:"school_nearby,omitempty"`
	KindergartenNearby *bool `json:"kindergarten_nearby,omitempty"`
	ParkNearby         *bool `json:"park_nearby,omitempty"`
	PetsAllowed        *bool `json:"pets_allowed,omitempty"`
	KidsAllowed        *bool `json:"kids_allowed,omitempty"`
}

// ProfileDTO — транспортное представление профиля покупателя.
type ProfileDTO struct {
	DealType string `json:"deal_type,omitempty"`

	BudgetMin *int64 `json:"budget_min,omitempty"`
	BudgetMax *int64 `json:"budget_max,omitempty"`

	RoomsMin         *int32   `json:"rooms_min,omitempty"`
	RoomsMax         *int32   `json:"rooms_max,omitempty"`
	AreaMin          *float64 `json:"area_min,omitempty"`
	AreaMax          *float64 `json:"area_max,omitempty"`
	MinKitchenArea   *float64 `json:"min_kitchen_area,omitempty"`
	MinCeilingHeight *float64 `json:"min_ceiling_height,omitempty"`
	BalconyRequired  bool     `json:"balcony_required,omitempty"`
	BalconyTypes     []string `json:"balcony_types,omitempty"`
	Bathroom         *string  `json:"bathroom,omitempty"`
	MinBathroomCount *int32   `json:"min_bathroom_count,omitempty"`

	FloorMin      *int32 `json:"floor_min,omitempty"`
	FloorMax      *int32 `json:"floor_max,omitempty"`
	NotFirstFloor bool   `json:"not_first_floor,omitempty"`
	NotLastFloor  bool   `json:"not_last_floor,omitempty"`

	Districts        []string `json:"districts,omitempty"`
	MetroStations    []string `json:"metro_stations,omitempty"`
	MaxMetroDistance *int32   `json:"max_metro_distance,omitempty"`

	BuildingTypes         []string `json:"building_types,omitempty"`
	ExcludedBuildingTypes []string `json:"excluded_building_types,omitempty"`
	Renovations           []string `json:"renovations,omitempty"`
	MaxHandOverYear       *int32   `json:"max_hand_over_year,omitempty"`
	Developers            []string `json:"developers,omitempty"`
	ElevatorRequired      bool     `json:"elevator_required,omitempty"`

	MortgageRequired bool     `json:"mortgage_required,omitempty"`
	PaymentMethods   []string `json:"payment_methods,omitempty"`
	HaggleWanted     bool     `json:"haggle_wanted,omitempty"`

	NeedsSchool       bool `json:"needs_school,omitempty"`
	NeedsKindergarten bool `json:"needs_kindergarten,omitempty"`
	NeedsPark         bool `json:"needs_park,omitempty"`
	NeedsPetsAllowed  bool `json:"needs_pets_allowed,omitempty"`
	NeedsKidsAllowed  bool `json:"needs_kids_allowed,omitempty"`
}

// listingFromDTO конвертирует транспортное объявление в доменное.
// Пустой или невалидный ID заменяется новым: для скоринга одиночного
// объявления идентичность нужна только для детерминизма сортировок.
func listingFromDTO(d ListingDTO) domain.Listing {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		id = uuid.New()
	}

	return domain.Listing{
		ID:       id,
		Title:    d.Title,
		Address:  d.Address,
		Price:    d.Price,
		DealType: domain.DealType(d.DealType),

		Rooms:         d.Rooms,
		TotalArea:     d.TotalArea,
		LivingArea:    d.LivingArea,
		KitchenArea:   d.KitchenArea,
		CeilingHeight: d.CeilingHeight,
		Balcony:       domain.BalconyType(d.Balcony),
		Bathroom:      domain.BathroomType(d.Bathroom),
		BathroomCount: d.BathroomCount,

		District:      d.District,
		MetroStation:  d.MetroStation,
		MetroDistance: d.MetroDistance,
		Floor:         d.Floor,
		FloorsTotal:   d.FloorsTotal,

		BuildingType:      domain.BuildingType(d.BuildingType),
		Renovation:        domain.RenovationType(d.Renovation),
		BuildYear:         d.BuildYear,
		ConstructionState: domain.ConstructionState(d.ConstructionState),
		Complex:           d.Complex,
		Developer:         d.Developer,
		HasElevator:       d.HasElevator,
		HasParking:        d.HasParking,

		MortgageAvailable: d.MortgageAvailable,
		PaymentMethods: lo.Map(d.PaymentMethods, func(m string, _ int) domain.PaymentMethod {
			return domain.PaymentMethod(m)
		}),
		HaggleAllowed: d.HaggleAllowed,

		SchoolNearby:       d.SchoolNearby,
		KindergartenNearby: d.KindergartenNearby,
		ParkNearby:         d.ParkNearby,
		PetsAllowed:        d.PetsAllowed,
		KidsAllowed:        d.KidsAllowed,
	}
}

// profileFromDTO конвертирует транспортный профиль в доменный.
func profileFromDTO(d ProfileDTO) domain.BuyerProfile {
	var bathroom *domain.BathroomType
	if d.Bathroom != nil {
		b := domain.BathroomType(*d.Bathroom)
		bathroom = &b
	}

	return domain.BuyerProfile{
		DealType: domain.DealType(d.DealType),

		BudgetMin: d.BudgetMin,
		BudgetMax: d.BudgetMax,

		RoomsMin:         d.RoomsMin,
		RoomsMax:         d.RoomsMax,
		AreaMin:          d.AreaMin,
		AreaMax:          d.AreaMax,
		MinKitchenArea:   d.MinKitchenArea,
		MinCeilingHeight: d.MinCeilingHeight,
		BalconyRequired:  d.BalconyRequired,
		BalconyTypes: lo.Map(d.BalconyTypes, func(t string, _ int) domain.BalconyType {
			return domain.BalconyType(t)
		}),
		Bathroom:         bathroom,
		MinBathroomCount: d.MinBathroomCount,

		FloorMin:      d.FloorMin,
		FloorMax:      d.FloorMax,
		NotFirstFloor: d.NotFirstFloor,
		NotLastFloor:  d.NotLastFloor,

		Districts:        d.Districts,
		MetroStations:    d.MetroStations,
		MaxMetroDistance: d.MaxMetroDistance,

		BuildingTypes: lo.Map(d.BuildingTypes, func(t string, _ int) domain.BuildingType {
			return domain.BuildingType(t)
		}),
		ExcludedBuildingTypes: lo.Map(d.ExcludedBuildingTypes, func(t string, _ int) domain.BuildingType {
			return domain.BuildingType(t)
		}),
		Renovations: lo.Map(d.Renovations, func(t string, _ int) domain.RenovationType {
			return domain.RenovationType(t)
		}),
		MaxHandOverYear:  d.MaxHandOverYear,
		Developers:       d.Developers,
		ElevatorRequired: d.ElevatorRequired,

		MortgageRequired: d.MortgageRequired,
		PaymentMethods: lo.Map(d.PaymentMethods, func(m string, _ int) domain.PaymentMethod {
			return domain.PaymentMethod(m)
		}),
		HaggleWanted: d.HaggleWanted,

		NeedsSchool:       d.NeedsSchool,
		NeedsKindergarten: d.NeedsKindergarten,
		NeedsPark:         d.NeedsPark,
		NeedsPetsAllowed:  d.NeedsPetsAllowed,
		NeedsKidsAllowed:  d.NeedsKidsAllowed,
	}
}

// presetDTO — транспортное представление пресета весов.
type presetDTO struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Weights     map[string]float64 `json:"weights"`
}

func presetToDTO(p domain.WeightPreset) presetDTO {
	weights := make(map[string]float64, len(domain.Components))
	for _, c := range domain.Components {
		weights[string(c)] = p.Weights.Of(c)
	}
	return presetDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Weights:     weights,
	}
}
