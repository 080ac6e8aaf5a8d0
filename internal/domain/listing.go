package domain

import (
	"github.com/google/uuid"
)

// Listing — доменная сущность объявления о продаже/аренде квартиры.
// Снимок неизменяемый: движок матчинга никогда не мутирует listing.
// Обязательны только ID и Price, остальные поля опциональны.
type Listing struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title,omitempty"`
	Address  string    `json:"address,omitempty"`
	Price    int64     `json:"price"`
	DealType DealType  `json:"deal_type,omitempty"`

	// Планировка
	Rooms         *int32       `json:"rooms,omitempty"`
	TotalArea     *float64     `json:"total_area,omitempty"`
	LivingArea    *float64     `json:"living_area,omitempty"`
	KitchenArea   *float64     `json:"kitchen_area,omitempty"`
	CeilingHeight *float64     `json:"ceiling_height,omitempty"` // метры
	Balcony       BalconyType  `json:"balcony,omitempty"`
	Bathroom      BathroomType `json:"bathroom,omitempty"`
	BathroomCount *int32       `json:"bathroom_count,omitempty"`

	// Расположение
	District      *string `json:"district,omitempty"`
	MetroStation  *string `json:"metro_station,omitempty"`
	MetroDistance *int32  `json:"metro_distance,omitempty"` // минуты пешком
	Floor         *int32  `json:"floor,omitempty"`
	FloorsTotal   *int32  `json:"floors_total,omitempty"`

	// Дом
	BuildingType      BuildingType      `json:"building_type,omitempty"`
	Renovation        RenovationType    `json:"renovation,omitempty"`
	BuildYear         *int32            `json:"build_year,omitempty"`
	ConstructionState ConstructionState `json:"construction_state,omitempty"`
	Complex           *string           `json:"complex,omitempty"` // название ЖК
	Developer         *string           `json:"developer,omitempty"`
	HasElevator       *bool             `json:"has_elevator,omitempty"`
	HasParking        *bool             `json:"has_parking,omitempty"`

	// Условия сделки
	MortgageAvailable *bool           `json:"mortgage_available,omitempty"`
	PaymentMethods    []PaymentMethod `json:"payment_methods,omitempty"`
	HaggleAllowed     *bool           `json:"haggle_allowed,omitempty"`

	// Инфраструктура и правила
	SchoolNearby       *bool `json:"school_nearby,omitempty"`
	KindergartenNearby *bool `json:"kindergarten_nearby,omitempty"`
	ParkNearby         *bool `json:"park_nearby,omitempty"`
	PetsAllowed        *bool `json:"pets_allowed,omitempty"`
	KidsAllowed        *bool `json:"kids_allowed,omitempty"`
}

// DealType — тип сделки.
type DealType string

const (
	DealTypeUnspecified DealType = ""
	DealTypeBuy         DealType = "BUY"  // Покупка
	DealTypeRent        DealType = "RENT" // Аренда
)

func (t DealType) String() string {
	return string(t)
}

// BalconyType — тип балкона.
type BalconyType string

const (
	BalconyUnknown BalconyType = ""
	BalconyNone    BalconyType = "NONE"
	BalconyBalcony BalconyType = "BALCONY"
	BalconyLoggia  BalconyType = "LOGGIA"
	BalconyTerrace BalconyType = "TERRACE"
)

func (t BalconyType) String() string {
	return string(t)
}

// BathroomType — тип санузла.
type BathroomType string

const (
	BathroomUnknown  BathroomType = ""
	BathroomCombined BathroomType = "COMBINED" // Совмещённый
	BathroomSeparate BathroomType = "SEPARATE" // Раздельный
)

func (t BathroomType) String() string {
	return string(t)
}

// BuildingType — тип дома.
type BuildingType string

const (
	BuildingUnknown       BuildingType = ""
	BuildingBrick         BuildingType = "BRICK"          // Кирпичный
	BuildingMonolith      BuildingType = "MONOLITH"       // Монолитный
	BuildingBrickMonolith BuildingType = "BRICK_MONOLITH" // Кирпично-монолитный
	BuildingPanel         BuildingType = "PANEL"          // Панельный
)

func (t BuildingType) String() string {
	return string(t)
}

// RenovationType — тип отделки.
type RenovationType string

const (
	RenovationUnknown     RenovationType = ""
	RenovationTurnkey     RenovationType = "TURNKEY"      // Под ключ / дизайнерская
	RenovationFinished    RenovationType = "FINISHED"     // Чистовая
	RenovationPreFinished RenovationType = "PRE_FINISHED" // Предчистовая (white box)
	RenovationUnfinished  RenovationType = "UNFINISHED"   // Черновая
)

func (t RenovationType) String() string {
	return string(t)
}

// ConstructionState — стадия готовности дома.
type ConstructionState string

const (
	ConstructionUnknown    ConstructionState = ""
	ConstructionReady      ConstructionState = "READY"       // Дом сдан
	ConstructionInProgress ConstructionState = "IN_PROGRESS" // Строится
)

func (s ConstructionState) String() string {
	return string(s)
}

// PaymentMethod — способ оплаты.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "CASH"
	PaymentMortgage    PaymentMethod = "MORTGAGE"
	PaymentInstallment PaymentMethod = "INSTALLMENT" // Рассрочка от застройщика
	PaymentMaternity   PaymentMethod = "MATERNITY"   // Маткапитал
	PaymentMilitary    PaymentMethod = "MILITARY"    // Военная ипотека
)

func (m PaymentMethod) String() string {
	return string(m)
}
