package domain

// BuyerProfile — структурированный профиль предпочтений покупателя.
// Все поля опциональны: незаполненное поле означает "критерий не задан"
// и при скоринге даёт нейтральную оценку, а не ошибку.
type BuyerProfile struct {
	DealType DealType `json:"deal_type,omitempty"`

	// Бюджет
	BudgetMin *int64 `json:"budget_min,omitempty"`
	BudgetMax *int64 `json:"budget_max,omitempty"`

	// Планировка
	RoomsMin         *int32        `json:"rooms_min,omitempty"`
	RoomsMax         *int32        `json:"rooms_max,omitempty"`
	AreaMin          *float64      `json:"area_min,omitempty"`
	AreaMax          *float64      `json:"area_max,omitempty"`
	MinKitchenArea   *float64      `json:"min_kitchen_area,omitempty"`
	MinCeilingHeight *float64      `json:"min_ceiling_height,omitempty"` // метры
	BalconyRequired  bool          `json:"balcony_required,omitempty"`
	BalconyTypes     []BalconyType `json:"balcony_types,omitempty"` // предпочтительные типы, пусто = любой
	Bathroom         *BathroomType `json:"bathroom,omitempty"`
	MinBathroomCount *int32        `json:"min_bathroom_count,omitempty"`

	// Этаж
	FloorMin      *int32 `json:"floor_min,omitempty"`
	FloorMax      *int32 `json:"floor_max,omitempty"`
	NotFirstFloor bool   `json:"not_first_floor,omitempty"` // жёсткое ограничение
	NotLastFloor  bool   `json:"not_last_floor,omitempty"`  // жёсткое ограничение

	// Расположение
	Districts        []string `json:"districts,omitempty"`
	MetroStations    []string `json:"metro_stations,omitempty"`
	MaxMetroDistance *int32   `json:"max_metro_distance,omitempty"` // минуты пешком

	// Дом
	BuildingTypes         []BuildingType   `json:"building_types,omitempty"` // предпочтительные
	ExcludedBuildingTypes []BuildingType   `json:"excluded_building_types,omitempty"`
	Renovations           []RenovationType `json:"renovations,omitempty"` // предпочтительные
	MaxHandOverYear       *int32           `json:"max_hand_over_year,omitempty"` // дом должен быть сдан не позже
	Developers            []string         `json:"developers,omitempty"`
	ElevatorRequired      bool             `json:"elevator_required,omitempty"`

	// Условия сделки
	MortgageRequired bool            `json:"mortgage_required,omitempty"`
	PaymentMethods   []PaymentMethod `json:"payment_methods,omitempty"`
	HaggleWanted     bool            `json:"haggle_wanted,omitempty"`

	// Инфраструктура и правила
	NeedsSchool       bool `json:"needs_school,omitempty"`
	NeedsKindergarten bool `json:"needs_kindergarten,omitempty"`
	NeedsPark         bool `json:"needs_park,omitempty"`
	NeedsPetsAllowed  bool `json:"needs_pets_allowed,omitempty"`
	NeedsKidsAllowed  bool `json:"needs_kids_allowed,omitempty"`

	// Weights — кастомные веса компонентов. nil = веса по умолчанию.
	Weights *ComponentWeights `json:"weights,omitempty"`
}

// HasBudget сообщает, задан ли хотя бы один край бюджета.
func (p BuyerProfile) HasBudget() bool {
	return p.BudgetMin != nil || p.BudgetMax != nil
}

// HasRoomsRange сообщает, задан ли диапазон комнат.
func (p BuyerProfile) HasRoomsRange() bool {
	return p.RoomsMin != nil || p.RoomsMax != nil
}

// HasAreaRange сообщает, задан ли диапазон площади.
func (p BuyerProfile) HasAreaRange() bool {
	return p.AreaMin != nil || p.AreaMax != nil
}

// HasFloorPreference сообщает, заданы ли требования к этажу.
func (p BuyerProfile) HasFloorPreference() bool {
	return p.FloorMin != nil || p.FloorMax != nil || p.NotFirstFloor || p.NotLastFloor
}

// HasLocationPreference сообщает, заданы ли предпочтения по расположению.
func (p BuyerProfile) HasLocationPreference() bool {
	return len(p.Districts) > 0 || len(p.MetroStations) > 0
}
