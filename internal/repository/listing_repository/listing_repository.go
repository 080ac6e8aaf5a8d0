package listing_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dream_match/internal/domain"
	"dream_match/internal/repository"
)

// ListingRepository — загрузка кандидатов из Postgres. Репозиторий
// применяет только жёсткие SQL-фильтры (тип сделки, бюджет, комнаты,
// районы); скоринг и выбор сценария — в памяти, выше по стеку.
type ListingRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewListingRepository(db *pgxpool.Pool, log *slog.Logger) *ListingRepository {
	return &ListingRepository{db: db, log: log}
}

// CandidateFilter — жёсткие условия выборки кандидатов.
type CandidateFilter struct {
	DealType  domain.DealType
	PriceMin  *int64
	PriceMax  *int64
	RoomsMin  *int32
	RoomsMax  *int32
	Districts []string
	Limit     int
}

// CandidateFilterFromProfile строит SQL-фильтр из профиля покупателя.
// В фильтр попадают только границы, заданные явно; бюджет расширяется
// на 25% сверху, чтобы движок мог показать варианты с умеренным
// перерасходом вместо пустой выдачи.
func CandidateFilterFromProfile(p domain.BuyerProfile, limit int) CandidateFilter {
	f := CandidateFilter{
		DealType: p.DealType,
		PriceMin: p.BudgetMin,
		RoomsMin: p.RoomsMin,
		RoomsMax: p.RoomsMax,
		Limit:    limit,
	}
	if p.BudgetMax != nil {
		maxWithOvershoot := int64(float64(*p.BudgetMax) * 1.25)
		f.PriceMax = &maxWithOvershoot
	}
	return f
}

const listingColumns = `
	listing_id, title, address, price, deal_type,
	rooms, total_area, living_area, kitchen_area, ceiling_height,
	balcony, bathroom, bathroom_count,
	district, metro_station, metro_distance, floor, floors_total,
	building_type, renovation, build_year, construction_state,
	complex, developer, has_elevator, has_parking,
	mortgage_available, payment_methods, haggle_allowed,
	school_nearby, kindergarten_nearby, park_nearby,
	pets_allowed, kids_allowed`

// ListCandidates возвращает кандидатов по жёсткому фильтру.
func (r *ListingRepository) ListCandidates(ctx context.Context, filter CandidateFilter) ([]domain.Listing, error) {
	const op = "ListingRepository.ListCandidates"

	where := []string{"1=1"}
	params := []interface{}{}
	paramCount := 1

	if filter.DealType != domain.DealTypeUnspecified {
		where = append(where, fmt.Sprintf("deal_type = $%d", paramCount))
		params = append(params, filter.DealType.String())
		paramCount++
	}
	if filter.PriceMin != nil {
		where = append(where, fmt.Sprintf("price >= $%d", paramCount))
		params = append(params, *filter.PriceMin)
		paramCount++
	}
	if filter.PriceMax != nil {
		where = append(where, fmt.Sprintf("price <= $%d", paramCount))
		params = append(params, *filter.PriceMax)
		paramCount++
	}
	if filter.RoomsMin != nil {
		where = append(where, fmt.Sprintf("(rooms IS NULL OR rooms >= $%d)", paramCount))
		params = append(params, *filter.RoomsMin)
		paramCount++
	}
	if filter.RoomsMax != nil {
		where = append(where, fmt.Sprintf("(rooms IS NULL OR rooms <= $%d)", paramCount))
		params = append(params, *filter.RoomsMax)
		paramCount++
	}
	if len(filter.Districts) > 0 {
		where = append(where, fmt.Sprintf("district = ANY($%d)", paramCount))
		params = append(params, filter.Districts)
		paramCount++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 2000
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE %s
		ORDER BY price ASC, listing_id ASC
		LIMIT %d
	`, listingColumns, strings.Join(where, " AND "), limit)

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return listings, nil
}

// GetByID — получает объявление по ID.
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	const op = "ListingRepository.GetByID"

	query := fmt.Sprintf(`SELECT %s FROM listings WHERE listing_id = $1`, listingColumns)

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
		}
		return domain.Listing{}, fmt.Errorf("%s: %w", op, repository.ErrListingNotFound)
	}

	l, err := scanListing(rows)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// scanListing читает одну строку выборки в доменную сущность.
func scanListing(row pgx.Row) (domain.Listing, error) {
	var l domain.Listing
	var dealType, balcony, bathroom, buildingType, renovation, constructionState string
	var paymentMethods []string

	err := row.Scan(
		&l.ID, &l.Title, &l.Address, &l.Price, &dealType,
		&l.Rooms, &l.TotalArea, &l.LivingArea, &l.KitchenArea, &l.CeilingHeight,
		&balcony, &bathroom, &l.BathroomCount,
		&l.District, &l.MetroStation, &l.MetroDistance, &l.Floor, &l.FloorsTotal,
		&buildingType, &renovation, &l.BuildYear, &constructionState,
		&l.Complex, &l.Developer, &l.HasElevator, &l.HasParking,
		&l.MortgageAvailable, &paymentMethods, &l.HaggleAllowed,
		&l.SchoolNearby, &l.KindergartenNearby, &l.ParkNearby,
		&l.PetsAllowed, &l.KidsAllowed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Listing{}, repository.ErrListingNotFound
		}
		return domain.Listing{}, err
	}

	l.DealType = domain.DealType(dealType)
	l.Balcony = domain.BalconyType(balcony)
	l.Bathroom = domain.BathroomType(bathroom)
	l.BuildingType = domain.BuildingType(buildingType)
	l.Renovation = domain.RenovationType(renovation)
	l.ConstructionState = domain.ConstructionState(constructionState)

	for _, m := range paymentMethods {
		l.PaymentMethods = append(l.PaymentMethods, domain.PaymentMethod(m))
	}

	return l, nil
}
