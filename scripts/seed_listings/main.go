// Сидер тестовых объявлений: создаёт таблицу listings и наполняет её
// синтетическими квартирами по нескольким ЖК. Для локальной разработки.
//
// Использование:
//
//	DATABASE_URL=postgres://... go run ./scripts/seed_listings -count 500
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTable = `
CREATE TABLE IF NOT EXISTS listings (
  listing_id UUID PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  price BIGINT NOT NULL,
  deal_type TEXT NOT NULL DEFAULT 'BUY',
  rooms INT,
  total_area DOUBLE PRECISION,
  living_area DOUBLE PRECISION,
  kitchen_area DOUBLE PRECISION,
  ceiling_height DOUBLE PRECISION,
  balcony TEXT NOT NULL DEFAULT '',
  bathroom TEXT NOT NULL DEFAULT '',
  bathroom_count INT,
  district TEXT,
  metro_station TEXT,
  metro_distance INT,
  floor INT,
  floors_total INT,
  building_type TEXT NOT NULL DEFAULT '',
  renovation TEXT NOT NULL DEFAULT '',
  build_year INT,
  construction_state TEXT NOT NULL DEFAULT '',
  complex TEXT,
  developer TEXT,
  has_elevator BOOLEAN,
  has_parking BOOLEAN,
  mortgage_available BOOLEAN,
  payment_methods TEXT[] NOT NULL DEFAULT '{}',
  haggle_allowed BOOLEAN,
  school_nearby BOOLEAN,
  kindergarten_nearby BOOLEAN,
  park_nearby BOOLEAN,
  pets_allowed BOOLEAN,
  kids_allowed BOOLEAN
);
CREATE INDEX IF NOT EXISTS idx_listings_deal_price ON listings(deal_type, price);
CREATE INDEX IF NOT EXISTS idx_listings_district ON listings(district);
`

type complexSpec struct {
	name      string
	district  string
	metro     string
	developer string
	building  string
	state     string
	buildYear int32
}

var complexes = []complexSpec{
	{"ЖК Северный парк", "Приморский", "Беговая", "Северстрой", "MONOLITH", "READY", 2022},
	{"ЖК Речной", "Невский", "Улица Дыбенко", "Речстрой", "PANEL", "READY", 2018},
	{"ЖК Гранит", "Московский", "Московская", "ГранитДевелопмент", "BRICK_MONOLITH", "IN_PROGRESS", 2027},
	{"ЖК Старый город", "Центральный", "Площадь Восстания", "Классика", "BRICK", "READY", 2015},
}

var (
	balconies   = []string{"NONE", "BALCONY", "LOGGIA", "TERRACE"}
	bathrooms   = []string{"COMBINED", "SEPARATE"}
	renovations = []string{"TURNKEY", "FINISHED", "PRE_FINISHED", "UNFINISHED"}
)

func main() {
	var (
		count = flag.Int("count", 500, "сколько объявлений создать")
		seed  = flag.Int64("seed", 42, "seed генератора")
	)
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		color.Red("DATABASE_URL is not set")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		color.Red("failed to connect: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, createTable); err != nil {
		color.Red("failed to create schema: %v", err)
		os.Exit(1)
	}
	color.Green("✓ schema ready")

	rng := rand.New(rand.NewSource(*seed))

	inserted := 0
	for i := 0; i < *count; i++ {
		if err := insertListing(ctx, pool, rng, i); err != nil {
			color.Yellow("skip listing %d: %v", i, err)
			continue
		}
		inserted++
	}

	color.Green("✓ inserted %d listings", inserted)
}

func insertListing(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, i int) error {
	c := complexes[rng.Intn(len(complexes))]

	rooms := int32(rng.Intn(4)) // 0 = студия
	area := 28.0 + float64(rooms)*18 + rng.Float64()*20
	kitchen := 6.0 + rng.Float64()*10
	ceiling := 2.5 + rng.Float64()*0.8
	floorsTotal := int32(9 + rng.Intn(17))
	floor := int32(1 + rng.Intn(int(floorsTotal)))
	pricePerM2 := 150_000 + rng.Int63n(150_000)
	price := int64(area * float64(pricePerM2))

	payments := []string{"CASH", "MORTGAGE"}
	if rng.Intn(2) == 0 {
		payments = append(payments, "INSTALLMENT")
	}

	title := fmt.Sprintf("%d-комн. квартира, %.0f м²", rooms, area)
	if rooms == 0 {
		title = fmt.Sprintf("Студия, %.0f м²", area)
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO listings (
			listing_id, title, address, price, deal_type,
			rooms, total_area, kitchen_area, ceiling_height,
			balcony, bathroom, bathroom_count,
			district, metro_station, metro_distance, floor, floors_total,
			building_type, renovation, build_year, construction_state,
			complex, developer, has_elevator, has_parking,
			mortgage_available, payment_methods, haggle_allowed,
			school_nearby, kindergarten_nearby, park_nearby,
			pets_allowed, kids_allowed
		) VALUES (
			$1, $2, $3, $4, 'BUY',
			$5, $6, $7, $8,
			$9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18, $19, $20,
			$21, $22, $23, $24,
			$25, $26, $27,
			$28, $29, $30,
			$31, $32
		)`,
		uuid.New(), title, fmt.Sprintf("%s, дом %d", c.district, i%40+1), price,
		rooms, area, kitchen, ceiling,
		balconies[rng.Intn(len(balconies))], bathrooms[rng.Intn(len(bathrooms))], int32(1+rng.Intn(2)),
		c.district, c.metro, int32(3+rng.Intn(25)), floor, floorsTotal,
		c.building, renovations[rng.Intn(len(renovations))], c.buildYear, c.state,
		c.name, c.developer, floorsTotal > 5, rng.Intn(2) == 0,
		true, payments, rng.Intn(3) == 0,
		rng.Intn(2) == 0, rng.Intn(2) == 0, rng.Intn(2) == 0,
		rng.Intn(4) != 0, true,
	)
	return err
}
