package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Category    string
	ImageURL    string
	Sizes       []string
	Featured    bool
}

var shoeSizes = []string{"40", "41", "42", "43", "44", "45"}

// Fixed ids keep the seed idempotent via ON CONFLICT and give the demo
// frontend stable URLs.
var catalog = []productSeed{
	{
		ID:          "7b0e1c9a-1111-4a62-9f0e-9c1a5d3f0001",
		Name:        "Heritage Chronograph",
		Description: "Hand-finished chronograph with a sapphire caseback and alligator strap.",
		PriceCents:  1249900,
		Category:    "watches",
		ImageURL:    "/images/heritage-chronograph.jpg",
		Sizes:       []string{"One Size"},
		Featured:    true,
	},
	{
		ID:          "7b0e1c9a-1111-4a62-9f0e-9c1a5d3f0002",
		Name:        "Meridian Automatic",
		Description: "38mm automatic with a brushed steel bracelet and date window.",
		PriceCents:  689900,
		Category:    "watches",
		ImageURL:    "/images/meridian-automatic.jpg",
		Sizes:       []string{"One Size"},
	},
	{
		ID:          "7b0e1c9a-1111-4a62-9f0e-9c1a5d3f0003",
		Name:        "Regatta Diver",
		Description: "300m dive watch with a unidirectional ceramic bezel.",
		PriceCents:  829900,
		Category:    "watches",
		ImageURL:    "/images/regatta-diver.jpg",
	},
	{
		ID:          "7b0e1c9a-2222-4a62-9f0e-9c1a5d3f0001",
		Name:        "Mayfair Oxford",
		Description: "Full-grain calfskin oxford, Goodyear welted.",
		PriceCents:  74900,
		Category:    "shoes",
		ImageURL:    "/images/mayfair-oxford.jpg",
		Sizes:       shoeSizes,
		Featured:    true,
	},
	{
		ID:          "7b0e1c9a-2222-4a62-9f0e-9c1a5d3f0002",
		Name:        "Soho Derby",
		Description: "Suede derby with a flexible leather sole.",
		PriceCents:  62900,
		Category:    "shoes",
		ImageURL:    "/images/soho-derby.jpg",
		Sizes:       shoeSizes,
	},
	{
		ID:          "7b0e1c9a-2222-4a62-9f0e-9c1a5d3f0003",
		Name:        "Kensington Monk Strap",
		Description: "Double monk strap in burnished espresso leather.",
		PriceCents:  79900,
		Category:    "shoes",
		ImageURL:    "/images/kensington-monk.jpg",
		Sizes:       shoeSizes,
	},
	{
		ID:          "7b0e1c9a-2222-4a62-9f0e-9c1a5d3f0004",
		Name:        "Camden Chelsea Boot",
		Description: "Pull-on chelsea boot with elastic side gores.",
		PriceCents:  84900,
		Category:    "shoes",
		ImageURL:    "/images/camden-chelsea.jpg",
		Sizes:       shoeSizes,
	},
}

// Apply inserts demo catalog data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range catalog {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	sizes, err := json.Marshal(p.Sizes)
	if err != nil {
		return err
	}
	if p.Sizes == nil {
		sizes = []byte("[]")
	}

	const q = `
INSERT INTO products (id, name, description, price_cents, currency, category, image_url, sizes, featured)
VALUES ($1::uuid, $2, NULLIF($3, ''), $4, 'usd', $5, NULLIF($6, ''), $7::jsonb, $8)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category = EXCLUDED.category,
    image_url = EXCLUDED.image_url,
    sizes = EXCLUDED.sizes,
    featured = EXCLUDED.featured
`
	_, err = pool.Exec(ctx, q, p.ID, p.Name, p.Description, p.PriceCents, p.Category, p.ImageURL, sizes, p.Featured)
	return err
}
