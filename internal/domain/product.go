package domain

// Product is the canonical catalog entry the storefront renders.
type Product struct {
	ID         string   `json:"id" csv:"id"`
	Name       string   `json:"name" csv:"name"`
	Price      float64  `json:"price" csv:"price"`
	Tagline    string   `json:"tagline" csv:"tagline"`
	Image      string   `json:"image" csv:"image"`
	StripeLink string   `json:"stripeLink" csv:"stripe_link"` // primary processor
	SquareLink string   `json:"squareLink" csv:"square_link"` // secondary processor
	Team       []string `json:"team" csv:"-"`
	Status     *string  `json:"status" csv:"-"` // nil means publishable
}

// PurchaseLinks returns the named checkout links; an empty value means unavailable.
func (p Product) PurchaseLinks() map[string]string {
	return map[string]string{
		"primary":   p.StripeLink,
		"secondary": p.SquareLink,
	}
}

// HasTag reports whether tag is one of the product's team labels.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Team {
		if t == tag {
			return true
		}
	}
	return false
}

type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// CatalogSnapshot is one retrieval's ordered product list.
type CatalogSnapshot struct {
	Products []Product `json:"products"`
	Source   Source    `json:"-"`
}
