package services

import (
	"strings"

	"github.com/google/uuid"

	"arenacustoms/internal/assets"
	"arenacustoms/internal/domain"
	"arenacustoms/internal/notion"
)

const (
	DefaultName       = "Untitled"
	PublishableStatus = "Active"
)

// accessor reads one value shape out of a property.
type accessor func(notion.Property) (string, bool)

// probe is one entry of an alias table: a property name and a value shape.
type probe struct {
	prop string
	get  accessor
}

func urlValue(p notion.Property) (string, bool) {
	if p.URL == nil {
		return "", false
	}
	return *p.URL, true
}

func hostedFile(p notion.Property) (string, bool) {
	if len(p.Files) == 0 || p.Files[0].File == nil {
		return "", false
	}
	return p.Files[0].File.URL, true
}

func externalFile(p notion.Property) (string, bool) {
	if len(p.Files) == 0 || p.Files[0].External == nil {
		return "", false
	}
	return p.Files[0].External.URL, true
}

func richText(p notion.Property) (string, bool) {
	if len(p.RichText) == 0 {
		return "", false
	}
	return p.RichText[0].PlainText, true
}

func titleText(p notion.Property) (string, bool) {
	if len(p.Title) == 0 {
		return "", false
	}
	return p.Title[0].PlainText, true
}

func selectName(p notion.Property) (string, bool) {
	if p.Select == nil {
		return "", false
	}
	return p.Select.Name, true
}

func statusName(p notion.Property) (string, bool) {
	if p.Status == nil {
		return "", false
	}
	return p.Status.Name, true
}

// Alias tables, probed in order; the first non-empty match wins.
var (
	nameProbes = []probe{
		{"Name", titleText},
		{"Name", richText},
		{"Title", titleText},
	}
	taglineProbes = []probe{
		{"Tagline", richText},
		{"Tagline", titleText},
	}
	imageProbes = []probe{
		{"ImageURL", urlValue},
		{"Image", hostedFile},
		{"Image", externalFile},
		{"Image", urlValue},
		{"Image", richText},
		{"Image", titleText},
		{"Picture", hostedFile},
		{"Picture", externalFile},
	}
	// StripLink is a historical misspelling still present in older rows.
	stripeProbes = []probe{
		{"StripeLink", urlValue},
		{"StripLink", urlValue},
	}
	squareProbes = []probe{
		{"SquareLink", urlValue},
	}
	statusProbes = []probe{
		{"Status", selectName},
		{"Status", statusName},
	}
)

func first(props map[string]notion.Property, probes []probe) (string, bool) {
	for _, pr := range probes {
		p, ok := props[pr.prop]
		if !ok {
			continue
		}
		if v, ok := pr.get(p); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// Normalize maps one raw row to a Product. Missing fields fall back to
// defaults; it never fails.
func Normalize(page notion.Page) domain.Product {
	props := page.Properties
	p := domain.Product{
		ID:   canonicalID(page.ID),
		Name: DefaultName,
		Team: []string{},
	}
	if v, ok := first(props, nameProbes); ok {
		p.Name = v
	}
	if v, ok := first(props, taglineProbes); ok {
		p.Tagline = v
	}
	if pr, ok := props["Price"]; ok && pr.Number != nil && *pr.Number > 0 {
		p.Price = *pr.Number
	}
	img, _ := first(props, imageProbes)
	p.Image = assets.Resolve(img)
	p.StripeLink, _ = first(props, stripeProbes)
	p.SquareLink, _ = first(props, squareProbes)
	if t, ok := props["Team"]; ok {
		for _, o := range t.MultiSelect {
			p.Team = append(p.Team, o.Name)
		}
	}
	if v, ok := first(props, statusProbes); ok {
		p.Status = &v
	}
	return p
}

// canonicalID returns page ids in dashed UUID form when they parse as one.
func canonicalID(id string) string {
	id = strings.TrimSpace(id)
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

// Publishable reports whether a product may be shown. Products without a
// status are publishable.
func Publishable(p domain.Product) bool {
	return p.Status == nil || *p.Status == PublishableStatus
}
