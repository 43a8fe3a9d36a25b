package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenacustoms/internal/domain"
)

func TestWriteExport_CSV(t *testing.T) {
	active := "Active"
	products := []domain.Product{
		{ID: "a", Name: "Home, Jersey", Price: 45, Image: "/images/a.jpg", Team: []string{"U12", "U14"}, Status: &active},
		{ID: "b", Name: "Shorts", Price: 20, Image: "/images/placeholder.jpg", Team: []string{}},
	}
	var buf bytes.Buffer
	require.NoError(t, writeExport(&buf, "csv", products))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,price,tagline,image,stripe_link,square_link,team,status", lines[0])
	assert.Equal(t, `a,"Home, Jersey",45,,/images/a.jpg,,,U12;U14,Active`, lines[1])
	assert.Equal(t, "b,Shorts,20,,/images/placeholder.jpg,,,,", lines[2])
}

func TestWriteExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeExport(&buf, "json", []domain.Product{{ID: "a", Team: []string{}}}))
	assert.Contains(t, buf.String(), `"products"`)
	assert.Contains(t, buf.String(), `"id": "a"`)
}

func TestWriteExport_UnknownFormat(t *testing.T) {
	assert.Error(t, writeExport(&bytes.Buffer{}, "xml", nil))
}

func TestProductTable_ShowsUnavailableLinks(t *testing.T) {
	out := productTable([]domain.Product{{ID: "a", Name: "Home Jersey", Price: 45, StripeLink: "https://buy.stripe.com/x"}})
	assert.Contains(t, out, "Home Jersey")
	assert.Contains(t, out, "$45")
	assert.Contains(t, out, "https://buy.stripe.com/x")
	assert.Contains(t, out, "N/A")
}
