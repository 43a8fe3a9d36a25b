// Package snapshot reads and writes the bundled fallback catalog document.
package snapshot

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"

	"arenacustoms/internal/domain"
)

// Document is the on-disk shape served at /products.json.
type Document struct {
	Version     string           `json:"version,omitempty"`
	GeneratedAt *time.Time       `json:"generatedAt,omitempty"`
	Products    []domain.Product `json:"products"`
}

// Fingerprint is a stable content hash of the product list.
func Fingerprint(products []domain.Product) (string, error) {
	if products == nil {
		products = []domain.Product{}
	}
	b, err := json.Marshal(products)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:12]), nil
}

func New(products []domain.Product, now time.Time) (Document, error) {
	if products == nil {
		products = []domain.Product{}
	}
	v, err := Fingerprint(products)
	if err != nil {
		return Document{}, err
	}
	at := now.UTC()
	return Document{Version: v, GeneratedAt: &at, Products: products}, nil
}

func Decode(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if d.Products == nil {
		d.Products = []domain.Product{}
	}
	return d, nil
}

func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile replaces path atomically so a running server never serves a
// half-written snapshot.
func WriteFile(path string, d Document) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".products-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(b, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
