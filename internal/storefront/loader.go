// Package storefront loads the product list for presentation, degrading to
// the bundled snapshot when the live catalog endpoint is unusable.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"arenacustoms/internal/domain"
	applog "arenacustoms/internal/log"
)

type State int

const (
	Loading State = iota
	Ready
	ReadyFallback
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case ReadyFallback:
		return "ready(fallback)"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Loader struct {
	CatalogURL  string
	SnapshotURL string
	Timeout     time.Duration
}

func NewLoader(catalogURL, snapshotURL string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Loader{CatalogURL: catalogURL, SnapshotURL: snapshotURL, Timeout: timeout}
}

// View is one load lifecycle. It starts in Loading and reaches exactly one
// terminal state; it never stays in Loading once the load goroutine returns.
type View struct {
	mu       sync.RWMutex
	state    State
	products []domain.Product
	err      error // last swallowed error, for logging only
	done     chan struct{}
}

func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Products is empty while Loading.
func (v *View) Products() []domain.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.products
}

// Source reports where the products came from.
func (v *View) Source() domain.Source {
	if v.State() == ReadyFallback {
		return domain.SourceFallback
	}
	return domain.SourceLive
}

func (v *View) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// Done is closed once the view is terminal.
func (v *View) Done() <-chan struct{} { return v.done }

func (v *View) Wait() *View {
	<-v.done
	return v
}

func (v *View) finish(s State, products []domain.Product, err error) {
	if products == nil {
		products = []domain.Product{}
	}
	v.mu.Lock()
	v.state, v.products, v.err = s, products, err
	v.mu.Unlock()
	close(v.done)
}

// Start begins loading in the background and returns immediately.
func (l *Loader) Start(ctx context.Context) *View {
	v := &View{state: Loading, products: []domain.Product{}, done: make(chan struct{})}
	go l.run(ctx, v)
	return v
}

// Load blocks until the view is terminal.
func (l *Loader) Load(ctx context.Context) *View {
	return l.Start(ctx).Wait()
}

func (l *Loader) run(ctx context.Context, v *View) {
	products, err := l.fetch(ctx, l.CatalogURL)
	if err == nil && len(products) > 0 {
		v.finish(Ready, products, nil)
		return
	}
	if err == nil {
		err = errors.New("live catalog returned no products")
	}
	applog.Warn(nil, "storefront.fallback", map[string]any{"reason": err.Error()})

	// exactly one fallback attempt, only after the live outcome is known
	snap, serr := l.fetch(ctx, l.SnapshotURL)
	if serr != nil {
		applog.Error(nil, "storefront.snapshot.fail", serr, nil)
		v.finish(Ready, nil, errors.Join(err, serr))
		return
	}
	v.finish(ReadyFallback, snap, err)
}

type productsBody struct {
	Products []domain.Product `json:"products"`
}

func (l *Loader) fetch(ctx context.Context, url string) (products []domain.Product, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch %s: %v", url, r)
		}
	}()
	var body productsBody
	code, _, errs := fiber.Get(url).
		Timeout(l.Timeout).
		Set(fiber.HeaderCacheControl, "no-store").
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		Struct(&body)
	if code < 200 || code > 299 {
		if len(errs) > 0 && code == 0 {
			return nil, fmt.Errorf("fetch %s: %w", url, errors.Join(errs...))
		}
		return nil, fmt.Errorf("fetch %s: status %d", url, code)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("fetch %s: %w", url, errors.Join(errs...))
	}
	return body.Products, nil
}
