package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"arenacustoms/internal/config"
	"arenacustoms/internal/domain"
	applog "arenacustoms/internal/log"
	"arenacustoms/internal/notion"
	"arenacustoms/internal/services"
)

type catalogFetcher interface {
	FetchCatalog(ctx context.Context) (domain.CatalogSnapshot, error)
}

type handler struct {
	store   notion.Config
	catalog catalogFetcher
}

var jsonHeaders = map[string]string{
	"Content-Type":  "application/json",
	"Cache-Control": "no-store",
}

func respond(status int, body any) (events.APIGatewayProxyResponse, error) {
	b, err := json.Marshal(body)
	if err != nil {
		applog.Error(nil, "lambda.marshal.fail", err, nil)
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    jsonHeaders,
			Body:       `{"error":"Failed to format response"}`,
		}, nil
	}
	return events.APIGatewayProxyResponse{StatusCode: status, Headers: jsonHeaders, Body: string(b)}, nil
}

// handle routes by path suffix so it works behind any API Gateway stage
// or function prefix.
func (h *handler) handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	path := strings.TrimRight(req.Path, "/")
	switch {
	case req.HTTPMethod != "" && req.HTTPMethod != http.MethodGet:
		return respond(http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	case strings.HasSuffix(path, "/diag"):
		return respond(http.StatusOK, map[string]bool{
			"hasToken": h.store.Token != "",
			"hasDb":    h.store.DatabaseID != "",
		})
	case strings.HasSuffix(path, "/products"):
		return h.products(ctx)
	}
	return respond(http.StatusNotFound, map[string]string{"error": "not found"})
}

func (h *handler) products(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	snap, err := h.catalog.FetchCatalog(ctx)
	if err != nil {
		if services.IsConfiguration(err) {
			return respond(http.StatusNotFound, map[string]any{"products": []domain.Product{}, "reason": "store env missing"})
		}
		return respond(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return respond(http.StatusOK, map[string]any{"products": snap.Products})
}

func main() {
	applog.SetService("lambda")
	store := config.StoreFromEnv()
	h := &handler{
		store:   store,
		catalog: services.NewCatalogService(store, notion.NewClient(store, nil), nil),
	}
	lambda.Start(h.handle)
}
