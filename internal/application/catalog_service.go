package application

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"gomarket/internal/domain/entity"
	repo "gomarket/internal/domain/repository"
	"gomarket/pkg/events"
	"gomarket/pkg/helpers"
)

const productsCacheKey = "products:all"

// CatalogService serves the product catalog: listing (redis-cached),
// creation, search (elasticsearch) and the top-sellers board maintained by
// the order event worker.
type CatalogService struct {
	Products repo.ProductRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	ES       *elasticsearch.Client
	ESIndex  string
	CacheTTL time.Duration
}

func NewCatalogService(products repo.ProductRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{Products: products, Redis: rdb, Logger: logger, ES: es, ESIndex: esIndex, CacheTTL: cacheTTL}
}

// List returns all products, serving from the redis cache when warm. Cache
// failures fall through to the store.
func (s *CatalogService) List(ctx context.Context) ([]entity.Product, error) {
	if s.Redis != nil {
		var cached []entity.Product
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, productsCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	products, err := s.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, productsCacheKey, products, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("product cache write failed")
		}
	}
	return products, nil
}

func (s *CatalogService) Create(ctx context.Context, name string, price, quantity int64) (*entity.Product, error) {
	p := &entity.Product{Name: name, Price: price, Quantity: quantity}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.InvalidateListCache(ctx)
	s.indexProduct(ctx, p)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"product_id": p.ID, "name": p.Name}).Info("product created")
	}
	return p, nil
}

// InvalidateListCache drops the cached product list. Called after any write
// that changes product rows, including order placement.
func (s *CatalogService) InvalidateListCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, productsCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("product cache invalidation failed")
	}
}

func (s *CatalogService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":    p.ID,
		"name":  p.Name,
		"price": p.Price,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

// Search performs a match query on product names. Without a configured
// Elasticsearch client it returns an empty result rather than an error.
func (s *CatalogService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"name": q,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// TopProduct is a top-sellers board entry.
type TopProduct struct {
	Product string `json:"product"`
	Sold    int64  `json:"sold"`
}

// TopSellers reads the sales zset kept by the worker and joins product names
// from the store.
func (s *CatalogService) TopSellers(ctx context.Context, n int) ([]TopProduct, error) {
	if s.Redis == nil {
		return []TopProduct{}, nil
	}
	if n <= 0 || n > 50 {
		n = 10
	}
	members, err := s.Redis.ZRevRangeWithScores(ctx, events.TopSellersKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]TopProduct, 0, len(members))
	for _, m := range members {
		idStr, _ := m.Member.(string)
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		p, err := s.Products.GetByID(ctx, id)
		if err != nil || p == nil {
			continue
		}
		out = append(out, TopProduct{Product: p.Name, Sold: int64(m.Score)})
	}
	return out, nil
}
