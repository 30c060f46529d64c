package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/masstransitco/mtc-toys/internal/catalog"
	pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// cartTTL bounds how long an abandoned cart survives.
const cartTTL = 30 * 24 * time.Hour

// Store is the persistence surface the cart service needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

// Service exposes cart operations for a single authenticated shopper.
type Service interface {
	Fetch(ctx context.Context, userID string) (Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (Cart, error)
	Clear(ctx context.Context, userID string) error
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store Store
}

type service struct {
	store Store
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	return &service{store: params.Store}, nil
}

func (s *service) Fetch(ctx context.Context, userID string) (Cart, error) {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	return doc.view(), nil
}

func (s *service) AddItem(ctx context.Context, userID, productID string, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if _, err := catalog.Find(productID); err != nil {
		return Cart{}, err
	}
	doc, err := s.load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	found := false
	for i := range doc.Items {
		if doc.Items[i].ProductID == productID {
			doc.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		doc.Items = append(doc.Items, Item{ProductID: productID, Quantity: quantity})
	}
	return s.save(ctx, userID, doc)
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (Cart, error) {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	idx := -1
	for i := range doc.Items {
		if doc.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	// A non-positive quantity removes the line.
	if quantity <= 0 {
		doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)
	} else {
		doc.Items[idx].Quantity = quantity
	}
	return s.save(ctx, userID, doc)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) (Cart, error) {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	kept := doc.Items[:0]
	for _, item := range doc.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	doc.Items = kept
	return s.save(ctx, userID, doc)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	if err := s.store.Del(ctx, s.store.CartKey(userID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, userID string) (document, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return document{}, nil
		}
		return document{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// A corrupt document is treated as an empty cart rather than an error.
		return document{}, nil
	}
	return doc, nil
}

func (s *service) save(ctx context.Context, userID string, doc document) (Cart, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(userID), string(payload), cartTTL); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return doc.view(), nil
}
