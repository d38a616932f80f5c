// Package store keeps client records and applies the small set of edits the
// advisor can make between reports.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/normalize"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("not found")

// Repository is the persistence contract the report and HTTP layers rely on.
type Repository interface {
	// Client returns a snapshot of the client; later writes do not affect it.
	Client(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	// UpdatePriority sets the priority of a business, key person,
	// shareholder or insurable purpose and returns the owning client id.
	UpdatePriority(ctx context.Context, id uuid.UUID, priority float64) (uuid.UUID, error)
	// UpdateAllocation sets the share of an asset designated to a beneficiary.
	UpdateAllocation(ctx context.Context, assetID, beneficiaryID uuid.UUID, percent float64) error
}

// Memory is an in-process Repository. Writes are last-write-wins.
type Memory struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*domain.Client
	logger  *zap.Logger
}

// NewMemory creates an empty store.
func NewMemory(logger *zap.Logger) *Memory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memory{
		clients: make(map[uuid.UUID]*domain.Client),
		logger:  logger,
	}
}

// Put stores a copy of the client, replacing any client with the same id.
func (m *Memory) Put(ctx context.Context, c *domain.Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil || c.ID == uuid.Nil {
		return fmt.Errorf("store client: %w", &normalize.InvalidInputError{Field: "id", Reason: "is required"})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c.ID] = c.Clone()
	m.logger.Debug("stored client",
		zap.String("op", "store.Put"),
		zap.String("client", c.ID.String()),
	)
	return nil
}

// IDs lists the stored client ids.
func (m *Memory) IDs() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.clients))
	for id := range m.clients {
		ids = append(ids, id)
	}
	return ids
}

// Client implements Repository.
func (m *Memory) Client(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	return c.Clone(), nil
}

func checkPercent(field string, value float64) error {
	if math.IsNaN(value) || value < 0 || value > 100 {
		return &normalize.InvalidInputError{Field: field, Value: fmt.Sprint(value), Reason: "must be between 0 and 100"}
	}
	return nil
}

// UpdatePriority implements Repository.
func (m *Memory) UpdatePriority(ctx context.Context, id uuid.UUID, priority float64) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	if err := checkPercent("priority", priority); err != nil {
		return uuid.Nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for clientID, c := range m.clients {
		if target := priorityOf(c, id); target != nil {
			*target = priority
			m.logger.Debug(fmt.Sprintf("priority of %s set to %.2f", id, priority),
				zap.String("op", "store.UpdatePriority"),
				zap.String("client", clientID.String()),
			)
			return clientID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("stakeholder %s: %w", id, ErrNotFound)
}

// priorityOf returns a pointer to the priority field of the record with
// the given id, or nil.
func priorityOf(c *domain.Client, id uuid.UUID) *float64 {
	for i := range c.Businesses {
		b := &c.Businesses[i]
		if b.ID == id {
			return &b.Priority
		}
		for j := range b.KeyPeople {
			if b.KeyPeople[j].ID == id {
				return &b.KeyPeople[j].Priority
			}
		}
		for j := range b.Shareholders {
			if b.Shareholders[j].ID == id {
				return &b.Shareholders[j].Priority
			}
		}
	}
	for i := range c.Purposes {
		if c.Purposes[i].ID == id {
			return &c.Purposes[i].Priority
		}
	}
	return nil
}

// UpdateAllocation implements Repository. A designation for a beneficiary
// the asset does not list yet is added.
func (m *Memory) UpdateAllocation(ctx context.Context, assetID, beneficiaryID uuid.UUID, percent float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkPercent("allocation", percent); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		for i := range c.Assets {
			a := &c.Assets[i]
			if a.ID != assetID {
				continue
			}
			if _, ok := c.BeneficiaryIndex()[beneficiaryID]; !ok {
				return fmt.Errorf("beneficiary %s: %w", beneficiaryID, ErrNotFound)
			}
			for j := range a.Beneficiaries {
				if a.Beneficiaries[j].BeneficiaryID == beneficiaryID {
					a.Beneficiaries[j].AllocationPercent = percent
					return nil
				}
			}
			a.Beneficiaries = append(a.Beneficiaries, domain.AssetBeneficiary{
				BeneficiaryID:     beneficiaryID,
				AllocationPercent: percent,
			})
			return nil
		}
	}
	return fmt.Errorf("asset %s: %w", assetID, ErrNotFound)
}
