package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/neomorfeo/homebase/internal/domain"
)

// OwnerResolver loads the property that owns an attachable entity.
type OwnerResolver func(ctx context.Context, id string) (domain.Property, error)

// AttachmentRegistry maps attachable kinds to their owner resolvers. Kinds
// without a resolver cannot receive documents.
type AttachmentRegistry struct {
	mu        sync.RWMutex
	resolvers map[domain.EntityKind]OwnerResolver
}

// NewAttachmentRegistry creates an empty registry.
func NewAttachmentRegistry() *AttachmentRegistry {
	return &AttachmentRegistry{resolvers: make(map[domain.EntityKind]OwnerResolver)}
}

// Register binds a resolver to kind, replacing any previous one.
func (r *AttachmentRegistry) Register(kind domain.EntityKind, resolve OwnerResolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvers[kind] = resolve
}

// Resolve returns the owning property of the referenced entity.
func (r *AttachmentRegistry) Resolve(ctx context.Context, ref domain.AttachableRef) (domain.Property, error) {
	r.mu.RLock()
	resolve, ok := r.resolvers[ref.Kind]
	r.mu.RUnlock()
	if !ok {
		return domain.Property{}, domain.NewValidationError("kind", fmt.Sprintf("documents cannot be attached to %s records", ref.Kind))
	}
	return resolve(ctx, ref.ID)
}

// DocumentService records document metadata against properties and listings.
type DocumentService struct {
	docs      domain.DocumentRepository
	registry  *AttachmentRegistry
	publisher domain.EventPublisher
	clock     domain.Clock
}

// NewDocumentService creates a service with the given adapters.
func NewDocumentService(docs domain.DocumentRepository, registry *AttachmentRegistry, publisher domain.EventPublisher, clock domain.Clock) *DocumentService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &DocumentService{
		docs:      docs,
		registry:  registry,
		publisher: publisher,
		clock:     clock,
	}
}

// RegisterWorkflowResolvers binds the property and listing kinds to w.
func RegisterWorkflowResolvers(r *AttachmentRegistry, w *Workflow) {
	r.Register(domain.EntityProperty, w.PropertyOwner)
	r.Register(domain.EntityListing, w.ListingOwner)
}

// Attach records a document uploaded by the owning landlord or the Housing Office.
func (s *DocumentService) Attach(ctx context.Context, actor domain.Actor, target domain.AttachableRef, in domain.DocumentInput) (domain.Document, error) {
	owner, err := s.registry.Resolve(ctx, target)
	if err != nil {
		return domain.Document{}, err
	}
	if !domain.IsOwner(actor, owner) {
		if err := domain.RequireRole(actor, domain.RoleHousingOffice, domain.ActionAttachDocument); err != nil {
			return domain.Document{}, err
		}
	}
	if err := in.Validate(); err != nil {
		return domain.Document{}, err
	}

	now := s.clock.Now()
	doc := domain.NewDocument(generateID(), target, in, actor.ID, now)
	if err := s.docs.Create(ctx, doc); err != nil {
		return domain.Document{}, fmt.Errorf("creating document: %w", err)
	}

	ev := domain.WorkflowEvent{
		Entity:     target.Kind,
		EntityID:   target.ID,
		Event:      domain.EventAttach,
		ActorID:    actor.ID,
		Comments:   string(doc.Type) + ": " + doc.FileName,
		OccurredAt: now,
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "publishing attach event", slog.String("document_id", doc.ID), slog.Any("error", err))
	}
	return doc, nil
}

// List returns the documents attached to target.
func (s *DocumentService) List(ctx context.Context, actor domain.Actor, target domain.AttachableRef) ([]domain.Document, error) {
	owner, err := s.registry.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	if !domain.IsOwner(actor, owner) {
		if err := domain.RequireAnyRole(actor, domain.ActionViewDocuments, domain.RoleHousingOffice, domain.RoleAdmin); err != nil {
			return nil, err
		}
	}
	return s.docs.ListByTarget(ctx, target)
}

// Get returns a single document if the actor may see its target.
func (s *DocumentService) Get(ctx context.Context, actor domain.Actor, id string) (domain.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}
	if _, err := s.List(ctx, actor, doc.Target); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}
