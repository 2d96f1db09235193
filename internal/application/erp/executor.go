package erp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-integration/internal/domain"
	"github.com/jhoicas/erp-integration/internal/domain/entity"
	domainerp "github.com/jhoicas/erp-integration/internal/domain/erp"
	"github.com/jhoicas/erp-integration/internal/domain/repository"
)

type actionHandler func(ctx context.Context, rec domainerp.ProductRecord) (domainerp.Outcome, error)

// Executor aplica al catálogo la transición de un registro ya validado.
// Cada registro hace exactamente una consulta por SKU, a lo sumo un Save de producto
// y a lo sumo un SaveStock. No hay transacción entre ambos guardados.
type Executor struct {
	catalog  repository.CatalogGateway
	handlers map[domainerp.Action]actionHandler
	now      func() time.Time
}

// NewExecutor construye el ejecutor sobre el gateway del catálogo.
func NewExecutor(catalog repository.CatalogGateway) *Executor {
	e := &Executor{catalog: catalog, now: time.Now}
	e.handlers = map[domainerp.Action]actionHandler{
		domainerp.ActionNew:     e.create,
		domainerp.ActionUpdate:  e.update,
		domainerp.ActionEnable:  e.enable,
		domainerp.ActionDisable: e.disable,
	}
	return e
}

// Execute despacha el registro según su acción. Los fallos de negocio vuelven como Outcome Failed;
// un error solo se devuelve ante fallos inesperados del gateway en create/update.
func (e *Executor) Execute(ctx context.Context, rec domainerp.ProductRecord) (domainerp.Outcome, error) {
	action, ok := domainerp.ParseAction(rec.Action)
	if !ok {
		return domainerp.Outcome{}, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, rec.Action)
	}
	handler, ok := e.handlers[action]
	if !ok {
		return domainerp.Outcome{}, fmt.Errorf("%w: no handler for action %q", domain.ErrInvalidInput, action)
	}
	out, err := handler(ctx, rec)
	if err != nil {
		return domainerp.Outcome{}, err
	}
	out.Position = rec.Position
	return out, nil
}

// create da de alta el producto y su stock por origen. Falla si el SKU ya existe.
func (e *Executor) create(ctx context.Context, rec domainerp.ProductRecord) (domainerp.Outcome, error) {
	sku := rec.SKU
	_, err := e.catalog.GetBySKU(ctx, sku)
	switch {
	case err == nil:
		return failed(rec, domainerp.ActionNew, domain.ErrConflict.Error()+"."), nil
	case !errors.Is(err, domain.ErrNotFound):
		return domainerp.Outcome{}, fmt.Errorf("lookup product: %w", err)
	}

	now := e.now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            sku,
		Name:           valueOr(rec.Name, "New Product"),
		Price:          valueOr(rec.Price, decimal.Zero),
		TypeID:         valueOr(rec.TypeID, entity.DefaultTypeID),
		AttributeSetID: valueOr(rec.AttributeSetID, entity.DefaultAttributeSetID),
		Status:         entity.ProductStatus(valueOr(rec.Status, int(entity.ProductStatusEnabled))),
		Visibility:     valueOr(rec.Visibility, entity.DefaultVisibility),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := e.catalog.Save(ctx, product); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return failed(rec, domainerp.ActionNew, domain.ErrConflict.Error()+"."), nil
		}
		return domainerp.Outcome{}, fmt.Errorf("save product: %w", err)
	}
	if items := e.sourceItems(rec, now); len(items) > 0 {
		if err := e.catalog.SaveStock(ctx, items); err != nil {
			return domainerp.Outcome{}, fmt.Errorf("save stock: %w", err)
		}
	}
	return domainerp.Created(sku), nil
}

// update cambia precio y stock. Las cantidades no se comparan con el estado actual:
// cualquier origen con cantidad cuenta como cambio.
func (e *Executor) update(ctx context.Context, rec domainerp.ProductRecord) (domainerp.Outcome, error) {
	sku := rec.SKU
	product, err := e.catalog.GetBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return failed(rec, domainerp.ActionUpdate, err.Error()+"."), nil
		}
		return domainerp.Outcome{}, fmt.Errorf("lookup product: %w", err)
	}

	changed := false
	if rec.Price != nil && !product.Price.Equal(*rec.Price) {
		product.Price = *rec.Price
		changed = true
	}
	now := e.now()
	items := e.sourceItems(rec, now)
	if len(items) > 0 {
		changed = true
	}
	if !changed {
		return failed(rec, domainerp.ActionUpdate, domain.ErrNoChange.Error()+"."), nil
	}

	product.UpdatedAt = now
	if err := e.catalog.Save(ctx, product); err != nil {
		return domainerp.Outcome{}, fmt.Errorf("save product: %w", err)
	}
	if len(items) > 0 {
		if err := e.catalog.SaveStock(ctx, items); err != nil {
			return domainerp.Outcome{}, fmt.Errorf("save stock: %w", err)
		}
	}
	return domainerp.Updated(sku), nil
}

func (e *Executor) enable(ctx context.Context, rec domainerp.ProductRecord) (domainerp.Outcome, error) {
	return e.setStatus(ctx, rec, domainerp.ActionEnable, entity.ProductStatusEnabled), nil
}

func (e *Executor) disable(ctx context.Context, rec domainerp.ProductRecord) (domainerp.Outcome, error) {
	return e.setStatus(ctx, rec, domainerp.ActionDisable, entity.ProductStatusDisabled), nil
}

// setStatus habilita o deshabilita. Nunca propaga errores: todo fallo se reporta como Failed.
func (e *Executor) setStatus(ctx context.Context, rec domainerp.ProductRecord, action domainerp.Action, target entity.ProductStatus) domainerp.Outcome {
	product, err := e.catalog.GetBySKU(ctx, rec.SKU)
	if err != nil {
		return failed(rec, action, err.Error())
	}
	if product.Status == target {
		return failed(rec, action, "already "+action.Verb()+".")
	}
	product.Status = target
	product.UpdatedAt = e.now()
	if err := e.catalog.Save(ctx, product); err != nil {
		return failed(rec, action, err.Error())
	}
	if target == entity.ProductStatusEnabled {
		return domainerp.Enabled(rec.SKU)
	}
	return domainerp.Disabled(rec.SKU)
}

// sourceItems construye el lote de stock; los orígenes sin cantidad se omiten.
func (e *Executor) sourceItems(rec domainerp.ProductRecord, now time.Time) []*entity.SourceItem {
	var items []*entity.SourceItem
	for _, s := range rec.Sources {
		if s.Quantity == nil {
			continue
		}
		item := entity.NewSourceItem(rec.SKU, s.CodeOr(entity.DefaultSourceCode), *s.Quantity)
		item.UpdatedAt = now
		items = append(items, item)
	}
	return items
}

func failed(rec domainerp.ProductRecord, action domainerp.Action, msg string) domainerp.Outcome {
	reason := fmt.Sprintf(`Product with SKU "%s" could not be %s: %s`, rec.SKU, action.Verb(), msg)
	return domainerp.Failed(rec.SKU, action, reason)
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
