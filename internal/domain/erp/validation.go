package erp

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationResult resultado de validar un registro. Reasons respeta el orden de evaluación
// de las reglas y acumula todas las violaciones, no solo la primera.
type ValidationResult struct {
	Valid   bool
	Reasons []string
}

type validatorFunc func(r ProductRecord, action Action) []string

// validators una regla por acción; erp_test verifica que todas las acciones tengan entrada.
var validators = map[Action]validatorFunc{
	ActionNew:     validateNew,
	ActionUpdate:  validateUpdate,
	ActionEnable:  validateIdentity,
	ActionDisable: validateIdentity,
}

// requiredForNew campos obligatorios para crear, en el orden en que se reportan.
var requiredForNew = []struct {
	key     string
	message string
}{
	{keyName, "name is missing."},
	{keyPrice, "price is missing."},
	{keyAttributeSetID, "attribute_set_id is missing."},
	{keyTypeID, "type_id is missing."},
	{keyStatus, "status is missing."},
	{keyVisibility, "visibility is missing."},
	{keySources, "sources array is missing or invalid."},
}

// Validate aplica las reglas de la acción del registro. Función pura.
func Validate(r ProductRecord) ValidationResult {
	if r.Action == "" {
		return invalid(fmt.Sprintf(`Product with SKU "%s" could not be processed: action is missing.`, r.SKU))
	}
	action, ok := ParseAction(r.Action)
	if !ok {
		return invalid(fmt.Sprintf(`Product with SKU "%s" has unknown action: %s`, r.SKU, r.Action))
	}
	reasons := validators[action](r, action)
	return ValidationResult{Valid: len(reasons) == 0, Reasons: reasons}
}

func invalid(reason string) ValidationResult {
	return ValidationResult{Valid: false, Reasons: []string{reason}}
}

func validateNew(r ProductRecord, action Action) []string {
	var reasons []string
	for _, f := range requiredForNew {
		if !r.hasField(f.key) {
			reasons = append(reasons, reason(r, action, f.message))
		}
	}
	for _, key := range r.Invalid {
		reasons = append(reasons, reason(r, action, fmt.Sprintf("%s has an invalid value.", key)))
	}
	reasons = append(reasons, checkPrice(r, action)...)
	return append(reasons, checkSources(r, action)...)
}

func validateUpdate(r ProductRecord, action Action) []string {
	var reasons []string
	if r.isInvalid(keyPrice) {
		reasons = append(reasons, reason(r, action, "price has an invalid value."))
	}
	reasons = append(reasons, checkPrice(r, action)...)
	if !r.SourcesPresent || !r.SourcesIsList {
		return append(reasons, reason(r, action, "sources array is missing or invalid."))
	}
	return append(reasons, checkSources(r, action)...)
}

func validateIdentity(r ProductRecord, _ Action) []string {
	if !r.HasSKU() {
		return []string{"Product with SKU is missing: SKU is missing."}
	}
	return nil
}

func checkPrice(r ProductRecord, action Action) []string {
	if r.Price == nil || !r.Price.LessThan(decimal.Zero) {
		return nil
	}
	return []string{reason(r, action, fmt.Sprintf("price cannot be negative (%s)", r.Price.StringFixed(2)))}
}

func checkSources(r ProductRecord, action Action) []string {
	if !r.SourcesIsList {
		return nil
	}
	var reasons []string
	for _, s := range r.Sources {
		code := s.CodeOr("unknown")
		switch {
		case s.InvalidQuantity:
			reasons = append(reasons, reason(r, action, fmt.Sprintf(`quantity for source "%s" has an invalid value`, code)))
		case s.Quantity == nil:
			reasons = append(reasons, reason(r, action, fmt.Sprintf(`quantity for source "%s" is missing`, code)))
		case s.Quantity.LessThan(decimal.Zero):
			reasons = append(reasons, reason(r, action, fmt.Sprintf(`quantity for source "%s" cannot be negative (%s)`, code, s.Quantity.StringFixed(2))))
		}
	}
	return reasons
}

// hasField presencia de un campo obligatorio; un valor inválido cuenta como presente
// (se reporta aparte) y name vacío cuenta como ausente.
func (r ProductRecord) hasField(key string) bool {
	switch key {
	case keyName:
		return (r.Name != nil && *r.Name != "") || r.isInvalid(key)
	case keyPrice:
		return r.Price != nil || r.isInvalid(key)
	case keyAttributeSetID:
		return r.AttributeSetID != nil || r.isInvalid(key)
	case keyTypeID:
		return r.TypeID != nil || r.isInvalid(key)
	case keyStatus:
		return r.Status != nil || r.isInvalid(key)
	case keyVisibility:
		return r.Visibility != nil || r.isInvalid(key)
	case keySources:
		return r.SourcesPresent && r.SourcesIsList
	}
	return false
}

func reason(r ProductRecord, action Action, msg string) string {
	return fmt.Sprintf(`Product with SKU "%s" could not be %s: %s`, r.SKU, action.Verb(), msg)
}
