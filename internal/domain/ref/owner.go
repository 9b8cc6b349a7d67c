// Package ref modela las referencias polimórficas a entidades "dueñas"
// (cliente de una venta, proveedor de un artículo). El backend puede devolver
// la referencia como id plano o como objeto expandido; los dos casos se
// representan con una unión etiquetada en lugar de chequeos de tipo ad hoc.
package ref

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind es la etiqueta de la unión.
type Kind int

const (
	// None indica referencia ausente o nula. Nunca resuelve a un dueño.
	None Kind = iota
	// Identifier es un id plano ("c1").
	Identifier
	// Expanded es un objeto embebido con al menos un id ({"id":"c1","name":...}).
	Expanded
)

// OwnerRef es la referencia al dueño de un registro. El valor cero es None.
type OwnerRef struct {
	kind Kind
	id   string
	name string // solo con Expanded, puede estar vacío
}

// FromID construye una referencia por id plano. Un id vacío produce None.
func FromID(id string) OwnerRef {
	if id == "" {
		return OwnerRef{}
	}
	return OwnerRef{kind: Identifier, id: id}
}

// FromEntity construye una referencia expandida con id y nombre visible.
func FromEntity(id, name string) OwnerRef {
	if id == "" {
		return OwnerRef{}
	}
	return OwnerRef{kind: Expanded, id: id, name: name}
}

// Kind devuelve la etiqueta de la unión.
func (r OwnerRef) Kind() Kind { return r.kind }

// ID devuelve el identificador del dueño, sea cual sea la forma. Vacío si None.
func (r OwnerRef) ID() string { return r.id }

// Name devuelve el nombre visible si la referencia está expandida.
func (r OwnerRef) Name() string { return r.name }

// IsZero informa si la referencia está ausente.
func (r OwnerRef) IsZero() bool { return r.kind == None }

// Matches resuelve la referencia contra un id objetivo por igualdad exacta.
// Una referencia ausente nunca matchea, tampoco un objetivo vacío.
func (r OwnerRef) Matches(targetID string) bool {
	if r.kind == None || targetID == "" {
		return false
	}
	return r.id == targetID
}

// MarshalJSON serializa según la variante: None -> null, Identifier -> "id",
// Expanded -> {"id": ..., "name": ...}.
func (r OwnerRef) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case None:
		return []byte("null"), nil
	case Identifier:
		return json.Marshal(r.id)
	default:
		return json.Marshal(struct {
			ID   string `json:"id"`
			Name string `json:"name,omitempty"`
		}{ID: r.id, Name: r.name})
	}
}

// UnmarshalJSON acepta las dos formas del cable: string plano u objeto con
// campo "id" (o "_id", como devuelven los backends estilo Mongo).
func (r *OwnerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = OwnerRef{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("ref: id plano inválido: %w", err)
		}
		*r = FromID(id)
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			ID      string `json:"id"`
			MongoID string `json:"_id"`
			Name    string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("ref: objeto dueño inválido: %w", err)
		}
		id := obj.ID
		if id == "" {
			id = obj.MongoID
		}
		*r = FromEntity(id, obj.Name)
		return nil
	}
	return fmt.Errorf("ref: forma de referencia no soportada: %s", string(data))
}

// FilterByOwner devuelve la subsecuencia de records cuyo dueño resuelve a
// targetID, preservando el orden relativo original. Se usa igual para
// ventas-por-cliente que para artículos-por-proveedor: la regla no depende
// de la entidad. Una colección nil o vacía devuelve resultado vacío.
func FilterByOwner[T any](records []T, owner func(T) OwnerRef, targetID string) []T {
	var out []T
	for _, rec := range records {
		if owner(rec).Matches(targetID) {
			out = append(out, rec)
		}
	}
	return out
}
