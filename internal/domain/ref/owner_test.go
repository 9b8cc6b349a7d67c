package ref_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfarias/comercial-api/internal/domain/ref"
)

// saleDoc es el registro mínimo que usan los tests: una venta que referencia
// a su cliente en cualquiera de las dos formas del cable.
type saleDoc struct {
	ID     string       `json:"id"`
	Client ref.OwnerRef `json:"client"`
}

func TestOwnerRef_UnmarshalIDPlano(t *testing.T) {
	var r ref.OwnerRef
	require.NoError(t, json.Unmarshal([]byte(`"c1"`), &r))

	assert.Equal(t, ref.Identifier, r.Kind())
	assert.Equal(t, "c1", r.ID())
}

func TestOwnerRef_UnmarshalObjetoExpandido(t *testing.T) {
	var r ref.OwnerRef
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c2","name":"Distribuidora Sur"}`), &r))

	assert.Equal(t, ref.Expanded, r.Kind())
	assert.Equal(t, "c2", r.ID())
	assert.Equal(t, "Distribuidora Sur", r.Name())
}

// Los backends estilo Mongo expanden con "_id" en lugar de "id".
func TestOwnerRef_UnmarshalObjetoMongo(t *testing.T) {
	var r ref.OwnerRef
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"c2"}`), &r))

	assert.Equal(t, ref.Expanded, r.Kind())
	assert.Equal(t, "c2", r.ID())
}

func TestOwnerRef_UnmarshalNull(t *testing.T) {
	var r ref.OwnerRef
	require.NoError(t, json.Unmarshal([]byte(`null`), &r))

	assert.True(t, r.IsZero())
	assert.False(t, r.Matches("c1"), "una referencia ausente nunca matchea")
}

func TestOwnerRef_MarshalRoundTrip(t *testing.T) {
	plain, err := json.Marshal(ref.FromID("c1"))
	require.NoError(t, err)
	assert.Equal(t, `"c1"`, string(plain))

	expanded, err := json.Marshal(ref.FromEntity("c2", "Distribuidora Sur"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c2","name":"Distribuidora Sur"}`, string(expanded))

	none, err := json.Marshal(ref.OwnerRef{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(none))
}

func TestOwnerRef_MatchesObjetivoVacio(t *testing.T) {
	assert.False(t, ref.FromID("c1").Matches(""), "objetivo vacío no debe matchear")
}

// TestFilterByOwner_FormasMixtas reproduce el escenario de ventas con cliente
// plano, expandido y nulo: para cada objetivo se devuelve exactamente el
// registro cuyo dueño resuelve a ese id.
func TestFilterByOwner_FormasMixtas(t *testing.T) {
	var sales []saleDoc
	payload := `[
		{"id":"v1","client":"c1"},
		{"id":"v2","client":{"_id":"c2"}},
		{"id":"v3","client":null}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &sales))

	byClient := func(s saleDoc) ref.OwnerRef { return s.Client }

	got := ref.FilterByOwner(sales, byClient, "c1")
	require.Len(t, got, 1)
	assert.Equal(t, "v1", got[0].ID)

	got = ref.FilterByOwner(sales, byClient, "c2")
	require.Len(t, got, 1)
	assert.Equal(t, "v2", got[0].ID)

	got = ref.FilterByOwner(sales, byClient, "c9")
	assert.Empty(t, got)
}

// TestFilterByOwner_PreservaOrden verifica que el filtro mantiene el orden
// relativo original y no deduplica.
func TestFilterByOwner_PreservaOrden(t *testing.T) {
	sales := []saleDoc{
		{ID: "v1", Client: ref.FromID("c1")},
		{ID: "v2", Client: ref.FromEntity("c2", "")},
		{ID: "v3", Client: ref.FromID("c1")},
		{ID: "v4", Client: ref.FromEntity("c1", "Cliente Uno")},
	}

	got := ref.FilterByOwner(sales, func(s saleDoc) ref.OwnerRef { return s.Client }, "c1")

	require.Len(t, got, 3)
	assert.Equal(t, "v1", got[0].ID)
	assert.Equal(t, "v3", got[1].ID)
	assert.Equal(t, "v4", got[2].ID)
}

func TestFilterByOwner_ColeccionVacia(t *testing.T) {
	got := ref.FilterByOwner(nil, func(s saleDoc) ref.OwnerRef { return s.Client }, "c1")
	assert.Empty(t, got, "colección ausente devuelve vacío sin error")
}
