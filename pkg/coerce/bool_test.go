package coerce

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBool(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		def   bool
		want  bool
	}{
		{"Sim", "Sim", false, true},
		{"yes", "yes", false, true},
		{"S maiúsculo com espaços", "  S ", false, true},
		{"inteiro 1", 1, false, true},
		{"int64 7", int64(7), false, true},
		{"float 0.5", 0.5, false, true},
		{"bool true", true, false, true},
		{"bytes 1 do mysql", []byte("1"), false, true},
		{"Não", "Não", true, false},
		{"no", "no", true, false},
		{"inteiro 0", 0, true, false},
		{"texto vazio", "", true, false},
		{"disponivel não é verdadeiro", "disponivel", true, false},
		{"nil com default falso", nil, false, false},
		{"nil com default verdadeiro", nil, true, true},
		{"tipo desconhecido", struct{}{}, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Bool(tc.value, tc.def))
		})
	}
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	var payload struct {
		A Flag `json:"a"`
		B Flag `json:"b"`
		C Flag `json:"c"`
		D Flag `json:"d"`
		E Flag `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a": "Sim", "b": 0, "c": null, "d": true}`), &payload)
	require.NoError(t, err)

	assert.True(t, payload.A.Or(false))
	assert.False(t, payload.B.Or(true))
	assert.False(t, payload.C.Set)
	assert.True(t, payload.C.Or(true), "null aplica o default")
	assert.True(t, payload.D.Value)
	assert.False(t, payload.E.Set, "campo ausente aplica o default")
	assert.True(t, payload.E.Or(true))
}

func TestFlag_UnmarshalParam(t *testing.T) {
	var f Flag
	require.NoError(t, f.UnmarshalParam("sim"))
	assert.True(t, f.Or(false))

	require.NoError(t, f.UnmarshalParam(""))
	assert.False(t, f.Set)
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "Sim", YesNo(true))
	assert.Equal(t, "Não", YesNo(false))
}

func TestText_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Ano  Text `json:"ano"`
		Nome Text `json:"nome"`
		Nada Text `json:"nada"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"ano": 2021, "nome": " iPad ", "nada": null}`), &payload))
	assert.Equal(t, "2021", payload.Ano.String())
	assert.Equal(t, "iPad", string(payload.Nome))
	assert.Equal(t, "", string(payload.Nada))

	assert.Error(t, json.Unmarshal([]byte(`{"ano": [1]}`), &payload))
}
