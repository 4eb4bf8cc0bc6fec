// Package coerce normaliza valores vindos de fontes sem tipo (JSON, formulário,
// planilha, colunas do banco) para tipos Go.
package coerce

import (
	"bytes"
	"encoding/json"
	"strings"
)

var truthy = map[string]struct{}{
	"true": {}, "1": {}, "sim": {}, "s": {}, "yes": {}, "y": {},
}

// Bool é a única regra de conversão booleana do sistema. nil devolve def.
func Bool(value interface{}, def bool) bool {
	switch v := value.(type) {
	case nil:
		return def
	case bool:
		return v
	case *bool:
		if v == nil {
			return def
		}
		return *v
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return false
		}
		return f != 0
	case []byte:
		return String(string(v))
	case string:
		return String(v)
	case Flag:
		return v.Or(def)
	default:
		return false
	}
}

// String aplica a regra a um texto. Texto vazio é falso.
func String(s string) bool {
	_, ok := truthy[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Flag é um booleano opcional para DTOs: aceita true, 1, "Sim", "yes"...
// Set fica falso quando o campo não veio ou veio null.
type Flag struct {
	Value bool
	Set   bool
}

func NewFlag(v bool) Flag { return Flag{Value: v, Set: true} }

func (f Flag) Or(def bool) bool {
	if !f.Set {
		return def
	}
	return f.Value
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = Flag{}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*f = Flag{Value: Bool(raw, false), Set: true}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalParam permite o bind de formulários e query strings pelo echo.
func (f *Flag) UnmarshalParam(param string) error {
	if strings.TrimSpace(param) == "" {
		*f = Flag{}
		return nil
	}
	*f = Flag{Value: String(param), Set: true}
	return nil
}

// YesNo formata um booleano para exportação.
func YesNo(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}

// Text aceita string ou número no JSON e guarda como texto ("ano": 2021 ou "2021").
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

func (t *Text) UnmarshalParam(param string) error {
	*t = Text(strings.TrimSpace(param))
	return nil
}

func (t Text) String() string { return string(t) }
