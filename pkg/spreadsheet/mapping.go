package spreadsheet

import (
	"strings"
)

// Field é um campo lógico e os nomes de coluna aceitos para ele, em ordem de preferência.
type Field struct {
	Name     string
	Synonyms []string
	Required bool
}

// Mapping liga cada campo lógico ao índice da coluna encontrada.
type Mapping struct {
	index map[string]int
}

// Resolve acha, para cada campo, o primeiro sinônimo presente nos cabeçalhos.
// Devolve os campos obrigatórios ausentes, na ordem declarada.
func Resolve(headers []string, fields []Field) (Mapping, []string) {
	position := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, exists := position[h]; !exists {
			position[h] = i
		}
	}

	m := Mapping{index: make(map[string]int, len(fields))}
	var missing []string
	for _, f := range fields {
		found := false
		for _, syn := range f.Synonyms {
			if i, ok := position[NormalizeHeader(syn)]; ok {
				m.index[f.Name] = i
				found = true
				break
			}
		}
		if !found && f.Required {
			missing = append(missing, f.Name)
		}
	}
	return m, missing
}

func (m Mapping) Has(field string) bool {
	_, ok := m.index[field]
	return ok
}

// Record é uma linha vista pelos nomes lógicos dos campos.
type Record struct {
	mapping Mapping
	cells   []string
}

func (m Mapping) Record(cells []string) Record {
	return Record{mapping: m, cells: cells}
}

// Get devolve o valor aparado; coluna ausente, célula vazia e "nan" viram "".
func (r Record) Get(field string) string {
	i, ok := r.mapping.index[field]
	if !ok || i >= len(r.cells) {
		return ""
	}
	v := strings.TrimSpace(r.cells[i])
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

// Lookup informa também se a coluna existe na planilha.
func (r Record) Lookup(field string) (string, bool) {
	if !r.mapping.Has(field) {
		return "", false
	}
	return r.Get(field), true
}
