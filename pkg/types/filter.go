package types

// Filter são os parâmetros de listagem lidos da query string, por exemplo
// /api/devices?search=ipad&sort[modelo]=asc&filter[status]=Disponível,Reservado&limit=20&page=2&withPagination=true
//
// Os nomes em Sort e Filter são os da API; cada repositório traduz para a
// coluna real e ignora o que não conhece.
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

// Pagination acompanha a lista quando withPagination=true.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// PaginationFor calcula o total de páginas do filtro para um total de linhas.
func (f Filter) PaginationFor(total uint64) Pagination {
	p := Pagination{TotalCount: total, Page: f.Page, Limit: f.Limit}
	if f.Limit > 0 {
		p.TotalPages = int((total + uint64(f.Limit) - 1) / uint64(f.Limit))
	}
	return p
}
