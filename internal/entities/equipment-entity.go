package entities

import "github.com/aarondl/null/v8"

// Equipment é o registro completo de equipment_control; Device é a projeção usada nos empréstimos.
type Equipment struct {
	ID             uint64      `db:"id"`
	TipoDevice     string      `db:"tipo_device"`
	NumeroSerie    string      `db:"numero_serie"`
	Modelo         null.String `db:"modelo"`
	Cor            null.String `db:"cor"`
	Status         string      `db:"status"`
	ParaEmprestimo bool        `db:"para_emprestimo"`
	Responsavel    null.String `db:"responsavel"`
	Local          null.String `db:"local"`
	Convenio       null.String `db:"convenio"`
	Observacao     null.String `db:"observacao"`
	Processador    null.String `db:"processador"`
	Memoria        null.String `db:"memoria"`
	Armazenamento  null.String `db:"armazenamento"`
	Tela           null.String `db:"tela"`
	DataCadastro   null.Time   `db:"data_cadastro"`
}
