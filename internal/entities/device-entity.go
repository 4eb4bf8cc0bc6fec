package entities

import "github.com/aarondl/null/v8"

// Status de devices e de equipment_control.
const (
	DeviceAvailable   = "Disponível"
	DeviceLoaned      = "Emprestado"
	DeviceMaintenance = "Manutenção"
	DeviceReserved    = "Reservado"
)

var DeviceStatuses = []string{DeviceAvailable, DeviceLoaned, DeviceMaintenance, DeviceReserved}

func IsDeviceStatus(s string) bool {
	for _, st := range DeviceStatuses {
		if st == s {
			return true
		}
	}
	return false
}

type Device struct {
	ID             uint64      `db:"id"`
	Tipo           string      `db:"tipo"`
	Modelo         null.String `db:"modelo"`
	Cor            null.String `db:"cor"`
	Polegadas      null.String `db:"polegadas"`
	Ano            null.String `db:"ano"`
	Nome           null.String `db:"nome"`
	Chip           null.String `db:"chip"`
	Memoria        null.String `db:"memoria"`
	NumeroSerie    string      `db:"numero_serie"`
	VersaoOS       null.String `db:"versao_os"`
	Status         string      `db:"status"`
	ParaEmprestimo bool        `db:"para_emprestimo"`
	Observacao     null.String `db:"observacao"`
	DataCadastro   null.Time   `db:"data_cadastro"`
}
