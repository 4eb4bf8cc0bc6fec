package types

type StudentStats struct {
	Total            int64 `json:"total"`
	Regular          int64 `json:"regular"`
	Foundation       int64 `json:"foundation"`
	FoundationRecent int64 `json:"foundation_recentes"`
	FoundationYear   int64 `json:"foundation_ano"`
}

type DeviceStats struct {
	ParaEmprestimo int64 `json:"para_emprestimo"`
	Emprestados    int64 `json:"emprestados"`
	Disponiveis    int64 `json:"disponiveis"`
	Manutencao     int64 `json:"manutencao"`
}

type DashboardLoanItem struct {
	ID           uint64 `json:"id"`
	AlunoNome    string `json:"aluno_nome"`
	DeviceNome   string `json:"device_nome"`
	DataRetirada string `json:"data_retirada"`
}

type DashboardDeviceUsage struct {
	DeviceID uint64 `json:"device_id"`
	Nome     string `json:"nome"`
	Modelo   string `json:"modelo"`
	Total    int64  `json:"total"`
}

type DashboardStats struct {
	Alunos             StudentStats           `json:"alunos"`
	Devices            DeviceStats            `json:"devices"`
	EmprestimosAtivos  int64                  `json:"emprestimos_ativos"`
	LivrosEmprestados  int64                  `json:"livros_emprestados"`
	LivrosAtrasados    int64                  `json:"livros_atrasados"`
	UltimosEmprestimos []DashboardLoanItem    `json:"ultimos_emprestimos"`
	DevicesMaisUsados  []DashboardDeviceUsage `json:"devices_mais_usados"`
}
