package seeders

// deviceTypesData é o catálogo inicial de tipos de device da Academy.
var deviceTypesData = []struct {
	Nome           string
	Categoria      string
	Descricao      string
	ParaEmprestimo bool
}{
	// --- Portáteis para empréstimo ---
	{Nome: "iPad", Categoria: "Tablet", Descricao: "iPad padrão para aulas", ParaEmprestimo: true},
	{Nome: "iPad Pro 12.9", Categoria: "Tablet", Descricao: "Tablet profissional Apple", ParaEmprestimo: true},
	{Nome: "MacBook", Categoria: "Notebook", Descricao: "MacBook Air de uso geral", ParaEmprestimo: true},
	{Nome: "MacBook Pro M3", Categoria: "Notebook", Descricao: "Notebook profissional Apple", ParaEmprestimo: true},
	{Nome: "iPhone", Categoria: "Smartphone", Descricao: "iPhone para testes de apps", ParaEmprestimo: true},
	{Nome: "iPhone 15 Pro", Categoria: "Smartphone", Descricao: "Smartphone flagship Apple", ParaEmprestimo: true},
	{Nome: "Apple Watch", Categoria: "Wearable", Descricao: "Relógio para testes de watchOS", ParaEmprestimo: true},
	{Nome: "Apple Pencil", Categoria: "Acessório", Descricao: "Caneta para iPad", ParaEmprestimo: true},

	// --- Fixos das salas ---
	{Nome: "iMac", Categoria: "Desktop", Descricao: "Estação fixa de laboratório", ParaEmprestimo: false},
	{Nome: "Mac mini", Categoria: "Desktop", Descricao: "Servidor de build das turmas", ParaEmprestimo: false},
	{Nome: "Apple TV", Categoria: "Multimídia", Descricao: "Espelhamento nas salas", ParaEmprestimo: false},

	// fallback usado pela sincronização quando o equipamento vem sem tipo
	{Nome: "Outro", Categoria: "Outro", Descricao: "Tipo não informado", ParaEmprestimo: true},
}
