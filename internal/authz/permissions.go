package authz

// --- Permissões do sistema ---

const (
	// Global
	Superuser = "superuser"

	// Usuários
	UsersManage    = "users:manage"
	PasswordUpdate = "password:update"

	// Alunos
	StudentsView   = "alunos:view"
	StudentsManage = "alunos:manage"

	// Devices
	DevicesView       = "devices:view"
	DevicesManage     = "devices:manage"
	DevicesBulkDelete = "devices:bulk_delete"

	// Controle de equipamentos
	EquipmentView   = "equipment:view"
	EquipmentManage = "equipment:manage"

	// Empréstimos de devices
	LoansView       = "emprestimos:view"
	LoansManage     = "emprestimos:manage"
	LoansBulkDelete = "emprestimos:bulk_delete"

	// Biblioteca
	BooksView       = "livros:view"
	BooksManage     = "livros:manage"
	BookLoansView   = "emprestimos_livros:view"
	BookLoansManage = "emprestimos_livros:manage"

	// Inventário
	InventoryView   = "inventory:view"
	InventoryManage = "inventory:manage"

	// Tipos de device
	DeviceTypesView   = "tipos_devices:view"
	DeviceTypesManage = "tipos_devices:manage"

	// Agenda
	EventsView   = "eventos:view"
	EventsManage = "eventos:manage"

	// Painel, importação e exportação
	DashboardView = "dashboard:view"
	ExportBasic   = "export:basic"

	// Sistema
	SystemBackup = "system:backup"
)
