package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"academy-manager/internal/dto"
	"academy-manager/internal/repositories"
	"academy-manager/internal/testutil"
	"academy-manager/pkg/config"
	"academy-manager/pkg/database"
	"academy-manager/pkg/filestorage"
	"academy-manager/pkg/mailer"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingMailer guarda as mensagens em vez de enviá-las.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

// fixture monta os serviços reais sobre um SQLite temporário.
type fixture struct {
	db      *database.DB
	storage filestorage.FileStorageInterface
	mail    *recordingMailer

	userRepo      repositories.UserRepositoryInterface
	studentRepo   repositories.StudentRepositoryInterface
	deviceRepo    repositories.DeviceRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	loanRepo      repositories.LoanRepositoryInterface
	bookRepo      repositories.BookRepositoryInterface
	copyRepo      repositories.CopyRepositoryInterface
	bookLoanRepo  repositories.BookLoanRepositoryInterface

	auth       AuthServiceInterface
	users      UserServiceInterface
	students   StudentServiceInterface
	devices    DeviceServiceInterface
	equipment  EquipmentServiceInterface
	loans      *LoanService
	books      BookServiceInterface
	copies     CopyServiceInterface
	bookLoans  *BookLoanService
	inventory  InventoryServiceInterface
	types      DeviceTypeServiceInterface
	events     EventServiceInterface
	dashboard  DashboardServiceInterface
	importer   ImportServiceInterface
	exporter   ExportServiceInterface
	backup     *BackupService
	deviceSync *DeviceSync
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	db := testutil.NewDB(t)
	tx := repositories.NewTxManager(db)

	storage, err := filestorage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		db:            db,
		storage:       storage,
		mail:          &recordingMailer{},
		userRepo:      repositories.NewUserRepository(db, logger),
		studentRepo:   repositories.NewStudentRepository(db, logger),
		deviceRepo:    repositories.NewDeviceRepository(db, logger),
		equipmentRepo: repositories.NewEquipmentRepository(db, logger),
		loanRepo:      repositories.NewLoanRepository(db, logger),
		bookRepo:      repositories.NewBookRepository(db, logger),
		copyRepo:      repositories.NewCopyRepository(db, logger),
		bookLoanRepo:  repositories.NewBookLoanRepository(db, logger),
	}
	inventoryRepo := repositories.NewInventoryRepository(db, logger)
	typeRepo := repositories.NewDeviceTypeRepository(db, logger)

	f.deviceSync = NewDeviceSync(f.deviceRepo, f.loanRepo, logger)
	f.auth = NewAuthService(f.userRepo, repositories.NewMemoryCacheRepository(time.Minute), tx, logger,
		&config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute})
	f.users = NewUserService(f.userRepo, tx, storage, logger)
	f.students = NewStudentService(f.studentRepo, f.loanRepo, f.bookLoanRepo, tx, storage, logger)
	f.devices = NewDeviceService(f.deviceRepo, f.loanRepo, tx, logger)
	f.equipment = NewEquipmentService(f.equipmentRepo, f.deviceSync, tx, logger)
	f.loans = NewLoanService(f.loanRepo, f.deviceRepo, f.studentRepo, tx, logger)
	f.books = NewBookService(f.bookRepo, tx, logger)
	f.copies = NewCopyService(f.copyRepo, f.bookRepo, f.bookLoanRepo, tx, logger)
	f.bookLoans = NewBookLoanService(f.bookLoanRepo, f.copyRepo, f.studentRepo, f.userRepo, tx, f.mail, logger)
	f.inventory = NewInventoryService(inventoryRepo, tx, logger)
	f.types = NewDeviceTypeService(typeRepo, tx, logger)
	f.events = NewEventService(repositories.NewEventRepository(db, logger), tx, logger)
	f.dashboard = NewDashboardService(repositories.NewDashboardRepository(db, logger), f.bookLoanRepo, logger)
	f.importer = NewImportService(f.studentRepo, f.deviceRepo, f.equipmentRepo, inventoryRepo, typeRepo,
		f.deviceSync, tx, storage, logger)
	f.exporter = NewExportService(repositories.NewExportRepository(db, logger), logger)
	f.backup = NewBackupService(repositories.NewBackupRepository(db, logger), t.TempDir(), logger)
	return f
}

func (f *fixture) createStudent(t *testing.T, nome, email string) uint64 {
	t.Helper()
	id, err := f.students.CreateStudent(testutil.AdminCtx(), dto.CreateStudentDTO{Nome: nome, Email: email})
	require.NoError(t, err)
	return id
}

func (f *fixture) createDevice(t *testing.T, serial string) uint64 {
	t.Helper()
	id, err := f.devices.CreateDevice(testutil.AdminCtx(), dto.CreateDeviceDTO{Tipo: "iPad", NumeroSerie: serial})
	require.NoError(t, err)
	return id
}

func (f *fixture) deviceStatus(t *testing.T, id uint64) string {
	t.Helper()
	d, err := f.devices.FindDevice(testutil.AdminCtx(), id)
	require.NoError(t, err)
	return d.Status
}

func (f *fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	row, err := f.db.Get(context.Background(), f.db.Builder().Select("COUNT(*) AS total").From(table))
	require.NoError(t, err)
	return row.Int64("total")
}

// fixedClock devolve sempre o mesmo instante.
func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
