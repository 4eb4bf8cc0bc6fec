package services

import (
	"context"
	"sync"

	"academy-manager/internal/authz"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/types"
	"academy-manager/pkg/utils"

	"go.uber.org/zap"
)

const dashboardListLimit = 5

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*types.DashboardStats, error)
}

type DashboardService struct {
	repo         repositories.DashboardRepositoryInterface
	bookLoanRepo repositories.BookLoanRepositoryInterface
	logger       *zap.Logger
	now          Clock
}

func NewDashboardService(
	repo repositories.DashboardRepositoryInterface,
	bookLoanRepo repositories.BookLoanRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{repo: repo, bookLoanRepo: bookLoanRepo, logger: logger, now: systemClock}
}

func (s *DashboardService) GetStats(ctx context.Context) (*types.DashboardStats, error) {
	if _, err := authorize(ctx, s.logger, authz.DashboardView); err != nil {
		return nil, err
	}
	now := s.now()

	// O contador de atrasados precisa da reclassificação feita antes das consultas.
	if _, err := s.bookLoanRepo.MarkOverdue(ctx, utils.DateOnly(now)); err != nil {
		return nil, err
	}

	var (
		wg       sync.WaitGroup
		students *types.StudentStats
		devices  *types.DeviceStats
		active   int64
		booksOut int64
		overdue  int64
		recent   []types.DashboardLoanItem
		mostUsed []types.DashboardDeviceUsage

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) { students, err = s.repo.GetStudentStats(ctx, now); return })
	addTask(func() (err error) { devices, err = s.repo.GetDeviceStats(ctx); return })
	addTask(func() (err error) { active, booksOut, overdue, err = s.repo.GetLoanCounters(ctx); return })
	addTask(func() (err error) { recent, err = s.repo.GetRecentLoans(ctx, dashboardListLimit); return })
	addTask(func() (err error) { mostUsed, err = s.repo.GetMostUsedDevices(ctx, dashboardListLimit); return })

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("Falha ao carregar o painel", zap.Errors("erros", errs))
		return nil, errs[0]
	}

	return &types.DashboardStats{
		Alunos:             *students,
		Devices:            *devices,
		EmprestimosAtivos:  active,
		LivrosEmprestados:  booksOut,
		LivrosAtrasados:    overdue,
		UltimosEmprestimos: recent,
		DevicesMaisUsados:  mostUsed,
	}, nil
}
