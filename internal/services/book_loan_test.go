package services

import (
	"testing"
	"time"

	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/testutil"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) createCopy(t *testing.T, barcode string) uint64 {
	t.Helper()
	ctx := testutil.AdminCtx()
	bookID, err := f.books.CreateBook(ctx, dto.CreateBookDTO{Titulo: "Dom Casmurro", Autor: "Machado de Assis"})
	require.NoError(t, err)
	copyID, err := f.copies.CreateCopy(ctx, dto.CreateCopyDTO{LivroID: bookID, CodigoBarras: barcode})
	require.NoError(t, err)
	return copyID
}

func (f *fixture) copyStatus(t *testing.T, id uint64) string {
	t.Helper()
	c, err := f.copies.FindCopy(testutil.AdminCtx(), id)
	require.NoError(t, err)
	return c.Status
}

func TestBookLoanService_LoanAndReturnByBarcode(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	f.bookLoans.WithClock(fixedClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))

	ana := f.createStudent(t, "Ana", "ana@academy.com")
	copyID := f.createCopy(t, "LIV-001")

	id, err := f.bookLoans.CreateBookLoan(ctx, dto.CreateBookLoanDTO{AlunoID: ana, CodigoBarras: "LIV-001"})
	require.NoError(t, err)
	assert.Equal(t, entities.CopyLoaned, f.copyStatus(t, copyID))

	loan, err := f.bookLoans.FindBookLoan(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", loan.DataPrevisaoDevolucao)
	assert.Equal(t, entities.LoanActive, loan.Status)

	_, err = f.bookLoans.CreateBookLoan(ctx, dto.CreateBookLoanDTO{AlunoID: ana, CodigoBarras: "LIV-001"})
	var rule *apperrors.BusinessRuleError
	require.ErrorAs(t, err, &rule)

	require.NoError(t, f.bookLoans.ReturnBook(ctx, dto.ReturnBookDTO{CodigoBarras: "LIV-001"}))
	assert.Equal(t, entities.CopyAvailable, f.copyStatus(t, copyID))

	err = f.bookLoans.ReturnBook(ctx, dto.ReturnBookDTO{CodigoBarras: "LIV-001"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = f.bookLoans.ReturnBook(ctx, dto.ReturnBookDTO{EmprestimoID: id})
	require.ErrorAs(t, err, &rule)
}

func TestBookLoanService_OverdueIsRelabeledOnList(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	ana := f.createStudent(t, "Ana", "ana@academy.com")
	f.createCopy(t, "LIV-002")

	f.bookLoans.WithClock(fixedClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	id, err := f.bookLoans.CreateBookLoan(ctx, dto.CreateBookLoanDTO{AlunoID: ana, CodigoBarras: "LIV-002"})
	require.NoError(t, err)

	// No dia do vencimento ainda não está atrasado.
	f.bookLoans.WithClock(fixedClock(time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC)))
	list, _, err := f.bookLoans.GetBookLoans(ctx, types.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entities.LoanActive, list[0].Status)

	f.bookLoans.WithClock(fixedClock(time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC)))
	list, _, err = f.bookLoans.GetBookLoans(ctx, types.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, entities.LoanOverdue, list[0].Status)
}

func TestBookLoanService_RenewResetsDueDateAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	ana := f.createStudent(t, "Ana", "ana@academy.com")
	f.createCopy(t, "LIV-003")

	f.bookLoans.WithClock(fixedClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	id, err := f.bookLoans.CreateBookLoan(ctx, dto.CreateBookLoanDTO{AlunoID: ana, CodigoBarras: "LIV-003"})
	require.NoError(t, err)

	f.bookLoans.WithClock(fixedClock(time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)))
	loan, err := f.bookLoans.FindBookLoan(ctx, id)
	require.NoError(t, err)
	require.Equal(t, entities.LoanOverdue, loan.Status)

	require.NoError(t, f.bookLoans.RenewBookLoan(ctx, id))
	loan, err = f.bookLoans.FindBookLoan(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entities.LoanActive, loan.Status)
	assert.Equal(t, "2024-04-03", loan.DataPrevisaoDevolucao)
	assert.Equal(t, 1, loan.Renovacoes)
}

func TestBookLoanService_OverdueAlertGoesToCreator(t *testing.T) {
	f := newFixture(t)
	admin := testutil.AdminCtx()

	profID, err := f.users.CreateUser(admin, dto.CreateUserDTO{
		Username: "prof", Password: "segredo", Role: types.RoleProfessor, Email: "prof@academy.com",
	})
	require.NoError(t, err)
	prof := testutil.UserCtx(profID, types.RoleProfessor)

	ana := f.createStudent(t, "Ana", "ana@academy.com")
	f.createCopy(t, "LIV-004")

	_, err = f.bookLoans.SendOverdueAlert(prof)
	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)

	f.bookLoans.WithClock(fixedClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	_, err = f.bookLoans.CreateBookLoan(prof, dto.CreateBookLoanDTO{AlunoID: ana, CodigoBarras: "LIV-004"})
	require.NoError(t, err)

	f.bookLoans.WithClock(fixedClock(time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)))
	sent, err := f.bookLoans.SendOverdueAlert(prof)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	msgs := f.mail.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"prof@academy.com"}, msgs[0].To)
	assert.Equal(t, overdueAlertSubject, msgs[0].Subject)
	assert.Contains(t, msgs[0].HTML, "Dom Casmurro")
	assert.Contains(t, msgs[0].HTML, "15/03/2024")

	// O admin semeado não tem e-mail.
	_, err = f.bookLoans.SendOverdueAlert(admin)
	require.ErrorAs(t, err, &invalid)
}

func TestCopyService_StatusFollowsOpenLoans(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	ana := f.createStudent(t, "Ana", "ana@academy.com")
	copyID := f.createCopy(t, "LIV-005")

	loaned := entities.CopyLoaned
	err := f.copies.UpdateCopy(ctx, copyID, dto.UpdateCopyDTO{Status: &loaned})
	var rule *apperrors.BusinessRuleError
	require.ErrorAs(t, err, &rule)

	_, err = f.bookLoans.CreateBookLoan(ctx, dto.CreateBookLoanDTO{AlunoID: ana, CodigoBarras: "LIV-005"})
	require.NoError(t, err)

	available := entities.CopyAvailable
	err = f.copies.UpdateCopy(ctx, copyID, dto.UpdateCopyDTO{Status: &available})
	require.ErrorAs(t, err, &rule)
	assert.Equal(t, entities.CopyLoaned, f.copyStatus(t, copyID))

	err = f.copies.DeleteCopy(ctx, copyID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestBookService_DeleteWithCopiesIsRefused(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.AdminCtx()
	copyID := f.createCopy(t, "LIV-006")
	c, err := f.copies.FindCopy(ctx, copyID)
	require.NoError(t, err)

	err = f.books.DeleteBook(ctx, c.LivroID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, f.copies.DeleteCopy(ctx, copyID))
	require.NoError(t, f.books.DeleteBook(ctx, c.LivroID))
}

func TestBookService_MutationsRequireAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.UserCtx(3, types.RoleUser)
	_, err := f.books.CreateBook(ctx, dto.CreateBookDTO{Titulo: "x", Autor: "y"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, _, err = f.books.GetBooks(ctx, types.Filter{})
	assert.NoError(t, err)
}
