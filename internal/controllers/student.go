package controllers

import (
	"net/http"

	"academy-manager/internal/dto"
	"academy-manager/internal/services"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StudentController struct {
	studentService services.StudentServiceInterface
	logger         *zap.Logger
}

func NewStudentController(studentService services.StudentServiceInterface, logger *zap.Logger) *StudentController {
	return &StudentController{studentService: studentService, logger: logger}
}

func (c *StudentController) GetStudents(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	students, total, err := c.studentService.GetStudents(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, students, "Alunos obtidos com sucesso", http.StatusOK, total)
}

func (c *StudentController) FindStudent(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	student, err := c.studentService.FindStudent(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, student, "Aluno encontrado", http.StatusOK)
}

func (c *StudentController) CreateStudent(ctx echo.Context) error {
	var payload dto.CreateStudentDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := c.studentService.CreateStudent(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.CreatedDTO{ID: id}, "Aluno cadastrado com sucesso", http.StatusCreated)
}

func (c *StudentController) UpdateStudent(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateStudentDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.studentService.UpdateStudent(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Aluno atualizado com sucesso", http.StatusOK)
}

func (c *StudentController) DeleteStudent(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.studentService.DeleteStudent(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Aluno excluído com sucesso", http.StatusOK)
}

func (c *StudentController) BulkDeleteStudents(ctx echo.Context) error {
	var payload dto.IDsDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	deleted, err := c.studentService.BulkDeleteStudents(ctx.Request().Context(), payload.IDs)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.BulkDeleteResultDTO{Excluidos: deleted}, "Alunos excluídos com sucesso", http.StatusOK)
}

func (c *StudentController) UploadPhoto(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	src, fileHeader, err := openUpload(ctx, "profile_photo")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	path, err := c.studentService.UploadPhoto(ctx.Request().Context(), id, src, fileHeader.Filename)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, map[string]string{"foto": path, "url": "/uploads/" + path}, "Foto atualizada com sucesso", http.StatusOK)
}
