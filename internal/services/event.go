package services

import (
	"context"
	"strings"
	"time"

	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

const upcomingEventsLimit = 5

type EventServiceInterface interface {
	GetEvents(ctx context.Context, rng dto.EventRangeDTO) ([]dto.EventDTO, error)
	GetUpcoming(ctx context.Context) ([]dto.EventDTO, error)
	FindEvent(ctx context.Context, id uint64) (*dto.EventDTO, error)
	CreateEvent(ctx context.Context, payload dto.CreateEventDTO) (uint64, error)
	UpdateEvent(ctx context.Context, id uint64, payload dto.UpdateEventDTO) error
	DeleteEvent(ctx context.Context, id uint64) error
}

type EventService struct {
	eventRepo repositories.EventRepositoryInterface
	txManager repositories.TxManagerInterface
	logger    *zap.Logger
	now       Clock
}

func NewEventService(
	eventRepo repositories.EventRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) EventServiceInterface {
	return &EventService{eventRepo: eventRepo, txManager: txManager, logger: logger, now: systemClock}
}

func eventToDTO(e entities.Event) dto.EventDTO {
	return dto.EventDTO{
		ID:            e.ID,
		Titulo:        e.Titulo,
		Descricao:     e.Descricao,
		DataInicio:    e.DataInicio.Format(utils.DateTimeLayout),
		DataFim:       e.DataFim.Format(utils.DateTimeLayout),
		Local:         e.Local,
		Cor:           e.Cor,
		Tipo:          e.Tipo,
		Participantes: e.Participantes,
		CriadoPor:     e.CriadoPor,
		CriadoPorNome: e.CriadoPorNome,
		DataCriacao:   utils.NullDateTime(e.DataCriacao),
	}
}

func eventsToDTO(events []entities.Event) []dto.EventDTO {
	result := make([]dto.EventDTO, 0, len(events))
	for _, e := range events {
		result = append(result, eventToDTO(e))
	}
	return result
}

func eventFromDTO(payload dto.CreateEventDTO) (entities.Event, error) {
	start, err := utils.ParseDateTime(payload.DataInicio)
	if err != nil {
		return entities.Event{}, apperrors.NewInvalidInputError("Data de início inválida")
	}
	end, err := utils.ParseDateTime(payload.DataFim)
	if err != nil {
		return entities.Event{}, apperrors.NewInvalidInputError("Data de término inválida")
	}
	if end.Before(start) {
		return entities.Event{}, apperrors.NewInvalidInputError("A data de término deve ser posterior ao início")
	}

	color := strings.TrimSpace(payload.Cor)
	if color == "" {
		color = entities.DefaultEventColor
	}
	return entities.Event{
		Titulo:        strings.TrimSpace(payload.Titulo),
		Descricao:     utils.NullIfEmpty(payload.Descricao),
		DataInicio:    start,
		DataFim:       end,
		Local:         utils.NullIfEmpty(payload.Local),
		Cor:           color,
		Tipo:          utils.NullIfEmpty(payload.Tipo),
		Participantes: utils.NullIfEmpty(payload.Participantes),
	}, nil
}

func parseRangeBound(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := utils.ParseDateTime(s)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("Intervalo de datas inválido")
	}
	return &t, nil
}

func (s *EventService) GetEvents(ctx context.Context, rng dto.EventRangeDTO) ([]dto.EventDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.EventsView); err != nil {
		return nil, err
	}
	start, err := parseRangeBound(rng.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseRangeBound(rng.End)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.GetEvents(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return eventsToDTO(events), nil
}

// GetUpcoming alimenta o quadro de próximos eventos do painel.
func (s *EventService) GetUpcoming(ctx context.Context) ([]dto.EventDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.EventsView); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.GetUpcoming(ctx, s.now(), upcomingEventsLimit)
	if err != nil {
		return nil, err
	}
	return eventsToDTO(events), nil
}

func (s *EventService) FindEvent(ctx context.Context, id uint64) (*dto.EventDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.EventsView); err != nil {
		return nil, err
	}
	e, err := s.eventRepo.FindEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	result := eventToDTO(*e)
	return &result, nil
}

func (s *EventService) CreateEvent(ctx context.Context, payload dto.CreateEventDTO) (uint64, error) {
	actor, err := authorize(ctx, s.logger, authz.EventsManage)
	if err != nil {
		return 0, err
	}
	event, err := eventFromDTO(payload)
	if err != nil {
		return 0, err
	}
	event.CriadoPor = null.Uint64From(actor.ID)

	var id uint64
	err = s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		id, err = s.eventRepo.CreateEvent(ctx, tx, event)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Evento criado", zap.Uint64("evento_id", id), zap.Uint64("criado_por", actor.ID))
	return id, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uint64, payload dto.UpdateEventDTO) error {
	if _, err := authorize(ctx, s.logger, authz.EventsManage); err != nil {
		return err
	}
	event, err := eventFromDTO(dto.CreateEventDTO(payload))
	if err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		return s.eventRepo.UpdateEvent(ctx, tx, id, event)
	})
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint64) error {
	if _, err := authorize(ctx, s.logger, authz.EventsManage); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
		return s.eventRepo.DeleteEvent(ctx, tx, id)
	})
}
