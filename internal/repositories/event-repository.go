package repositories

import (
	"context"
	"time"

	"academy-manager/internal/entities"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

const eventTable = "eventos"

var eventSelect = []string{
	"ev.id", "ev.titulo", "ev.descricao", "ev.data_inicio", "ev.data_fim", "ev.local", "ev.cor",
	"ev.tipo", "ev.participantes", "ev.criado_por", "ev.data_criacao", "u.username AS criado_por_nome",
}

type EventRepositoryInterface interface {
	GetEvents(ctx context.Context, start, end *time.Time) ([]entities.Event, error)
	GetUpcoming(ctx context.Context, from time.Time, limit uint64) ([]entities.Event, error)
	FindEvent(ctx context.Context, id uint64) (*entities.Event, error)
	CreateEvent(ctx context.Context, tx database.Querier, e entities.Event) (uint64, error)
	UpdateEvent(ctx context.Context, tx database.Querier, id uint64, e entities.Event) error
	DeleteEvent(ctx context.Context, tx database.Querier, id uint64) error
}

type EventRepository struct {
	storage database.Querier
	logger  *zap.Logger
}

func NewEventRepository(storage database.Querier, logger *zap.Logger) EventRepositoryInterface {
	return &EventRepository{storage: storage, logger: logger}
}

func scanEvent(r database.Row) entities.Event {
	return entities.Event{
		ID:            r.Uint64("id"),
		Titulo:        r.String("titulo"),
		Descricao:     r.NullString("descricao"),
		DataInicio:    r.Time("data_inicio"),
		DataFim:       r.Time("data_fim"),
		Local:         r.NullString("local"),
		Cor:           r.String("cor"),
		Tipo:          r.NullString("tipo"),
		Participantes: r.NullString("participantes"),
		CriadoPor:     r.NullUint64("criado_por"),
		DataCriacao:   r.NullTime("data_criacao"),
		CriadoPorNome: r.NullString("criado_por_nome"),
	}
}

func (r *EventRepository) selectEvents() sq.SelectBuilder {
	return r.storage.Builder().Select(eventSelect...).
		From("eventos ev").
		LeftJoin("users u ON u.id = ev.criado_por")
}

func (r *EventRepository) query(ctx context.Context, b sq.SelectBuilder) ([]entities.Event, error) {
	rows, err := r.storage.Query(ctx, b)
	if err != nil {
		return nil, err
	}
	events := make([]entities.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, scanEvent(row))
	}
	return events, nil
}

// GetEvents devolve os eventos que se sobrepõem ao intervalo [start, end]; limites nil ficam abertos.
func (r *EventRepository) GetEvents(ctx context.Context, start, end *time.Time) ([]entities.Event, error) {
	b := r.selectEvents()
	if start != nil {
		b = b.Where(sq.GtOrEq{"ev.data_fim": dbTime(*start)})
	}
	if end != nil {
		b = b.Where(sq.LtOrEq{"ev.data_inicio": dbTime(*end)})
	}
	return r.query(ctx, b.OrderBy("ev.data_inicio ASC"))
}

func (r *EventRepository) GetUpcoming(ctx context.Context, from time.Time, limit uint64) ([]entities.Event, error) {
	return r.query(ctx, r.selectEvents().
		Where(sq.GtOrEq{"ev.data_inicio": dbTime(from)}).
		OrderBy("ev.data_inicio ASC").
		Limit(limit))
}

func (r *EventRepository) FindEvent(ctx context.Context, id uint64) (*entities.Event, error) {
	row, err := r.storage.Get(ctx, r.selectEvents().Where(sq.Eq{"ev.id": id}))
	if err != nil {
		return nil, err
	}
	e := scanEvent(row)
	return &e, nil
}

func (r *EventRepository) CreateEvent(ctx context.Context, tx database.Querier, e entities.Event) (uint64, error) {
	return tx.Insert(ctx, tx.Builder().Insert(eventTable).
		Columns("titulo", "descricao", "data_inicio", "data_fim", "local", "cor", "tipo", "participantes", "criado_por").
		Values(e.Titulo, nullValue(e.Descricao), dbTime(e.DataInicio), dbTime(e.DataFim), nullValue(e.Local),
			e.Cor, nullValue(e.Tipo), nullValue(e.Participantes), nullUint(e.CriadoPor)))
}

func (r *EventRepository) UpdateEvent(ctx context.Context, tx database.Querier, id uint64, e entities.Event) error {
	affected, err := tx.Exec(ctx, tx.Builder().Update(eventTable).
		Set("titulo", e.Titulo).
		Set("descricao", nullValue(e.Descricao)).
		Set("data_inicio", dbTime(e.DataInicio)).
		Set("data_fim", dbTime(e.DataFim)).
		Set("local", nullValue(e.Local)).
		Set("cor", e.Cor).
		Set("tipo", nullValue(e.Tipo)).
		Set("participantes", nullValue(e.Participantes)).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, tx database.Querier, id uint64) error {
	affected, err := tx.Exec(ctx, tx.Builder().Delete(eventTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
