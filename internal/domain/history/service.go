package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrNotFound = errors.New("history not found")

	// ErrStoreFailure oculta la causa real al caller; la causa solo se loguea.
	ErrStoreFailure = errors.New("history store failure")
)

type Service struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "history_service").Logger(),
		now:  time.Now,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (Transfer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Transfer{}, ErrNotFound
	}

	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Transfer{}, s.lookupErr("get", id, err)
	}
	return ToTransfer(r), nil
}

// GetByPatientID nunca falla por "sin resultados": devuelve lista vacía.
func (s *Service) GetByPatientID(ctx context.Context, patientID int) ([]Transfer, error) {
	items, err := s.repo.FindByPatientID(ctx, patientID)
	if err != nil {
		s.log.Error().Err(err).Int("patient_id", patientID).Msg("list histories by patient failed")
		return nil, ErrStoreFailure
	}
	return ToTransfers(items), nil
}

// GetAll distingue colección vacía (éxito) de fallo del store (ErrStoreFailure).
func (s *Service) GetAll(ctx context.Context) ([]Transfer, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list histories failed")
		return nil, ErrStoreFailure
	}
	return ToTransfers(items), nil
}

// Create ignora el id y la creationDate del caller: el id lo genera el store
// y la fecha es el día actual del servidor en UTC.
func (s *Service) Create(ctx context.Context, in Transfer) (Transfer, error) {
	r := ToRecord(in)
	r.ID = ""
	r.CreationDate = NewDate(s.now().UTC()).Time

	saved, err := s.repo.Save(ctx, r)
	if err != nil {
		s.log.Error().Err(err).Int("patient_id", r.PatientID).Msg("create history failed")
		return Transfer{}, ErrStoreFailure
	}
	return ToTransfer(saved), nil
}

// Update reemplaza el documento completo; no hace merge con lo almacenado.
// El id del path pisa cualquier id del payload.
func (s *Service) Update(ctx context.Context, id string, in Transfer) (Transfer, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return Transfer{}, err
	}

	in.ID = strings.TrimSpace(id)
	saved, err := s.repo.Save(ctx, ToRecord(in))
	if err != nil {
		s.log.Error().Err(err).Str("history_id", in.ID).Msg("update history failed")
		return Transfer{}, ErrStoreFailure
	}
	return ToTransfer(saved), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	id = strings.TrimSpace(id)
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.lookupErr("delete", id, err)
	}
	return nil
}

func (s *Service) lookupErr(op, id string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	s.log.Error().Err(err).Str("op", op).Str("history_id", id).Msg("history store call failed")
	return ErrStoreFailure
}
