package history

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patHistory", func(hr chi.Router) {
		// ?patId= es obligatorio
		hr.Get("/", listByPatientHandler(svc))
		hr.Get("/all", listAllHandler(svc))

		hr.Post("/add", createHandler(svc))
		hr.Put("/update/{historyID}", updateHandler(svc))

		hr.Get("/{historyID}", getHandler(svc))
		hr.Delete("/{historyID}", deleteHandler(svc))
	})
}

var errInvalidForm = errors.New("invalid form")

const formContentType = "application/x-www-form-urlencoded"

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "historyID")
		zerolog.Ctx(r.Context()).Info().Str("history_id", id).Msg("history requested")

		h, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err, "failed to get patient history")
			return
		}

		writeJSON(w, http.StatusOK, h)
	}
}

func listByPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("patId"))
		if raw == "" {
			http.Error(w, "patId required", http.StatusBadRequest)
			return
		}
		patientID, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "patId must be an integer", http.StatusBadRequest)
			return
		}
		zerolog.Ctx(r.Context()).Info().Int("patient_id", patientID).Msg("histories for patient requested")

		items, err := svc.GetByPatientID(r.Context(), patientID)
		if err != nil {
			writeError(w, err, "failed to list patient histories")
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func listAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("list of patient histories requested")

		items, err := svc.GetAll(r.Context())
		if err != nil {
			writeError(w, err, "failed to list patient histories")
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

// createHandler recibe application/x-www-form-urlencoded (campos id, patId, patient, creationDate, notes).
func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !isFormRequest(r) {
			http.Error(w, "content type must be "+formContentType, http.StatusUnsupportedMediaType)
			return
		}

		in, err := decodeHistoryForm(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		created, err := svc.Create(r.Context(), in)
		if err != nil {
			http.Error(w, "failed to add patient history", http.StatusInternalServerError)
			return
		}
		evt := zerolog.Ctx(r.Context()).Info().Str("history_id", created.ID)
		if created.CreationDate != nil {
			evt = evt.Str("creation_date", created.CreationDate.String())
		}
		evt.Msg("created patient history")

		writeJSON(w, http.StatusCreated, created)
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "historyID")
		log := zerolog.Ctx(r.Context())
		log.Info().Str("history_id", id).Msg("updating patient history")

		var in Transfer
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, err, "failed to update patient history")
			return
		}
		log.Info().Str("history_id", id).Msg("updated patient history")

		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "historyID")
		log := zerolog.Ctx(r.Context())
		log.Info().Str("history_id", id).Msg("deleting patient history")

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err, "failed to delete patient history")
			return
		}
		log.Info().Str("history_id", id).Msg("deleted patient history")

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("patient history deleted successfully"))
	}
}

// isFormRequest exige Content-Type form-urlencoded; un body JSON no se parsea
// con ParseForm y terminaría como alta vacía.
func isFormRequest(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == formContentType
}

func decodeHistoryForm(r *http.Request) (Transfer, error) {
	if err := r.ParseForm(); err != nil {
		return Transfer{}, errInvalidForm
	}

	in := Transfer{
		ID:          strings.TrimSpace(r.Form.Get("id")),
		PatientName: strings.TrimSpace(r.Form.Get("patient")),
		Notes:       r.Form.Get("notes"),
	}

	if v := strings.TrimSpace(r.Form.Get("patId")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Transfer{}, errors.New("patId must be an integer")
		}
		in.PatientID = n
	}

	// Se valida el formato aunque el service lo vaya a pisar.
	if v := strings.TrimSpace(r.Form.Get("creationDate")); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			return Transfer{}, errors.New("creationDate must be YYYY-MM-DD")
		}
		in.CreationDate = &d
	}

	return in, nil
}

func writeError(w http.ResponseWriter, err error, failureMsg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "patient history not found", http.StatusNotFound)
	default:
		http.Error(w, failureMsg, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
