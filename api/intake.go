package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/intake"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/validation"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/models"
)

const maxBodyBytes = 64 << 10

type IntakeHandler struct {
	svc   *intake.Service
	debug bool
}

// NewIntakeHandler creates the handler for the intake endpoints. With debug
// set, internal errors carry a stack trace.
func NewIntakeHandler(svc *intake.Service, debug bool) *IntakeHandler {
	return &IntakeHandler{svc: svc, debug: debug}
}

type intakeData struct {
	MatchedCompany models.MatchedCompany `json:"matchedCompany"`
}

// readPayload reads and decodes the request body. It writes the error
// response itself and returns false when the body is unusable.
func readPayload(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeMessage(w, http.StatusBadRequest, "Request body too large")
			return nil, false
		}
		writeMessage(w, http.StatusBadRequest, validation.ErrMalformedBody.Error())
		return nil, false
	}

	payload, err := validation.DecodeBody(raw)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return payload, true
}

func (h *IntakeHandler) Intake(w http.ResponseWriter, r *http.Request) {
	payload, ok := readPayload(w, r)
	if !ok {
		return
	}

	app, err := h.svc.SubmitApplication(r.Context(), payload)
	if err != nil {
		writeError(w, r, err, h.debug)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: intake.MsgIntakeSuccess,
		Data:    intakeData{MatchedCompany: app.MatchedCompany},
	})
}

func (h *IntakeHandler) CheckUserExists(w http.ResponseWriter, r *http.Request) {
	payload, ok := readPayload(w, r)
	if !ok {
		return
	}

	exists, err := h.svc.CheckUserExists(r.Context(), payload)
	if err != nil {
		writeError(w, r, err, h.debug)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, UserExists: &exists})
}

func (h *IntakeHandler) ContractorRequest(w http.ResponseWriter, r *http.Request) {
	payload, ok := readPayload(w, r)
	if !ok {
		return
	}

	authEmail, _ := r.Context().Value(CtxAuthEmail).(string)
	if _, err := h.svc.RequestToJoin(r.Context(), payload, authEmail); err != nil {
		writeError(w, r, err, h.debug)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Message: intake.MsgContractorSuccess})
}
