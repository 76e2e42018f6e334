package httpapi

import (
	"net/http"
	"strings"

	"safetynet-alerts/internal/domain"
	"safetynet-alerts/internal/service"

	"go.uber.org/zap"
)

// PersonHandler 居民相关端点
type PersonHandler struct {
	personService *service.PersonService
	logger        *zap.Logger
}

func NewPersonHandler(personService *service.PersonService, logger *zap.Logger) *PersonHandler {
	return &PersonHandler{personService: personService, logger: logger}
}

// GetPersons GET /persons
func (h *PersonHandler) GetPersons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.personService.GetPersons(r.Context()))
}

// GetOnePerson GET /person/{first_name}/{last_name}
func (h *PersonHandler) GetOnePerson(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/person/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	person, err := h.personService.GetOnePerson(r.Context(), parts[0], parts[1])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

// GetPersonInfoLastName GET /personInfo?last_name=
func (h *PersonHandler) GetPersonInfoLastName(w http.ResponseWriter, r *http.Request) {
	lastName := r.URL.Query().Get("last_name")
	out, err := h.personService.GetPersonsByLastName(r.Context(), lastName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetChildAlertList GET /childAlert?address=
func (h *PersonHandler) GetChildAlertList(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	out, err := h.personService.CreateChildAlertList(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCommunityEmail GET /communityEmail?city=
func (h *PersonHandler) GetCommunityEmail(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	out, err := h.personService.GetPersonsEmails(r.Context(), city)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// AddOnePerson POST /person
func (h *PersonHandler) AddOnePerson(w http.ResponseWriter, r *http.Request) {
	var person domain.Person
	if err := readBodyJSON(r, maxBodyBytes, &person); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid person payload"})
		return
	}
	created, err := h.personService.CreatePerson(r.Context(), person)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateOnePerson PUT /person
func (h *PersonHandler) UpdateOnePerson(w http.ResponseWriter, r *http.Request) {
	var person domain.Person
	if err := readBodyJSON(r, maxBodyBytes, &person); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid person payload"})
		return
	}
	updated, err := h.personService.UpdatePerson(r.Context(), person)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteOnePerson DELETE /person?first_name=&last_name=
func (h *PersonHandler) DeleteOnePerson(w http.ResponseWriter, r *http.Request) {
	firstName := r.URL.Query().Get("first_name")
	lastName := r.URL.Query().Get("last_name")
	if err := h.personService.DeleteOnePerson(r.Context(), firstName, lastName); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
