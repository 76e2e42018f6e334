package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// ServeHTTP 每个请求分配 X-Request-Id 并记一条访问日志
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	requestID := req.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", requestID)

	start := time.Now()
	r.mux.ServeHTTP(w, req)
	r.logger.Debug("request handled",
		zap.String("request_id", requestID),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Duration("duration", time.Since(start)))
}

// RegisterPersonRoutes 居民 CRUD + personInfo / childAlert / communityEmail
func (r *Router) RegisterPersonRoutes(h *PersonHandler) {
	r.Handle("/persons", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GetPersons(w, req)
	})

	// /person/{first_name}/{last_name}
	r.Handle("/person/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GetOnePerson(w, req)
	})

	r.Handle("/person", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			h.AddOnePerson(w, req)
		case http.MethodPut:
			h.UpdateOnePerson(w, req)
		case http.MethodDelete:
			h.DeleteOnePerson(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle("/personInfo", h.GetPersonInfoLastName)
	r.Handle("/childAlert", h.GetChildAlertList)
	r.Handle("/communityEmail", h.GetCommunityEmail)
}

// RegisterFireStationRoutes 消防站 CRUD + coverage / phoneAlert / fire / flood + 导出
func (r *Router) RegisterFireStationRoutes(h *FireStationHandler) {
	r.Handle("/firestations", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GetFireStations(w, req)
	})

	r.Handle("/firestation", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.GetFireStationPersonsList(w, req)
		case http.MethodPost:
			h.AddFireStation(w, req)
		case http.MethodPut:
			h.UpdateFireStation(w, req)
		case http.MethodDelete:
			h.DeleteFireStation(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle("/firestation/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.ExportCoverageRoster(w, req)
	})

	r.Handle("/phoneAlert", h.GetPhoneList)
	r.Handle("/fire", h.GetPersonsListInCaseOfFire)
	r.Handle("/flood/stations", h.GetAddressesAndPersonsCovered)
}

// RegisterMedicalRecordRoutes 医疗档案 CRUD
func (r *Router) RegisterMedicalRecordRoutes(h *MedicalRecordHandler) {
	r.Handle("/medicalrecords", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GetMedicalRecords(w, req)
	})

	r.Handle("/medicalrecord", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			h.AddMedicalRecord(w, req)
		case http.MethodPut:
			h.UpdateMedicalRecord(w, req)
		case http.MethodDelete:
			h.DeleteMedicalRecord(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}
