package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/cloud-ru/deposit-calculator-go/internal/metrics"
	"github.com/cloud-ru/deposit-calculator-go/internal/tools"
)

const maxBodyBytes = 1 << 16

// Server отдает инструменты калькулятора по HTTP
type Server struct {
	tools map[string]tools.ToolHandler
	log   *logrus.Logger
}

// New создает сервер для набора инструментов
func New(registry map[string]tools.ToolHandler, log *logrus.Logger) *Server {
	return &Server{tools: registry, log: log}
}

// Router собирает маршруты API
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/products", s.invoke(tools.ListDepositProducts)).Methods(http.MethodGet)
	r.HandleFunc("/calculate", s.invoke(tools.CalculateDepositReturn)).Methods(http.MethodPost)
	r.HandleFunc("/schedule", s.invoke(tools.DepositGrowthSchedule)).Methods(http.MethodPost)
	r.HandleFunc("/compare", s.invoke(tools.CompareInterestConventions)).Methods(http.MethodPost)

	r.HandleFunc("/tools", s.listTools).Methods(http.MethodGet)
	r.HandleFunc("/tools/{name}", s.dispatch).Methods(http.MethodPost)

	return r
}

// ListenAndServe runs the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.log.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info("Server exited")
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tools": tools.Names(s.tools)})
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if _, ok := s.tools[name]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tool %q", name))
		return
	}
	s.invoke(name)(w, r)
}

func (s *Server) invoke(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler, ok := s.tools[name]
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tool %q", name))
			return
		}

		params := map[string]interface{}{}
		if r.Method == http.MethodPost {
			dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			dec.UseNumber()
			// Пустое тело означает вызов без параметров
			if err := dec.Decode(&params); err != nil && !errors.Is(err, io.EOF) {
				metrics.APICalls.WithLabelValues("http", name, "bad_request").Inc()
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}

		result, err := handler(r.Context(), params)
		if err != nil {
			status := StatusFor(err)
			if status == http.StatusInternalServerError {
				s.log.WithError(err).WithField("tool", name).Error("tool failed")
			}
			metrics.APICalls.WithLabelValues("http", name, "error").Inc()
			writeError(w, status, err.Error())
			return
		}

		metrics.APICalls.WithLabelValues("http", name, "success").Inc()
		writeJSON(w, http.StatusOK, result)
	}
}

// StatusFor maps a tool error to an HTTP status code.
func StatusFor(err error) int {
	switch tools.ErrorType(err) {
	case "validation":
		return http.StatusBadRequest
	case "unknown_product":
		return http.StatusNotFound
	case "tenor_not_offered":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
