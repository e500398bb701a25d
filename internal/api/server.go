// Package api implements the booking REST surface.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/summit-events/rsvp-service/internal/booking"
)

// BookingRepository defines the interface for booking storage operations.
type BookingRepository interface {
	Put(ctx context.Context, item *booking.Item) error
	Get(ctx context.Context, email, category string) (*booking.Item, error)
	Update(ctx context.Context, email, category, name, surname string) (*booking.Item, error)
	Delete(ctx context.Context, email, category string) error
	ListAll(ctx context.Context) ([]*booking.Item, error)
	ListByEmail(ctx context.Context, email string) ([]*booking.Item, error)
	ListByCategory(ctx context.Context, category string) ([]*booking.Item, error)
}

// Record is the JSON wire shape of a booking. The category field is spelled
// "catergory" on the wire; the misspelling is part of the published contract
// and kept for client compatibility.
type Record struct {
	Name     string `json:"Name"`
	Surname  string `json:"Surname"`
	Email    string `json:"email"`
	Category string `json:"catergory"`
}

func recordFromItem(item *booking.Item) Record {
	return Record{
		Name:     item.Name,
		Surname:  item.Surname,
		Email:    item.Email,
		Category: item.Category,
	}
}

func recordsFromItems(items []*booking.Item) []Record {
	records := make([]Record, len(items))
	for i, item := range items {
		records[i] = recordFromItem(item)
	}
	return records
}

// Server handles booking HTTP requests.
type Server struct {
	repo   BookingRepository
	logger *slog.Logger
}

// NewServer creates a new Server.
func NewServer(repo BookingRepository, logger *slog.Logger) *Server {
	return &Server{
		repo:   repo,
		logger: logger,
	}
}

// Routes builds the router with CORS and common middleware.
func (s *Server) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: false,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		// Cache preflight requests for one day.
		MaxAge: 86400,
	}))
	router.Use(middleware.Recoverer)

	router.Route("/booking", func(r chi.Router) {
		r.Post("/", s.createBooking)
		r.Get("/", s.listBookings)
		r.Get("/email/{email}", s.listBookingsByEmail)
		r.Get("/category/{category}", s.listBookingsByCategory)
		r.Get("/{email}/{category}", s.getBooking)
		r.Put("/{email}/{category}", s.updateBooking)
		r.Delete("/{email}/{category}", s.deleteBooking)
	})
	router.Get("/health", s.health)

	return router
}

func (s *Server) createBooking(w http.ResponseWriter, req *http.Request) {
	var record Record
	if err := json.NewDecoder(req.Body).Decode(&record); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if field, ok := firstMissingField(record); !ok {
		s.writeError(w, http.StatusBadRequest, "Missing required field: "+field)
		return
	}

	item := &booking.Item{
		Email:    record.Email,
		Category: record.Category,
		Name:     record.Name,
		Surname:  record.Surname,
	}

	// No uniqueness check: a repeat create for the same (email, category)
	// overwrites the earlier record.
	if err := s.repo.Put(req.Context(), item); err != nil {
		s.logger.ErrorContext(req.Context(), "Failed to create booking",
			slog.String("email", record.Email),
			slog.String("error", err.Error()),
		)
		s.writeError(w, http.StatusInternalServerError, "Failed to create booking: "+err.Error())
		return
	}

	s.writeJSON(w, http.StatusCreated, recordFromItem(item))
}

func (s *Server) listBookings(w http.ResponseWriter, req *http.Request) {
	items, err := s.repo.ListAll(req.Context())
	if err != nil {
		s.logger.ErrorContext(req.Context(), "Failed to retrieve bookings",
			slog.String("error", err.Error()),
		)
		s.writeError(w, http.StatusInternalServerError, "Failed to retrieve bookings: "+err.Error())
		return
	}

	s.logger.InfoContext(req.Context(), "Retrieved bookings", slog.Int("count", len(items)))
	s.writeJSON(w, http.StatusOK, recordsFromItems(items))
}

func (s *Server) getBooking(w http.ResponseWriter, req *http.Request) {
	email := chi.URLParam(req, "email")
	category := chi.URLParam(req, "category")

	item, err := s.repo.Get(req.Context(), email, category)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.writeError(w, http.StatusNotFound,
				fmt.Sprintf("Booking with email %s and category %s not found", email, category))
			return
		}
		s.logger.ErrorContext(req.Context(), "Failed to retrieve booking",
			slog.String("email", email),
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		s.writeError(w, http.StatusInternalServerError, "Failed to retrieve booking: "+err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, recordFromItem(item))
}

func (s *Server) updateBooking(w http.ResponseWriter, req *http.Request) {
	email := chi.URLParam(req, "email")
	category := chi.URLParam(req, "category")

	var record Record
	if err := json.NewDecoder(req.Body).Decode(&record); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Identity comes from the path; only the name fields are updatable.
	if record.Name == "" {
		s.writeError(w, http.StatusBadRequest, "Missing required field: Name")
		return
	}
	if record.Surname == "" {
		s.writeError(w, http.StatusBadRequest, "Missing required field: Surname")
		return
	}

	item, err := s.repo.Update(req.Context(), email, category, record.Name, record.Surname)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.writeError(w, http.StatusNotFound,
				fmt.Sprintf("Booking with email %s and category %s not found", email, category))
			return
		}
		s.logger.ErrorContext(req.Context(), "Failed to update booking",
			slog.String("email", email),
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		s.writeError(w, http.StatusInternalServerError, "Failed to update booking: "+err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, recordFromItem(item))
}

func (s *Server) deleteBooking(w http.ResponseWriter, req *http.Request) {
	email := chi.URLParam(req, "email")
	category := chi.URLParam(req, "category")

	err := s.repo.Delete(req.Context(), email, category)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.writeError(w, http.StatusNotFound,
				fmt.Sprintf("Booking with email %s and category %s not found", email, category))
			return
		}
		s.logger.ErrorContext(req.Context(), "Failed to delete booking",
			slog.String("email", email),
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		s.writeError(w, http.StatusInternalServerError, "Failed to delete booking: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listBookingsByEmail(w http.ResponseWriter, req *http.Request) {
	email := chi.URLParam(req, "email")

	items, err := s.repo.ListByEmail(req.Context(), email)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("No bookings found for email %s", email))
			return
		}
		s.logger.ErrorContext(req.Context(), "Failed to retrieve bookings by email",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		s.writeError(w, http.StatusInternalServerError, "Failed to retrieve bookings: "+err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, recordsFromItems(items))
}

func (s *Server) listBookingsByCategory(w http.ResponseWriter, req *http.Request) {
	category := chi.URLParam(req, "category")

	items, err := s.repo.ListByCategory(req.Context(), category)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("No bookings found for category %s", category))
			return
		}
		s.logger.ErrorContext(req.Context(), "Failed to retrieve bookings by category",
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		s.writeError(w, http.StatusInternalServerError, "Failed to retrieve bookings: "+err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, recordsFromItems(items))
}

func (s *Server) health(w http.ResponseWriter, req *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "RSVP API",
	})
}

// firstMissingField checks the create payload's required fields in fixed
// order: Name, Surname, email, catergory. Returns ok=false with the first
// missing field's wire name.
func firstMissingField(record Record) (string, bool) {
	fields := []struct {
		name  string
		value string
	}{
		{"Name", record.Name},
		{"Surname", record.Surname},
		{"email", record.Email},
		{"catergory", record.Category},
	}
	for _, field := range fields {
		if field.value == "" {
			return field.name, false
		}
	}
	return "", true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}
