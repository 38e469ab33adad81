// Package streak tracks consecutive daily visits.
package streak

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/versetab/verse-tab-api/internal/store"
	"github.com/versetab/verse-tab-api/pkg/response"
)

type Record struct {
	Count         int    `json:"count"`
	LastVisitDate string `json:"last_visit_date"`
}

type Service struct {
	kv  store.KV
	now func() time.Time
}

func NewService(kv store.KV) *Service {
	return &Service{kv: kv, now: time.Now}
}

// RecordVisit updates the streak for a visit today: same day is a no-op,
// yesterday extends the streak, anything older restarts it at 1.
func (s *Service) RecordVisit(ctx context.Context) Record {
	var rec Record
	if _, err := s.kv.Get(ctx, store.KeyStreak, &rec); err != nil {
		log.Printf("failed to read streak: %v", err)
	}

	today := s.now().UTC().Format("2006-01-02")
	yesterday := s.now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	switch rec.LastVisitDate {
	case today:
		return rec
	case yesterday:
		rec.Count++
	default:
		rec.Count = 1
	}
	rec.LastVisitDate = today

	if err := s.kv.Set(ctx, store.KeyStreak, rec); err != nil {
		log.Printf("failed to save streak: %v", err)
	}
	return rec
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) Handler {
	return Handler{service: service}
}

func (h *Handler) GetStreakHandler(w http.ResponseWriter, r *http.Request) {
	rec := h.service.RecordVisit(r.Context())
	response.Success(w, rec, "successfully")
}
