package services

import (
	"encoding/json"
	"sync"

	apptmodels "github.com/bitecare/clinic-backend/internal/appointment/models"
	authmodels "github.com/bitecare/clinic-backend/internal/auth/models"
	"github.com/bitecare/clinic-backend/internal/common/feed"
	"github.com/bitecare/clinic-backend/internal/staff/models"
	"github.com/bitecare/clinic-backend/ws"
)

const feedErrorMessage = "Live updates unavailable. Refresh to reconnect."

// DashboardService subscribes to the appointment and user feeds and keeps
// the latest reduced summaries. Every update is a full reduce over the
// entire snapshot; there is no incremental maintenance.
type DashboardService struct {
	apptFeed *feed.Feed[[]apptmodels.Appointment]
	userFeed *feed.Feed[[]authmodels.User]
	hub      *ws.Hub

	mu           sync.RWMutex
	unsubs       []func()
	appointments models.AppointmentSummary
	channels     models.ChannelSummary
	patients     models.PatientSummary
	apptFailed   bool
	userFailed   bool
}

func NewDashboardService(apptFeed *feed.Feed[[]apptmodels.Appointment], userFeed *feed.Feed[[]authmodels.User], hub *ws.Hub) *DashboardService {
	return &DashboardService{apptFeed: apptFeed, userFeed: userFeed, hub: hub}
}

// ReduceAppointments folds a full snapshot into per-status counts. Legacy
// status spellings are normalized before counting.
func ReduceAppointments(snapshot []apptmodels.Appointment) models.AppointmentSummary {
	var sum models.AppointmentSummary
	for _, a := range snapshot {
		sum.Total++
		status, err := apptmodels.ParseStatus(string(a.Status))
		if err != nil {
			continue
		}
		switch status {
		case apptmodels.StatusPending:
			sum.Pending++
		case apptmodels.StatusConfirmed:
			sum.Confirmed++
		case apptmodels.StatusInConsultation:
			sum.InConsultation++
		case apptmodels.StatusCompleted:
			sum.Completed++
		case apptmodels.StatusCancelled:
			sum.Cancelled++
		case apptmodels.StatusNoShow:
			sum.NoShow++
		}
	}
	return sum
}

// ReduceChannels folds a full snapshot into intake-channel counts.
func ReduceChannels(snapshot []apptmodels.Appointment) models.ChannelSummary {
	var sum models.ChannelSummary
	for _, a := range snapshot {
		switch a.Channel {
		case apptmodels.ChannelWalkIn:
			sum.WalkIn++
		default:
			sum.Online++
		}
	}
	return sum
}

// ReduceUsers folds a full user snapshot into patient counts by sex.
func ReduceUsers(snapshot []authmodels.User) models.PatientSummary {
	var sum models.PatientSummary
	for _, u := range snapshot {
		if u.Role != "patient" {
			continue
		}
		sum.Total++
		switch u.Sex {
		case "Male":
			sum.Male++
		case "Female":
			sum.Female++
		}
	}
	return sum
}

// Subscribe attaches the aggregator to both feeds, detaching any handlers
// left from a previous call first. A feed error puts the matching widgets
// into a fixed error state; they stay frozen until Subscribe is called
// again.
func (s *DashboardService) Subscribe() {
	s.mu.Lock()
	prev := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()
	for _, unsub := range prev {
		unsub()
	}

	apptUnsub := s.apptFeed.Subscribe(func(ev feed.Event[[]apptmodels.Appointment]) {
		s.mu.Lock()
		if ev.Err != nil {
			s.apptFailed = true
		} else {
			s.apptFailed = false
			s.appointments = ReduceAppointments(ev.Snapshot)
			s.channels = ReduceChannels(ev.Snapshot)
		}
		s.mu.Unlock()
		s.broadcast()
	})
	userUnsub := s.userFeed.Subscribe(func(ev feed.Event[[]authmodels.User]) {
		s.mu.Lock()
		if ev.Err != nil {
			s.userFailed = true
		} else {
			s.userFailed = false
			s.patients = ReduceUsers(ev.Snapshot)
		}
		s.mu.Unlock()
		s.broadcast()
	})

	s.mu.Lock()
	s.unsubs = []func(){apptUnsub, userUnsub}
	s.mu.Unlock()
}

// Summary returns the latest reduced dashboard state.
func (s *DashboardService) Summary() models.DashboardData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data := models.DashboardData{
		Appointments: s.appointments,
		Patients:     s.patients,
		Channels:     s.channels,
	}
	if s.apptFailed || s.userFailed {
		data.Error = feedErrorMessage
	}
	return data
}

func (s *DashboardService) broadcast() {
	if s.hub == nil {
		return
	}
	msg, err := json.Marshal(map[string]interface{}{
		"type": "dashboard_update",
		"data": s.Summary(),
	})
	if err != nil {
		return
	}
	s.hub.Broadcast <- msg
}
