package services

import (
	"errors"
	"testing"
	"time"

	apptmodels "github.com/bitecare/clinic-backend/internal/appointment/models"
	authmodels "github.com/bitecare/clinic-backend/internal/auth/models"
	"github.com/bitecare/clinic-backend/internal/common/feed"
	"github.com/bitecare/clinic-backend/ws"
)

func TestReduceUsersBySex(t *testing.T) {
	snapshot := []authmodels.User{
		{UID: "u1", Role: "patient", Sex: "Male"},
		{UID: "u2", Role: "patient", Sex: "Female"},
		{UID: "u3", Role: "patient", Sex: "Male"},
	}
	sum := ReduceUsers(snapshot)
	if sum.Total != 3 || sum.Male != 2 || sum.Female != 1 {
		t.Errorf("ReduceUsers = %+v, want {3 2 1}", sum)
	}
}

func TestReduceUsersSkipsStaff(t *testing.T) {
	snapshot := []authmodels.User{
		{UID: "u1", Role: "patient", Sex: "Male"},
		{UID: "s1", Role: "staff", Sex: "Female"},
	}
	sum := ReduceUsers(snapshot)
	if sum.Total != 1 || sum.Female != 0 {
		t.Errorf("ReduceUsers = %+v, staff must not be counted", sum)
	}
}

func TestReduceAppointmentsNormalizesStatuses(t *testing.T) {
	snapshot := []apptmodels.Appointment{
		{Status: "Pending"},
		{Status: "Confirmed"},
		{Status: "no-show"}, // legacy spelling in old records
		{Status: "No Show"},
		{Status: "In-Consultation"},
		{Status: "Cancelled"},
		{Status: "Completed"},
	}
	sum := ReduceAppointments(snapshot)
	if sum.Total != 7 {
		t.Errorf("total = %d, want 7", sum.Total)
	}
	if sum.NoShow != 2 {
		t.Errorf("no_show = %d, want 2 (both spellings)", sum.NoShow)
	}
	if sum.Pending != 1 || sum.Confirmed != 1 || sum.InConsultation != 1 || sum.Cancelled != 1 || sum.Completed != 1 {
		t.Errorf("per-status counts wrong: %+v", sum)
	}
}

func TestReduceChannels(t *testing.T) {
	snapshot := []apptmodels.Appointment{
		{Channel: apptmodels.ChannelOnline},
		{Channel: apptmodels.ChannelWalkIn},
		{Channel: apptmodels.ChannelOnline},
	}
	sum := ReduceChannels(snapshot)
	if sum.Online != 2 || sum.WalkIn != 1 {
		t.Errorf("ReduceChannels = %+v", sum)
	}
}

func TestDashboardRecomputesOnEveryUpdate(t *testing.T) {
	apptFeed := feed.New[[]apptmodels.Appointment]()
	userFeed := feed.New[[]authmodels.User]()
	svc := NewDashboardService(apptFeed, userFeed, nil)
	svc.Subscribe()

	apptFeed.Publish([]apptmodels.Appointment{{Status: "Pending"}})
	if got := svc.Summary().Appointments.Total; got != 1 {
		t.Fatalf("total after first publish = %d, want 1", got)
	}

	apptFeed.Publish([]apptmodels.Appointment{{Status: "Pending"}, {Status: "Completed"}})
	sum := svc.Summary().Appointments
	if sum.Total != 2 || sum.Completed != 1 {
		t.Errorf("summary after second publish = %+v", sum)
	}
}

func TestDashboardFeedErrorFreezesUntilResubscribe(t *testing.T) {
	apptFeed := feed.New[[]apptmodels.Appointment]()
	userFeed := feed.New[[]authmodels.User]()
	svc := NewDashboardService(apptFeed, userFeed, nil)
	svc.Subscribe()

	apptFeed.Publish([]apptmodels.Appointment{{Status: "Pending"}})
	apptFeed.Fail(errors.New("listener detached"))

	if svc.Summary().Error == "" {
		t.Error("summary should report the fixed error state")
	}

	// The failed feed dropped its subscribers; updates must not arrive.
	apptFeed.Publish([]apptmodels.Appointment{{Status: "Pending"}, {Status: "Pending"}})
	if got := svc.Summary().Appointments.Total; got != 1 {
		t.Errorf("total after failed feed = %d, want frozen at 1", got)
	}

	// Resubscribing clears the error on the next event.
	svc.Subscribe()
	apptFeed.Publish([]apptmodels.Appointment{{Status: "Pending"}, {Status: "Pending"}})
	if got := svc.Summary().Appointments.Total; got != 2 {
		t.Errorf("total after resubscribe = %d, want 2", got)
	}
	if svc.Summary().Error != "" {
		t.Error("error state should clear after a successful update")
	}
}

func TestResubscribeDetachesPreviousHandlers(t *testing.T) {
	apptFeed := feed.New[[]apptmodels.Appointment]()
	userFeed := feed.New[[]authmodels.User]()
	hub := ws.NewHub()
	go hub.Run()
	svc := NewDashboardService(apptFeed, userFeed, hub)

	svc.Subscribe()
	svc.Subscribe()
	svc.Subscribe()

	client := &ws.Client{Send: make(chan []byte, 16)}
	hub.Register <- client

	apptFeed.Publish([]apptmodels.Appointment{{Status: "Pending"}})
	time.Sleep(50 * time.Millisecond)

	if got := len(client.Send); got != 1 {
		t.Errorf("broadcasts after one publish = %d, want 1 (stale handlers must be detached)", got)
	}
}
