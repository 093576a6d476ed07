package workflow

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var monday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

func service() *domain.ServiceDescriptor {
	return &domain.ServiceDescriptor{
		ID:              10,
		Name:            "Manicure",
		DurationMinutes: 60,
		ProfessionalIDs: []int64{1, 2, 3},
		LocationIDs:     []int64{100, 200},
		Price:           1500,
	}
}

// apply применяет события по очереди и падает на первой ошибке
func apply(t *testing.T, s Snapshot, events ...Event) Snapshot {
	t.Helper()
	for _, e := range events {
		var err error
		s, err = Transition(s, e)
		require.NoError(t, err, e.Name())
	}
	return s
}

func toConfirming(t *testing.T) Snapshot {
	return apply(t, New(),
		ServiceChosen{Service: service()},
		LocationChosen{LocationID: 100, Qualified: []int64{1, 2}},
		ProfessionalChosen{ProfessionalID: 2},
		DateChosen{Date: monday, Offered: true},
		TimeChosen{Time: types.MustTimeString("10:00"), Offered: true},
	)
}

func TestTransition_ShortServiceAccepted(t *testing.T) {
	short := service()
	short.DurationMinutes = 1

	s, err := Transition(New(), ServiceChosen{Service: short})

	require.NoError(t, err)
	assert.Equal(t, StateSelectingLocation, s.State)
	assert.Equal(t, 1, s.Selection.Service.DurationMinutes)
}

func TestTransition_HappyPathWithProfessionalStep(t *testing.T) {
	s := New()
	assert.Equal(t, StateSelectingService, s.State)

	s = apply(t, s, ServiceChosen{Service: service()})
	assert.Equal(t, StateSelectingLocation, s.State)

	s = apply(t, s, LocationChosen{LocationID: 100, Qualified: []int64{1, 2}})
	assert.Equal(t, StateSelectingProfessional, s.State)
	assert.Equal(t, []int64{1, 2}, s.Qualified)

	s = apply(t, s, ProfessionalChosen{ProfessionalID: 2})
	assert.Equal(t, StateSelectingDateTime, s.State)

	s = apply(t, s, DateChosen{Date: monday.Add(15 * time.Hour), Offered: true})
	assert.Equal(t, StateSelectingDateTime, s.State)
	assert.Equal(t, monday, *s.Selection.Date)

	s = apply(t, s, TimeChosen{Time: types.MustTimeString("10:00"), Offered: true})
	assert.Equal(t, StateConfirming, s.State)
	assert.True(t, s.Selection.IsComplete())

	s = apply(t, s, ConfirmSucceeded{BookingID: 77})
	assert.Equal(t, StateConfirmed, s.State)
	assert.Equal(t, int64(77), s.BookingID)
}

func TestTransition_SingleQualifiedSkipsProfessionalStep(t *testing.T) {
	s := apply(t, New(),
		ServiceChosen{Service: service()},
		LocationChosen{LocationID: 200, Qualified: []int64{3}},
	)

	assert.Equal(t, StateSelectingDateTime, s.State)
	assert.Equal(t, int64(3), s.Selection.ProfessionalID)
}

func TestTransition_LocationChosen(t *testing.T) {
	s := apply(t, New(), ServiceChosen{Service: service()})

	t.Run("location outside service", func(t *testing.T) {
		next, err := Transition(s, LocationChosen{LocationID: 999, Qualified: []int64{1}})
		assert.ErrorIs(t, err, ErrLocationNotOffered)
		assert.Equal(t, s, next)
	})

	t.Run("no qualified professionals stays on location", func(t *testing.T) {
		next, err := Transition(s, LocationChosen{LocationID: 100, Qualified: nil})
		assert.ErrorIs(t, err, ErrNoQualifiedProfessionals)
		assert.Equal(t, StateSelectingLocation, next.State)
	})

	t.Run("professionals not offering the service are dropped", func(t *testing.T) {
		next, err := Transition(s, LocationChosen{LocationID: 100, Qualified: []int64{1, 42, 1}})
		require.NoError(t, err)
		assert.Equal(t, StateSelectingDateTime, next.State)
		assert.Equal(t, int64(1), next.Selection.ProfessionalID)
	})
}

func TestTransition_RejectsNotOfferedChoices(t *testing.T) {
	s := apply(t, New(),
		ServiceChosen{Service: service()},
		LocationChosen{LocationID: 100, Qualified: []int64{1, 2}},
	)

	_, err := Transition(s, ProfessionalChosen{ProfessionalID: 3})
	assert.ErrorIs(t, err, ErrProfessionalNotQualified)

	s = apply(t, s, ProfessionalChosen{ProfessionalID: 1})

	_, err = Transition(s, DateChosen{Date: monday, Offered: false})
	assert.ErrorIs(t, err, ErrDateNotOffered)

	s = apply(t, s, DateChosen{Date: monday, Offered: true})

	_, err = Transition(s, TimeChosen{Time: types.MustTimeString("09:00"), Offered: false})
	assert.ErrorIs(t, err, ErrTimeNotOffered)
}

func TestTransition_InvalidTransitions(t *testing.T) {
	confirming := toConfirming(t)
	selectingDateTime := apply(t, New(),
		ServiceChosen{Service: service()},
		LocationChosen{LocationID: 100, Qualified: []int64{1}},
	)

	tests := []struct {
		name  string
		state Snapshot
		event Event
	}{
		{"location before service", New(), LocationChosen{LocationID: 100, Qualified: []int64{1}}},
		{"professional before location", apply(t, New(), ServiceChosen{Service: service()}), ProfessionalChosen{ProfessionalID: 1}},
		{"date before professional", New(), DateChosen{Date: monday, Offered: true}},
		{"time before date", selectingDateTime, TimeChosen{Time: 600, Offered: true}},
		{"confirm outside confirming", selectingDateTime, ConfirmSucceeded{BookingID: 1}},
		{"confirm without booking id", confirming, ConfirmSucceeded{}},
		{"slot taken outside confirming", selectingDateTime, SlotTaken{}},
		{"nil service", New(), ServiceChosen{}},
		{"invalid service", New(), ServiceChosen{Service: &domain.ServiceDescriptor{ID: 1}}},
		{"service chosen twice", confirming, ServiceChosen{Service: service()}},
		{"event after confirmed", apply(t, confirming, ConfirmSucceeded{BookingID: 1}), Back{}},
		{"event after abandoned", apply(t, New(), Exit{}), ServiceChosen{Service: service()}},
		{"unknown state", Snapshot{State: "paused"}, Exit{}},
		{"nil event", New(), nil},
		{"nil event when confirming", confirming, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Transition(tt.state, tt.event)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.state, next)
		})
	}
}

func TestTransition_Back(t *testing.T) {
	t.Run("from service abandons", func(t *testing.T) {
		s := apply(t, New(), Back{})
		assert.Equal(t, StateAbandoned, s.State)
	})

	t.Run("from location to service", func(t *testing.T) {
		s := apply(t, New(), ServiceChosen{Service: service()}, Back{})
		assert.Equal(t, StateSelectingService, s.State)
	})

	t.Run("from professional to location", func(t *testing.T) {
		s := apply(t, New(),
			ServiceChosen{Service: service()},
			LocationChosen{LocationID: 100, Qualified: []int64{1, 2}},
			Back{},
		)
		assert.Equal(t, StateSelectingLocation, s.State)
		assert.Zero(t, s.Selection.LocationID)
	})

	t.Run("from date time shows professional step when several qualify now", func(t *testing.T) {
		// при выборе места был один специалист, к моменту возврата стало двое
		s := apply(t, New(),
			ServiceChosen{Service: service()},
			LocationChosen{LocationID: 100, Qualified: []int64{1}},
			DateChosen{Date: monday, Offered: true},
			Back{Qualified: []int64{1, 2}},
		)
		assert.Equal(t, StateSelectingProfessional, s.State)
		assert.Equal(t, int64(100), s.Selection.LocationID)
		assert.Zero(t, s.Selection.ProfessionalID)
		assert.Nil(t, s.Selection.Date)
	})

	t.Run("from date time skips professional step when one qualifies", func(t *testing.T) {
		s := apply(t, New(),
			ServiceChosen{Service: service()},
			LocationChosen{LocationID: 100, Qualified: []int64{1, 2}},
			ProfessionalChosen{ProfessionalID: 1},
			Back{Qualified: []int64{1}},
		)
		assert.Equal(t, StateSelectingLocation, s.State)
		assert.Zero(t, s.Selection.LocationID)
		assert.Zero(t, s.Selection.ProfessionalID)
	})

	t.Run("from confirming keeps date and clears time", func(t *testing.T) {
		s := apply(t, toConfirming(t), Back{})
		assert.Equal(t, StateSelectingDateTime, s.State)
		require.NotNil(t, s.Selection.Date)
		assert.Nil(t, s.Selection.Time)
	})
}

func TestTransition_SlotTakenReturnsToDateTime(t *testing.T) {
	s := apply(t, toConfirming(t), SlotTaken{})

	assert.Equal(t, StateSelectingDateTime, s.State)
	assert.Equal(t, monday, *s.Selection.Date)
	assert.Nil(t, s.Selection.Time)
	assert.Equal(t, int64(2), s.Selection.ProfessionalID)
}

func TestTransition_ExitFromAnyState(t *testing.T) {
	states := []Snapshot{
		New(),
		apply(t, New(), ServiceChosen{Service: service()}),
		apply(t, New(), ServiceChosen{Service: service()}, LocationChosen{LocationID: 100, Qualified: []int64{1, 2}}),
		toConfirming(t),
	}

	for _, s := range states {
		next, err := Transition(s, Exit{})
		require.NoError(t, err)
		assert.Equal(t, StateAbandoned, next.State)
	}
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	s := toConfirming(t)
	before, err := json.Marshal(s)
	require.NoError(t, err)

	_, err = Transition(s, SlotTaken{})
	require.NoError(t, err)

	after, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	s := toConfirming(t)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"time":"10:00"`)

	var restored Snapshot
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, s.State, restored.State)
	assert.Equal(t, *s.Selection.Time, *restored.Selection.Time)
	assert.True(t, s.Selection.Date.Equal(*restored.Selection.Date))
}

func TestSnapshot_BookingRequest(t *testing.T) {
	req, err := toConfirming(t).BookingRequest(5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), req.ClientID)
	assert.Equal(t, int64(2), req.ProfessionalID)
	assert.Equal(t, int64(10), req.ServiceID)
	assert.Equal(t, int64(100), req.WorkplaceID)
	assert.Equal(t, "10:00", req.Time.String())
	assert.Equal(t, 60, req.DurationMinutes)
	assert.Equal(t, 1500.0, req.Price)

	_, err = New().BookingRequest(5)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
