package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerDialog(t *testing.T) {
	sm := NewManager()
	assert.Equal(t, StateNone, sm.GetState(1))
	assert.False(t, sm.Get(1).InProgress())

	sm.Set(1, Dialog{State: StateBookPatient, Date: "2026-01-02", Time: "09:30"})
	d := sm.Update(1, func(d *Dialog) {
		d.State = StateBookReason
		d.PatientID = 3
	})
	assert.Equal(t, StateBookReason, d.State)
	assert.Equal(t, "09:30", sm.Get(1).Time)
	assert.Equal(t, int64(3), sm.Get(1).PatientID)

	sm.Update(1, func(d *Dialog) { d.State = StateNone })
	assert.Equal(t, 0, sm.Len())
}

func TestManagerIsolation(t *testing.T) {
	sm := NewManager()
	sm.Set(1, Dialog{State: StateLoginPassword, Login: "sec"})
	sm.Set(2, Dialog{State: StateLoginLogin})

	got := sm.Get(1)
	got.Login = "changed"
	assert.Equal(t, "sec", sm.Get(1).Login)

	sm.ClearState(1)
	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Equal(t, StateLoginLogin, sm.GetState(2))

	sm.Set(2, Dialog{})
	assert.Equal(t, 0, sm.Len())
}

func TestManagerConcurrentUpdates(t *testing.T) {
	sm := NewManager()
	sm.Set(1, Dialog{State: StateBookPatient})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sm.Update(1, func(d *Dialog) { d.PatientID++ })
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), sm.Get(1).PatientID)
}
