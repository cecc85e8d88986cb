package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souk/pkg/adapters/memory"
	"souk/pkg/bus"
	"souk/pkg/core"
	"souk/pkg/notify"
	"souk/pkg/sched"
)

type scheduleFixture struct {
	engine    *notify.Engine
	toasts    *notify.Toasts
	schedules *notify.Schedules
	clock     *sched.ManualClock
	scheduler *sched.Scheduler
	session   *memory.Session
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()
	clock := sched.NewManualClock()
	scheduler := sched.New(clock)
	b := bus.New(nil)
	engine := notify.NewEngine(notify.EngineConfig{Bus: b, Now: clock.Now})
	toasts := notify.NewToasts(notify.ToastsConfig{Scheduler: scheduler})
	session := memory.NewSession()
	return &scheduleFixture{
		engine:    engine,
		toasts:    toasts,
		schedules: notify.NewSchedules(engine, toasts, scheduler, session, nil),
		clock:     clock,
		scheduler: scheduler,
		session:   session,
	}
}

func TestMerchantScheduleFiresInOrder(t *testing.T) {
	f := newScheduleFixture(t)
	stop := f.schedules.Start(core.RoleMerchant)
	defer stop()

	f.clock.Advance(9 * time.Second)
	assert.Empty(t, f.engine.List())

	f.clock.Advance(1 * time.Second)
	list := f.engine.List()
	require.Len(t, list, 1)
	assert.Equal(t, "order", list[0].Type)
	assert.Equal(t, core.PriorityHigh, list[0].Priority)

	f.clock.Advance(15 * time.Second)
	list = f.engine.List()
	require.Len(t, list, 2)
	assert.Equal(t, "warning", list[0].Type, "stock warning lands second, newest first")
}

func TestHighPriorityScheduleAlsoRaisesToast(t *testing.T) {
	f := newScheduleFixture(t)
	stop := f.schedules.Start(core.RoleSupplier)
	defer stop()

	f.clock.Advance(8 * time.Second)
	require.Len(t, f.engine.List(), 1)
	assert.Equal(t, core.PriorityUrgent, f.engine.List()[0].Priority)

	toastList := f.toasts.List()
	require.Len(t, toastList, 1)
	assert.Equal(t, notify.DurationUrgent, toastList[0].Duration)
}

func TestStopCancelsPendingFires(t *testing.T) {
	f := newScheduleFixture(t)
	stop := f.schedules.Start(core.RoleMerchant)

	f.clock.Advance(10 * time.Second)
	require.Len(t, f.engine.List(), 1)

	stop()
	f.clock.Advance(time.Minute)
	assert.Len(t, f.engine.List(), 1, "stock warning never fires after stop")
}

func TestWelcomeShowsOncePerSession(t *testing.T) {
	f := newScheduleFixture(t)

	assert.True(t, f.schedules.Welcome(core.RoleMerchant, "أحمد"))
	assert.Len(t, f.toasts.List(), 1)

	assert.False(t, f.schedules.Welcome(core.RoleMerchant, "أحمد"))
	assert.Len(t, f.toasts.List(), 1, "second visit in the same session is silent")

	// A different role welcomes independently.
	assert.True(t, f.schedules.Welcome(core.RoleSupplier, "سارة"))
	assert.Len(t, f.toasts.List(), 2)
}

func TestCleanupJobPrunesOnRun(t *testing.T) {
	f := newScheduleFixture(t)

	old := f.engine.Add(core.Notification{Title: "قديم"})
	require.True(t, f.engine.MarkAsRead(old.ID))

	cleanup := notify.NewCleanup(f.engine, time.Nanosecond, nil)
	cleanup.Run()
	assert.Empty(t, f.engine.List())
}
