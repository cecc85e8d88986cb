package notify

import (
	"log/slog"
	"time"

	"souk/pkg/core"
	"souk/pkg/sched"
)

// Schedules drives the role-based synthetic notifications. Timer
// lifetimes belong to the scheduler service, so stopping a schedule
// cancels every pending fire regardless of who started it.
type Schedules struct {
	engine  *Engine
	toasts  *Toasts
	sched   *sched.Scheduler
	session core.SessionStore
	logger  *slog.Logger
}

// NewSchedules wires the schedule driver.
func NewSchedules(engine *Engine, toasts *Toasts, s *sched.Scheduler, session core.SessionStore, logger *slog.Logger) *Schedules {
	return &Schedules{engine: engine, toasts: toasts, sched: s, session: session, logger: logger}
}

type scheduledNotification struct {
	delay time.Duration
	note  core.Notification
}

// roleSchedule returns the notification plan for a dashboard role.
func roleSchedule(role core.UserRole) []scheduledNotification {
	switch role {
	case core.RoleMerchant:
		return []scheduledNotification{
			{10 * time.Second, core.Notification{
				Type:     "order",
				Title:    "طلب جديد وصل! 🎉",
				Message:  "طلب بقيمة 450 ريال من عميل مميز - يحتاج تأكيد فوري",
				Priority: core.PriorityHigh,
				UserType: core.RoleMerchant,
			}},
			{25 * time.Second, core.Notification{
				Type:     "warning",
				Title:    "تنبيه مخزون ⚠️",
				Message:  "3 منتجات أوشكت على النفاد - يُنصح بإعادة الطلب",
				Priority: core.PriorityMedium,
				UserType: core.RoleMerchant,
			}},
		}
	case core.RoleSupplier:
		return []scheduledNotification{
			{8 * time.Second, core.Notification{
				Type:     "order",
				Title:    "طلب كبير من تاجر مميز! 🏪",
				Message:  "طلب 500 قطعة بقيمة 15,000 ريال - فرصة ممتازة",
				Priority: core.PriorityUrgent,
				UserType: core.RoleSupplier,
			}},
		}
	case core.RoleShipping:
		return []scheduledNotification{
			{12 * time.Second, core.Notification{
				Type:     "delivery",
				Title:    "طلب توصيل عاجل! 🚨",
				Message:  "شحنة عاجلة تحتاج استلام خلال ساعة",
				Priority: core.PriorityUrgent,
				UserType: core.RoleShipping,
			}},
		}
	case core.RoleCustomer:
		return []scheduledNotification{
			{15 * time.Second, core.Notification{
				Type:     "delivery",
				Title:    "طلبك في الطريق! 🚚",
				Message:  "السائق على بعد 10 دقائق من موقعك",
				Priority: core.PriorityHigh,
				UserType: core.RoleCustomer,
			}},
		}
	default:
		return nil
	}
}

// Start arms the role's notification plan and returns a stop function
// that cancels every fire still pending. High and urgent notifications
// also surface as a toast when they land.
func (s *Schedules) Start(role core.UserRole) (stop func()) {
	plan := roleSchedule(role)
	cancels := make([]sched.CancelFunc, 0, len(plan))
	for _, entry := range plan {
		note := entry.note
		cancels = append(cancels, s.sched.After(entry.delay, func() {
			added := s.engine.Add(note)
			if added.Priority == core.PriorityHigh || added.Priority == core.PriorityUrgent {
				s.toasts.Add(core.Toast{
					Type:     note.Type,
					Title:    note.Title,
					Message:  note.Message,
					Duration: DurationUrgent,
				})
			}
		}))
	}

	if s.logger != nil {
		s.logger.Debug("notification schedule started", "role", string(role), "timers", len(cancels))
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// Welcome shows the role's welcome toast at most once per session. It
// reports whether the toast was shown.
func (s *Schedules) Welcome(role core.UserRole, name string) bool {
	key := core.WelcomeFlagKey(role)
	if s.session.Flag(key) {
		return false
	}
	s.session.SetFlag(key)

	message := "سعداء بعودتك إلى السوق"
	switch role {
	case core.RoleMerchant:
		message = "لوحة التاجر جاهزة، تابع طلباتك الجديدة"
	case core.RoleSupplier:
		message = "لوحة المورد جاهزة، تابع طلبات التجار"
	case core.RoleShipping:
		message = "لوحة الشحن جاهزة، تابع شحناتك النشطة"
	}

	s.toasts.Add(core.Toast{
		Type:     "welcome",
		Title:    "مرحباً " + name + " 👋",
		Message:  message,
		Duration: DurationInfo,
	})
	return true
}
