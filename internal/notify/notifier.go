package notify

// Notifier receives best-effort events after successful account and analysis
// actions. Implementations must never block or fail the primary request.
type Notifier interface {
	UserRegistered(name, email, businessName string)
	AnalysisCompleted(email, businessName string, revenueScore int)
}

// Noop discards all events. Used when CRM credentials are not configured
// and in tests.
type Noop struct{}

func (Noop) UserRegistered(string, string, string) {}
func (Noop) AnalysisCompleted(string, string, int) {}
