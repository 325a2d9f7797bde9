package notify

import "github.com/infsectest/ist-detector/internal/session"

// Service ties the report formatter to the dispatch worker.
type Service struct {
	from       string
	dispatcher *Dispatcher
}

func NewService(from string, d *Dispatcher) *Service {
	return &Service{from: from, dispatcher: d}
}

// Notify builds the operator report for a completed request and waits
// for the single delivery attempt to finish.
func (s *Service) Notify(req *session.Request) bool {
	return <-s.dispatcher.Submit(Build(req, s.from))
}
