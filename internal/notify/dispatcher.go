package notify

import "github.com/infsectest/ist-detector/pkg/logger"

// Dispatcher owns the one worker goroutine that performs email sends,
// so a slow or failing mail server never runs on a conversation
// goroutine. Submit hands a notification to the worker and returns a
// channel carrying the single boolean outcome.
type Dispatcher struct {
	mailer     Mailer
	recipients []string
	log        *logger.Logger
	tasks      chan task
	done       chan struct{}
}

type task struct {
	n      Notification
	result chan bool
}

func NewDispatcher(mailer Mailer, recipients []string, log *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		mailer:     mailer,
		recipients: recipients,
		log:        log,
		tasks:      make(chan task),
		done:       make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for t := range d.tasks {
		t.result <- d.send(t.n)
	}
}

func (d *Dispatcher) send(n Notification) bool {
	if len(d.recipients) == 0 {
		d.log.Warnw("no email recipients configured, skipping notification")
		return false
	}
	if err := d.mailer.Send(n, d.recipients); err != nil {
		d.log.Errorw("failed to send notification email", "error", err)
		return false
	}
	d.log.Infow("notification email sent", "recipients", len(d.recipients))
	return true
}

// Submit queues a notification. The returned channel receives exactly
// one value: whether the single delivery attempt succeeded. No retries.
func (d *Dispatcher) Submit(n Notification) <-chan bool {
	result := make(chan bool, 1)
	d.tasks <- task{n: n, result: result}
	return result
}

// Close stops accepting work and waits for the worker to drain.
func (d *Dispatcher) Close() {
	close(d.tasks)
	<-d.done
}
