package pipeline

// Subscription delivers published states through a one-slot mailbox.
type Subscription struct {
	p  *Pipeline
	ch chan State
}

// Subscribe registers a new subscription. The current state is delivered
// first. On a closed pipeline the returned channel is already closed.
func (p *Pipeline) Subscribe() *Subscription {
	s := &Subscription{p: p, ch: make(chan State, 1)}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		close(s.ch)
		return s
	}
	p.subs[s] = struct{}{}
	s.offer(p.state)
	return s
}

// C returns the channel of states. It is closed by Close or by closing the
// pipeline.
func (s *Subscription) C() <-chan State {
	return s.ch
}

// Close detaches the subscription and closes its channel.
func (s *Subscription) Close() {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()

	if _, ok := s.p.subs[s]; !ok {
		return
	}
	delete(s.p.subs, s)
	close(s.ch)
}

// offer replaces any undelivered state with st. Callers hold p.mu, so
// there is a single sender and the send never blocks.
func (s *Subscription) offer(st State) {
	select {
	case <-s.ch:
	default:
	}
	s.ch <- st
}
