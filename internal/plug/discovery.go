package plug

// pollDiscovery resolves the coordinator address once. Attempts are gated by
// the discovery period whether they succeed, miss or fail; retries are never
// immediate and there is no backoff.
func (n *Node) pollDiscovery() {
	if n.coordinator != nil || !n.timer.Expired(n.discoveryGate) {
		return
	}
	n.timer.Rearm(n.discoveryGate)

	peers, err := n.ports.Radio.Discover()
	if err != nil {
		n.emit(Event{Type: EventDiscoveryFailed, Err: &DiscoveryError{Err: err}})
		return
	}

	for _, p := range peers {
		if p.NodeID == CoordinatorNodeID {
			addr := make(Address, len(p.Address))
			copy(addr, p.Address)
			n.coordinator = addr
			n.emit(Event{Type: EventCoordinatorDiscovered, Peer: addr})
			return
		}
	}
	n.emit(Event{Type: EventDiscoveryMiss})
}
