package radio

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sweeney/smart-plug/internal/plug"
)

// Options configures a RealRadio.
type Options struct {
	Broker    string
	ClientID  string
	Prefix    string
	NodeID    string
	Address   plug.Address
	Timeout   time.Duration // bound on connect and publish waits
	InboxSize int
}

// ErrNotConnected is returned while the broker connection is down.
var ErrNotConnected = errors.New("radio: not connected")

var _ Client = (*RealRadio)(nil)

// RealRadio talks to the node network through an MQTT broker.
type RealRadio struct {
	client paho.Client
	opts   Options

	mu    sync.Mutex
	peers []plug.Peer // in order first seen
	inbox *inbox
}

// NewRealRadio connects to the broker, subscribes to announcements and to
// this node's frames, and announces the node. Subscriptions and the
// announcement are renewed on every reconnect.
func NewRealRadio(opts Options) (*RealRadio, error) {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.ClientID == "" {
		opts.ClientID = "smart-plug-" + opts.Address.String()
	}

	r := &RealRadio{
		opts:  opts,
		inbox: newInbox(opts.InboxSize),
	}

	// An empty retained payload clears our announcement if we drop off.
	mo := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetBinaryWill(AnnounceTopic(opts.Prefix, opts.Address), nil, 1, true).
		SetOnConnectHandler(r.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("radio: connection lost: %v", err)
		})

	r.client = paho.NewClient(mo)
	token := r.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return r, nil
}

func (r *RealRadio) onConnect(c paho.Client) {
	subs := map[string]paho.MessageHandler{
		AnnounceFilter(r.opts.Prefix):              r.onAnnounce,
		FrameFilter(r.opts.Prefix, r.opts.Address): r.onFrame,
	}
	for filter, handler := range subs {
		token := c.Subscribe(filter, 1, handler)
		if !token.WaitTimeout(r.opts.Timeout) {
			log.Printf("radio: subscribe %s: timeout", filter)
			continue
		}
		if err := token.Error(); err != nil {
			log.Printf("radio: subscribe %s: %v", filter, err)
		}
	}

	payload, err := FormatAnnouncement(r.opts.NodeID, r.opts.Address)
	if err != nil {
		log.Printf("radio: format announcement: %v", err)
		return
	}
	token := c.Publish(AnnounceTopic(r.opts.Prefix, r.opts.Address), 1, true, payload)
	if !token.WaitTimeout(r.opts.Timeout) {
		log.Printf("radio: announce timeout")
		return
	}
	if err := token.Error(); err != nil {
		log.Printf("radio: announce: %v", err)
		return
	}
	log.Printf("radio: announced %s as %q", r.opts.Address, r.opts.NodeID)
}

func (r *RealRadio) onAnnounce(_ paho.Client, m paho.Message) {
	addr, err := ParseAnnounceTopic(r.opts.Prefix, m.Topic())
	if err != nil {
		log.Printf("radio: %v", err)
		return
	}
	if addr.Equal(r.opts.Address) {
		return
	}

	if len(m.Payload()) == 0 {
		r.removePeer(addr)
		return
	}
	peer, err := ParseAnnouncement(addr, m.Payload())
	if err != nil {
		log.Printf("radio: %v", err)
		return
	}
	r.upsertPeer(peer)
}

func (r *RealRadio) onFrame(_ paho.Client, m paho.Message) {
	_, sender, err := ParseFrameTopic(r.opts.Prefix, m.Topic())
	if err != nil {
		log.Printf("radio: %v", err)
		return
	}
	payload := append([]byte(nil), m.Payload()...)

	r.mu.Lock()
	r.inbox.push(plug.Message{Sender: sender, Payload: payload})
	r.mu.Unlock()
}

func (r *RealRadio) upsertPeer(p plug.Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.peers {
		if r.peers[i].Address.Equal(p.Address) {
			r.peers[i] = p
			return
		}
	}
	r.peers = append(r.peers, p)
}

func (r *RealRadio) removePeer(addr plug.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.peers {
		if r.peers[i].Address.Equal(addr) {
			r.peers = append(r.peers[:i], r.peers[i+1:]...)
			return
		}
	}
}

// Discover returns the peers currently announced on the network, in the
// order they were first seen.
func (r *RealRadio) Discover() ([]plug.Peer, error) {
	if !r.client.IsConnectionOpen() {
		return nil, ErrNotConnected
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]plug.Peer(nil), r.peers...), nil
}

// Transmit publishes payload to dest's frame topic.
func (r *RealRadio) Transmit(dest plug.Address, payload string) error {
	if !r.client.IsConnectionOpen() {
		return ErrNotConnected
	}

	// QoS 0 (at-most-once), not retained
	token := r.client.Publish(FrameTopic(r.opts.Prefix, dest, r.opts.Address), 0, false, []byte(payload))
	if !token.WaitTimeout(r.opts.Timeout) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Receive pops one queued frame without blocking.
func (r *RealRadio) Receive() (plug.Message, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, ok := r.inbox.pop()
	return msg, ok, nil
}

// IsConnected reports whether the broker connection is up.
func (r *RealRadio) IsConnected() bool {
	return r.client.IsConnectionOpen()
}

// Close withdraws the announcement and disconnects from the broker.
func (r *RealRadio) Close() error {
	if r.client.IsConnectionOpen() {
		token := r.client.Publish(AnnounceTopic(r.opts.Prefix, r.opts.Address), 1, true, []byte{})
		if !token.WaitTimeout(r.opts.Timeout) {
			log.Printf("radio: withdraw announcement timeout")
		} else if err := token.Error(); err != nil {
			log.Printf("radio: withdraw announcement: %v", err)
		}
	}
	r.client.Disconnect(1000) // 1 second timeout
	return nil
}
