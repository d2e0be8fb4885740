// Package radio provides the plug's radio network (discovery, transmit and
// receive) over MQTT, with abstraction for testing.
//
// Every node announces itself with a retained message on
// <prefix>/nodes/<address>/announce and receives frames on
// <prefix>/nodes/<address>/rx/<sender>. Addresses are lower-case hex.
package radio

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sweeney/smart-plug/internal/plug"
)

// DefaultPrefix is the topic root shared by all nodes on the network.
const DefaultPrefix = "plugnet"

// Client is a radio the plug loop can drive and the daemon can supervise.
type Client interface {
	plug.Radio
	ConnectionStatus

	// Close withdraws the node's announcement and disconnects.
	Close() error
}

// ConnectionStatus reports whether the broker connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// AnnounceTopic is where a node advertises its identifier.
func AnnounceTopic(prefix string, addr plug.Address) string {
	return fmt.Sprintf("%s/nodes/%s/announce", prefix, addr)
}

// AnnounceFilter matches every node's announcement.
func AnnounceFilter(prefix string) string {
	return prefix + "/nodes/+/announce"
}

// FrameTopic is where sender publishes a frame for dest.
func FrameTopic(prefix string, dest, sender plug.Address) string {
	return fmt.Sprintf("%s/nodes/%s/rx/%s", prefix, dest, sender)
}

// FrameFilter matches every frame addressed to self.
func FrameFilter(prefix string, self plug.Address) string {
	return fmt.Sprintf("%s/nodes/%s/rx/+", prefix, self)
}

// ParseAnnounceTopic extracts the node address from an announcement topic.
func ParseAnnounceTopic(prefix, topic string) (plug.Address, error) {
	parts, err := splitTopic(prefix, topic)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 || parts[2] != "announce" {
		return nil, fmt.Errorf("not an announce topic: %q", topic)
	}
	return plug.ParseAddress(parts[1])
}

// ParseFrameTopic extracts destination and sender from a frame topic.
func ParseFrameTopic(prefix, topic string) (dest, sender plug.Address, err error) {
	parts, err := splitTopic(prefix, topic)
	if err != nil {
		return nil, nil, err
	}
	if len(parts) != 4 || parts[2] != "rx" {
		return nil, nil, fmt.Errorf("not a frame topic: %q", topic)
	}
	if dest, err = plug.ParseAddress(parts[1]); err != nil {
		return nil, nil, err
	}
	if sender, err = plug.ParseAddress(parts[3]); err != nil {
		return nil, nil, err
	}
	return dest, sender, nil
}

func splitTopic(prefix, topic string) ([]string, error) {
	rest, ok := strings.CutPrefix(topic, prefix+"/")
	if !ok {
		return nil, fmt.Errorf("topic %q outside prefix %q", topic, prefix)
	}
	parts := strings.Split(rest, "/")
	if parts[0] != "nodes" {
		return nil, fmt.Errorf("unexpected topic %q", topic)
	}
	return parts, nil
}

// Announcement is the retained payload a node publishes about itself.
type Announcement struct {
	NodeID  string `json:"node_id"`
	Address string `json:"address"`
}

// FormatAnnouncement creates the JSON announcement payload.
func FormatAnnouncement(nodeID string, addr plug.Address) ([]byte, error) {
	return json.Marshal(Announcement{NodeID: nodeID, Address: addr.String()})
}

// ParseAnnouncement decodes an announcement received on topicAddr's topic.
// An address in the body, if present, must agree with the topic.
func ParseAnnouncement(topicAddr plug.Address, payload []byte) (plug.Peer, error) {
	var a Announcement
	if err := json.Unmarshal(payload, &a); err != nil {
		return plug.Peer{}, fmt.Errorf("decode announcement: %w", err)
	}
	if a.NodeID == "" {
		return plug.Peer{}, fmt.Errorf("announcement from %s has no node_id", topicAddr)
	}
	if a.Address != "" {
		body, err := plug.ParseAddress(a.Address)
		if err != nil {
			return plug.Peer{}, err
		}
		if !body.Equal(topicAddr) {
			return plug.Peer{}, fmt.Errorf("announcement address %s does not match topic %s", body, topicAddr)
		}
	}
	return plug.Peer{NodeID: a.NodeID, Address: topicAddr}, nil
}
