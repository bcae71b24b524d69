package wm

import (
	"github.com/stapel/wmwm-sub000/internal/platform"
)

// ClientID is a stable handle into the client arena. Zero means no client.
type ClientID int

const noClient ClientID = 0

// noWorkspace marks a client that is on no workspace, e.g. while iconified.
const noWorkspace = -1

// Client is one managed top-level window.
type Client struct {
	ID     ClientID
	Window platform.WindowID
	Frame  platform.WindowID

	// Geom is the frame position and the inner size shared by frame and
	// client. The bordered size is Width+2*Border.
	Geom   platform.Rect
	Saved  platform.Rect
	Border int

	Hints         platform.SizeHints
	Protocols     platform.Protocols
	CloseAttempts int

	Fullscreen bool
	VertMax    bool
	// Iconic is set by an explicit iconify, Hidden while the client's
	// workspace is not shown.
	Iconic      bool
	Hidden      bool
	IgnoreUnmap int

	Monitor    uint32
	HasMonitor bool
	Workspace  int
	Colormap   uint32
}

// registry owns the client arena and its lookups. order lists clients
// newest first.
type registry struct {
	clients  map[ClientID]*Client
	order    []ClientID
	byWindow map[platform.WindowID]ClientID
	byFrame  map[platform.WindowID]ClientID
	next     ClientID
}

func newRegistry() registry {
	return registry{
		clients:  make(map[ClientID]*Client),
		byWindow: make(map[platform.WindowID]ClientID),
		byFrame:  make(map[platform.WindowID]ClientID),
	}
}

func (r *registry) add(win, frame platform.WindowID) *Client {
	r.next++
	c := &Client{ID: r.next, Window: win, Frame: frame, Workspace: noWorkspace}
	r.clients[c.ID] = c
	r.order = append([]ClientID{c.ID}, r.order...)
	r.byWindow[win] = c.ID
	r.byFrame[frame] = c.ID
	return c
}

func (r *registry) remove(c *Client) {
	delete(r.clients, c.ID)
	delete(r.byWindow, c.Window)
	delete(r.byFrame, c.Frame)
	r.order = removeID(r.order, c.ID)
}

func (r *registry) get(id ClientID) *Client {
	if id == noClient {
		return nil
	}
	return r.clients[id]
}

// byWin resolves either a client window or its frame.
func (r *registry) byWin(win platform.WindowID) *Client {
	if id, ok := r.byWindow[win]; ok {
		return r.clients[id]
	}
	if id, ok := r.byFrame[win]; ok {
		return r.clients[id]
	}
	return nil
}

func (r *registry) windows() []platform.WindowID {
	out := make([]platform.WindowID, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.clients[id].Window)
	}
	return out
}

func indexOf(ids []ClientID, id ClientID) int {
	for i, other := range ids {
		if other == id {
			return i
		}
	}
	return -1
}

func removeID(ids []ClientID, id ClientID) []ClientID {
	if i := indexOf(ids, id); i >= 0 {
		return append(ids[:i], ids[i+1:]...)
	}
	return ids
}

// moveToHead moves id to the front of ids, inserting it if absent.
func moveToHead(ids []ClientID, id ClientID) []ClientID {
	ids = removeID(ids, id)
	return append([]ClientID{id}, ids...)
}
