package hub

import (
	"fmt"
	"sync"

	"golang.org/x/exp/rand"
	"nhooyr.io/websocket"
)

const (
	// ClientIDMaxRetries represents the maximum number of retries when generating a unique ID
	ClientIDMaxRetries = 1024
)

// Client represents a connected chat client
type Client struct {
	ID        uint32
	Name      string
	ChannelID string
	Conn      *websocket.Conn
}

// ClientManager manages connected clients
type ClientManager struct {
	clients     map[uint32]*Client
	clientsLock sync.RWMutex
	rng         *rand.Rand
}

// NewClientManager creates a new ClientManager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients: make(map[uint32]*Client),
		rng:     rand.New(rand.NewSource(rand.Uint64())),
	}
}

// ConnectClient adds a new client to the manager and returns it.
// An empty name is replaced with one derived from the client ID.
func (cm *ClientManager) ConnectClient(conn *websocket.Conn, name string, channelID string) (*Client, error) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	clientID, err := cm.generateUniqueID(ClientIDMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate a unique ID: %v", err)
	}
	if name == "" {
		name = fmt.Sprintf("guest-%d", clientID)
	}
	client := &Client{
		ID:        clientID,
		Name:      name,
		ChannelID: channelID,
		Conn:      conn,
	}
	cm.clients[clientID] = client
	return client, nil
}

// DisconnectClient removes a client from the manager
func (cm *ClientManager) DisconnectClient(clientID uint32) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()
	delete(cm.clients, clientID)
}

// GetClients returns a snapshot of the clients joined to channelID.
// An empty channelID returns every client.
func (cm *ClientManager) GetClients(channelID string) []*Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, client := range cm.clients {
		if channelID != "" && client.ChannelID != channelID {
			continue
		}
		clients = append(clients, client)
	}
	return clients
}

func (cm *ClientManager) Count() int {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	return len(cm.clients)
}

// generateUniqueID generates a unique client ID with a maximum number of retries
// it reads from the clients, so it needs to be locked before calling
func (cm *ClientManager) generateUniqueID(maxRetries int) (uint32, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		id := cm.rng.Uint32()
		if id == 0 {
			continue
		}
		if _, ok := cm.clients[id]; !ok {
			return id, nil
		}
	}

	return 0, fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}
