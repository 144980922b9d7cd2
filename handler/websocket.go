package handler

import (
	"context"
	"event_manager/config"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	seatConnections = make(map[uint]map[*websocket.Conn]bool)
	seatMutex       sync.Mutex
)

func getRedis() *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr: config.ConfigDefault("REDIS_ADDR", "localhost:6379"),
		})
	})
	return redisClient
}

// PublishSeatUpdate tells every instance that the event's seat state
// changed; subscribers rebroadcast the fresh map to their websockets.
func PublishSeatUpdate(eventId uint) {
	if err := getRedis().Publish(context.Background(), fmt.Sprintf("event:%d", eventId), "seats").Err(); err != nil {
		log.Printf("failed to publish seat update for event %d: %v", eventId, err)
		// Redis down: still refresh clients connected to this instance
		broadcastSeatMap(eventId)
	}
}

func broadcastSeatMap(eventId uint) {
	seatMap, err := FetchEventSeatMap(eventId)
	if err != nil {
		log.Printf("failed to load seat map for broadcast: %v", err)
		return
	}

	seatMutex.Lock()
	conns := make([]*websocket.Conn, 0, len(seatConnections[eventId]))
	for conn := range seatConnections[eventId] {
		conns = append(conns, conn)
	}
	seatMutex.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(seatMap); err != nil {
			log.Printf("failed to broadcast seat map: %v", err)
		}
	}
}

// SeatWebsocket streams the live seat map of one event.
func SeatWebsocket(c *websocket.Conn) {
	eventIdStr := c.Params("eventId")
	id64, err := strconv.ParseUint(eventIdStr, 10, 64)
	if err != nil {
		log.Printf("Invalid eventId: %s", eventIdStr)
		c.Close()
		return
	}
	eventId := uint(id64)

	seatMutex.Lock()
	if seatConnections[eventId] == nil {
		seatConnections[eventId] = make(map[*websocket.Conn]bool)
	}
	seatConnections[eventId][c] = true
	seatMutex.Unlock()

	defer func() {
		seatMutex.Lock()
		delete(seatConnections[eventId], c)
		if len(seatConnections[eventId]) == 0 {
			delete(seatConnections, eventId)
		}
		seatMutex.Unlock()
		c.Close()
	}()

	// initial full state for the new client
	if seatMap, err := FetchEventSeatMap(eventId); err == nil {
		c.WriteJSON(seatMap)
	}

	pubsub := getRedis().Subscribe(context.Background(), fmt.Sprintf("event:%d", eventId))
	defer pubsub.Close()

	go func() {
		for range pubsub.Channel() {
			if seatMap, err := FetchEventSeatMap(eventId); err == nil {
				if err := c.WriteJSON(seatMap); err != nil {
					return
				}
			}
		}
	}()

	// keep the connection open until the client goes away
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
