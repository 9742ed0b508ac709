package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// StreamClubHistorySSE streams new ledger entries for the authenticated
// user as server-sent events. The engine is polled on a short ticker; the
// cursor is the timestamp of the newest entry already delivered.
func (s *ClubService) StreamClubHistorySSE(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	engine := s.Engine(userID)

	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		cursor := time.Now()
		if latest := engine.History(1); len(latest) > 0 {
			cursor = latest[0].Timestamp
		}

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		w.Flush()

		for range ticker.C {
			entries := engine.HistorySince(cursor)
			if len(entries) == 0 {
				// periodic keepalive so proxies keep the stream open
				if _, err := w.WriteString(":\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
				continue
			}

			cursor = entries[len(entries)-1].Timestamp

			for _, entry := range entries {
				payload, err := json.Marshal(entry)
				if err != nil {
					log.Printf("SSE marshal error for user %s: %v", userID, err)
					continue
				}
				if _, err := fmt.Fprintf(w, "event: history\ndata: %s\n\n", payload); err != nil {
					return
				}
			}
			if err := w.Flush(); err != nil {
				// client went away
				return
			}
		}
	})

	return nil
}
