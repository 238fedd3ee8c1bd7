package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	M "github.com/vayron-digital/modulyn-one-sub000/model"
	"github.com/vayron-digital/modulyn-one-sub000/realtime"
)

var watchableTables = map[string]bool{
	M.TableLeads:         true,
	M.TableCalls:         true,
	M.TableNotes:         true,
	M.TableColdCalls:     true,
	M.TableEvents:        true,
	M.TableDevelopers:    true,
	M.TableChatTemplates: true,
}

// RealtimeStreamHandler streams change signals for the requested
// tables over SSE. Events carry only the table and timestamp, the
// client refetches on receipt.
func RealtimeStreamHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Stream failed. Invalid project."})
		return
	}

	services := C.GetServices()
	if services == nil || services.Realtime == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Realtime is unavailable."})
		return
	}

	tables := strings.Split(c.Query("tables"), ",")
	merged := make(chan realtime.ChangeEvent, 16)
	var releases []func()
	subscribed := 0
	for _, table := range tables {
		table = strings.TrimSpace(table)
		if !watchableTables[table] {
			continue
		}
		events, release := services.Realtime.Subscribe(projectID, table)
		releases = append(releases, release)
		subscribed++
		go func(in <-chan realtime.ChangeEvent) {
			for event := range in {
				select {
				case merged <- event:
				default:
				}
			}
		}(events)
	}
	if subscribed == 0 {
		abortWithValidationError(c, "No watchable tables requested.")
		return
	}
	defer func() {
		for _, release := range releases {
			release()
		}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientGone := c.Writer.CloseNotify()
	c.Stream(func(w io.Writer) bool {
		select {
		case event := <-merged:
			fmt.Fprintf(w, "event: change\ndata: {\"table\":%q,\"at\":%d}\n\n", event.Table, event.At)
			return true
		case <-clientGone:
			return false
		}
	})
}
