// Package model holds the per-table data access layer. Functions
// return the value and an errCode keyed on net/http status codes.
package model

import (
	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

// Watched table names for realtime fan-out.
const (
	TableLeads         = "leads"
	TableCalls         = "calls"
	TableNotes         = "notes"
	TableColdCalls     = "cold_calls"
	TableEvents        = "events"
	TableDevelopers    = "developers"
	TableChatTemplates = "chat_templates"
)

// publishChange signals subscribers that rows in a project table
// changed. Mutations call this after every successful write.
func publishChange(projectID uint64, table string) {
	services := C.GetServices()
	if services == nil || services.Realtime == nil {
		return
	}
	services.Realtime.Publish(projectID, table)
}
