package model

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jinzhu/now"
	log "github.com/sirupsen/logrus"

	cacheRedis "github.com/vayron-digital/modulyn-one-sub000/cache/redis"
	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

const dashboardCacheExpirySecs = 60

// DashboardCounts is the summary widget payload.
type DashboardCounts struct {
	TotalLeads         int `json:"total_leads"`
	LeadsWon           int `json:"leads_won"`
	CallsToday         int `json:"calls_today"`
	PendingColdCalls   int `json:"pending_cold_calls"`
	EventsThisWeek     int `json:"events_this_week"`
	ImportantNotes     int `json:"important_notes"`
	ConvertedColdCalls int `json:"converted_cold_calls"`
}

func countRows(projectID uint64, table string, where string, args ...interface{}) (int, error) {
	db := C.GetServices().Db

	var count int
	query := db.Table(table).Where("project_id = ?", projectID)
	if where != "" {
		query = query.Where(where, args...)
	}
	err := query.Count(&count).Error
	return count, err
}

// GetDashboardCounts builds the summary counts. Any single count
// failing fails the whole widget, the boundary above decides how to
// render that.
func GetDashboardCounts(projectID uint64) (*DashboardCounts, int) {
	if projectID == 0 {
		return nil, http.StatusBadRequest
	}

	if cached := getCachedDashboardCounts(projectID); cached != nil {
		return cached, http.StatusFound
	}

	n := now.New(time.Now())
	counts := &DashboardCounts{}

	sections := []struct {
		dst   *int
		table string
		where string
		args  []interface{}
	}{
		{&counts.TotalLeads, TableLeads, "", nil},
		{&counts.LeadsWon, TableLeads, "status = ?", []interface{}{LeadStatusWon}},
		{&counts.CallsToday, TableCalls, "date >= ? AND date <= ?",
			[]interface{}{n.BeginningOfDay(), n.EndOfDay()}},
		{&counts.PendingColdCalls, TableColdCalls, "is_converted = ? AND status NOT IN (?)",
			[]interface{}{false, []string{ColdCallStatusCompleted, ColdCallStatusNotInterested}}},
		{&counts.EventsThisWeek, TableEvents, "start_time >= ? AND start_time <= ?",
			[]interface{}{n.BeginningOfWeek(), n.EndOfWeek()}},
		{&counts.ImportantNotes, TableNotes, "is_important = ?", []interface{}{true}},
		{&counts.ConvertedColdCalls, TableColdCalls, "is_converted = ?", []interface{}{true}},
	}

	for _, section := range sections {
		count, err := countRows(projectID, section.table, section.where, section.args...)
		if err != nil {
			log.WithFields(log.Fields{"project_id": projectID,
				"table": section.table}).WithError(err).Error("Failed to build dashboard counts.")
			return nil, http.StatusInternalServerError
		}
		*section.dst = count
	}

	setCachedDashboardCounts(projectID, counts)
	return counts, http.StatusFound
}

func dashboardCacheKey(projectID uint64) *cacheRedis.Key {
	key, err := cacheRedis.NewKey(projectID, "dashboard:counts", "")
	if err != nil {
		return nil
	}
	return key
}

func getCachedDashboardCounts(projectID uint64) *DashboardCounts {
	if C.GetServices().Redis == nil {
		return nil
	}

	raw, err := cacheRedis.Get(dashboardCacheKey(projectID))
	if err != nil {
		return nil
	}

	var counts DashboardCounts
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		return nil
	}
	return &counts
}

func setCachedDashboardCounts(projectID uint64, counts *DashboardCounts) {
	if C.GetServices().Redis == nil {
		return
	}

	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}

	if err := cacheRedis.Set(dashboardCacheKey(projectID), string(raw),
		dashboardCacheExpirySecs); err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to cache dashboard counts.")
	}
}
