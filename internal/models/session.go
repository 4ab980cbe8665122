package models

import (
	"fmt"
	"strings"
)

// DiningSession is a recurring dining time slot such as "Breakfast" or "Sunset Dinner".
type DiningSession struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Days        []string `json:"days" db:"days"`
	StartTime   string   `json:"startTime" db:"start_time"`
	EndTime     string   `json:"endTime" db:"end_time"`
	Capacity    int      `json:"capacity" db:"capacity"`
	DefaultMenu string   `json:"defaultMenu" db:"default_menu"`
}

// Schedule renders days and time window, e.g. "Mon, Tue 07:00-11:00".
func (s DiningSession) Schedule() string {
	days := strings.Join(s.Days, ", ")
	if days == "" {
		days = "Daily"
	}
	return fmt.Sprintf("%s %s-%s", days, s.StartTime, s.EndTime)
}

// MenuSessionMapping is the system of record for the item/session relation.
type MenuSessionMapping struct {
	MenuItemID string `json:"menu_item_id" db:"menu_item_id"`
	SessionID  string `json:"session_id" db:"session_id"`
	Available  bool   `json:"available" db:"available"`
}

type AssignmentState string

const (
	AssignmentUnassigned  AssignmentState = "unassigned"
	AssignmentAvailable   AssignmentState = "assigned_available"
	AssignmentUnavailable AssignmentState = "assigned_unavailable"
)
