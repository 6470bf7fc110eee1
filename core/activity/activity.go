// Package activity records the system activity shown on the admin dashboard.
package activity

import (
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/thk/core/course"
)

type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

type Log struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"` // UTC
	Type      Type      `json:"type"`
}

// Stats are the dashboard totals.
type Stats struct {
	TotalStudents int     `json:"total_students"`
	TotalMentors  int     `json:"total_mentors"`
	TotalCourses  int     `json:"total_courses"`
	Revenue       float64 `json:"revenue"` // sum of price * students over the catalog
}

// NewStats computes the dashboard totals.
func NewStats(courses []course.Course, nStudents, nMentors int) Stats {
	st := Stats{TotalStudents: nStudents, TotalMentors: nMentors, TotalCourses: len(courses)}
	for _, c := range courses {
		st.Revenue += c.Price * float64(c.Students)
	}
	return st
}

type (
	Repository interface {
		CreateLog(l Log) (Log, error)
		// QueryLogs returns the n most recent logs, newest first; n < 0 returns them all.
		QueryLogs(n int) ([]Log, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record logs action on behalf of usr.
func (svc *Service) Record(typ Type, action, usr string) (Log, error) {
	return svc.repo.CreateLog(Log{
		ID:        uuid.New().String(),
		Action:    action,
		User:      usr,
		Timestamp: time.Now().UTC(),
		Type:      typ,
	})
}

func (svc *Service) Recent(n int) ([]Log, error) {
	return svc.repo.QueryLogs(n)
}

// Seed is the demo activity loaded at start-up.
var Seed = []Log{
	{ID: "1", Action: "System Backup Completed", User: "System", Timestamp: time.Date(2023, 10, 27, 2, 0, 0, 0, time.UTC), Type: TypeInfo},
	{ID: "2", Action: "Failed Login Attempt", User: "Unknown IP", Timestamp: time.Date(2023, 10, 27, 4, 15, 0, 0, time.UTC), Type: TypeWarning},
	{ID: "3", Action: `Course "React 101" Deleted`, User: "Admin User", Timestamp: time.Date(2023, 10, 26, 15, 30, 0, 0, time.UTC), Type: TypeError},
}
