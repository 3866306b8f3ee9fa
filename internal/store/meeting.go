package store

import (
	"context"
	"fmt"

	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/condomaster/condomaster-api/internal/model"
)

const meetingsTable = "meetings"

var meetingFields = []field{
	{api: "name", store: "name"},
	{api: "date", store: "date"},
	{api: "attendance", store: "attendance"},
	{api: "createdBy", store: "created_by"},
	{api: "updatedBy", store: "updated_by"},
	{api: "createdAt", store: "created_at"},
	{api: "updatedAt", store: "updated_at"},
}

func meetingFromRow(r gateway.Row) model.Meeting {
	m := model.Meeting{
		ID:         r["id"],
		Name:       asString(firstTruthy(r, "name")),
		Date:       asString(firstTruthy(r, "date")),
		Attendance: firstTruthy(r, "attendance"),
		CreatedBy:  asString(firstTruthy(r, "created_by", "createdBy")),
		UpdatedBy:  asString(firstTruthy(r, "updated_by", "updatedBy")),
		CreatedAt:  asString(firstTruthy(r, "created_at", "createdAt")),
		UpdatedAt:  asString(firstTruthy(r, "updated_at", "updatedAt")),
	}
	if m.Attendance == nil {
		m.Attendance = map[string]any{}
	}
	return m
}

func meetingToRow(body map[string]any) gateway.Row {
	return toRow(body, meetingFields)
}

type MeetingStore struct {
	gw gateway.Gateway
}

func NewMeetingStore(gw gateway.Gateway) *MeetingStore {
	return &MeetingStore{gw: gw}
}

func (s *MeetingStore) List(ctx context.Context) ([]model.Meeting, error) {
	rows, err := s.gw.Select(ctx, gateway.From(meetingsTable).OrderBy(gateway.Desc("date")))
	if err != nil {
		return nil, err
	}
	meetings := make([]model.Meeting, 0, len(rows))
	for _, r := range rows {
		meetings = append(meetings, meetingFromRow(r))
	}
	return meetings, nil
}

func (s *MeetingStore) Create(ctx context.Context, body map[string]any) (*model.Meeting, error) {
	rows, err := s.gw.Insert(ctx, meetingsTable, meetingToRow(body))
	if err != nil {
		return nil, fmt.Errorf("insert meeting: %w", err)
	}
	return firstMeeting(rows), nil
}

// Update returns nil without error when no meeting has the id.
func (s *MeetingStore) Update(ctx context.Context, id string, body map[string]any) (*model.Meeting, error) {
	rows, err := s.gw.Update(ctx, meetingsTable, meetingToRow(body), gateway.Eq("id", id))
	if err != nil {
		return nil, fmt.Errorf("update meeting %s: %w", id, err)
	}
	return firstMeeting(rows), nil
}

func (s *MeetingStore) Delete(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, meetingsTable, gateway.Eq("id", id)); err != nil {
		return fmt.Errorf("delete meeting %s: %w", id, err)
	}
	return nil
}

func firstMeeting(rows []gateway.Row) *model.Meeting {
	r := gateway.First(rows)
	if r == nil {
		return nil
	}
	m := meetingFromRow(r)
	return &m
}
