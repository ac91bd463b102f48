package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
)

func TestListAlarmsEmptyInbox(t *testing.T) {
	f := newFakeStore()
	f.addMember("a", "alice")
	svc := NewAlarmService(f)

	alarms, err := svc.List(context.Background(), "a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if alarms == nil || len(alarms) != 0 {
		t.Fatalf("expected empty slice, got %v", alarms)
	}
}

func TestDismissAlarmChecksRecipient(t *testing.T) {
	f := newFakeStore()
	f.addMember("a", "alice")
	f.addMember("b", "bob")
	f.alarms = append(f.alarms, &models.Alarm{
		ID: "al1", AlarmType: models.AlarmChallenge, DetailType: models.AlarmDetailSuccess,
		GoalName: "Vacances", MemberID: "a", CreatedAt: time.Now(),
	})
	svc := NewAlarmService(f)
	ctx := context.Background()

	if err := svc.Dismiss(ctx, "b", "al1"); !errors.Is(err, ErrAlarmNotExist) {
		t.Fatalf("expected ErrAlarmNotExist for foreign alarm, got %v", err)
	}
	if err := svc.Dismiss(ctx, "a", "al1"); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if len(f.alarms) != 0 {
		t.Fatal("the alarm should be deleted")
	}
	if err := svc.Dismiss(ctx, "a", "al1"); !errors.Is(err, ErrAlarmNotExist) {
		t.Fatalf("expected ErrAlarmNotExist after deletion, got %v", err)
	}
}
