package services

import (
	"context"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"
)

// fakeStore is an in-memory storage.Store. Slices keep insertion order so the
// tests see the same ordering the SQL store produces.
type fakeStore struct {
	members        []*models.Member
	challengeGoals []*models.ChallengeGoal
	groupGoals     []*models.GroupGoal
	waitingGoals   []*models.WaitingGoal
	memberWaiting  []*models.MemberWaitingGoal
	records        []*models.Record
	doneGoals      []*models.DoneGoal
	alarms         []*models.Alarm
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) addMember(id, nickname string) *models.Member {
	m := &models.Member{
		ID:        id,
		Email:     nickname + "@example.com",
		Nickname:  nickname,
		CreatedAt: time.Now(),
	}
	f.members = append(f.members, m)
	return m
}

// ---------------------------------------------------------------------------
// MemberStore

func (f *fakeStore) MemberByID(ctx context.Context, id string) (*models.Member, error) {
	for _, m := range f.members {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) MemberByNickname(ctx context.Context, nickname string) (*models.Member, error) {
	for _, m := range f.members {
		if m.Nickname == nickname {
			c := *m
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) SetChallengeGoal(ctx context.Context, memberID string, goalID *string) error {
	for _, m := range f.members {
		if m.ID == memberID {
			m.ChallengeGoalID = goalID
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) SetGroupGoal(ctx context.Context, memberID string, goalID *string) error {
	for _, m := range f.members {
		if m.ID == memberID {
			m.GroupGoalID = goalID
			return nil
		}
	}
	return storage.ErrNotFound
}

// ---------------------------------------------------------------------------
// ChallengeGoalStore

func (f *fakeStore) CreateChallengeGoal(ctx context.Context, g *models.ChallengeGoal) error {
	c := *g
	f.challengeGoals = append(f.challengeGoals, &c)
	return nil
}

func (f *fakeStore) ChallengeGoalByID(ctx context.Context, id string) (*models.ChallengeGoal, error) {
	for _, g := range f.challengeGoals {
		if g.ID == id {
			c := *g
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) ChallengeGoalMembers(ctx context.Context, goalID string) ([]models.Member, error) {
	var out []models.Member
	for _, m := range f.members {
		if m.ChallengeGoalID != nil && *m.ChallengeGoalID == goalID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteChallengeGoal(ctx context.Context, id string) error {
	for i, g := range f.challengeGoals {
		if g.ID == id {
			f.challengeGoals = append(f.challengeGoals[:i], f.challengeGoals[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

// ---------------------------------------------------------------------------
// GroupGoalStore

func (f *fakeStore) CreateGroupGoal(ctx context.Context, g *models.GroupGoal) error {
	c := *g
	f.groupGoals = append(f.groupGoals, &c)
	return nil
}

func (f *fakeStore) GroupGoalByID(ctx context.Context, id string) (*models.GroupGoal, error) {
	for _, g := range f.groupGoals {
		if g.ID == id {
			c := *g
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) GroupGoalMembers(ctx context.Context, goalID string) ([]models.Member, error) {
	var out []models.Member
	for _, m := range f.members {
		if m.GroupGoalID != nil && *m.GroupGoalID == goalID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteGroupGoal(ctx context.Context, id string) error {
	for i, g := range f.groupGoals {
		if g.ID == id {
			f.groupGoals = append(f.groupGoals[:i], f.groupGoals[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

// ---------------------------------------------------------------------------
// WaitingGoalStore

func (f *fakeStore) CreateWaitingGoal(ctx context.Context, w *models.WaitingGoal) error {
	c := *w
	f.waitingGoals = append(f.waitingGoals, &c)
	return nil
}

func (f *fakeStore) WaitingGoalByID(ctx context.Context, id string) (*models.WaitingGoal, error) {
	for _, w := range f.waitingGoals {
		if w.ID == id {
			c := *w
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) DeleteWaitingGoal(ctx context.Context, id string) error {
	for i, w := range f.waitingGoals {
		if w.ID == id {
			f.waitingGoals = append(f.waitingGoals[:i], f.waitingGoals[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) CreateMemberWaitingGoal(ctx context.Context, mw *models.MemberWaitingGoal) error {
	c := *mw
	f.memberWaiting = append(f.memberWaiting, &c)
	return nil
}

func (f *fakeStore) memberWaitingRow(mw *models.MemberWaitingGoal) models.MemberWaitingGoal {
	c := *mw
	for _, m := range f.members {
		if m.ID == mw.MemberID {
			c.MemberNickname = m.Nickname
		}
	}
	return c
}

func (f *fakeStore) MemberWaitingGoal(ctx context.Context, memberID, waitingGoalID string) (*models.MemberWaitingGoal, error) {
	for _, mw := range f.memberWaiting {
		if mw.MemberID == memberID && mw.WaitingGoalID == waitingGoalID {
			c := f.memberWaitingRow(mw)
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) MemberWaitingGoalsByWaitingGoal(ctx context.Context, waitingGoalID string) ([]models.MemberWaitingGoal, error) {
	var out []models.MemberWaitingGoal
	for _, mw := range f.memberWaiting {
		if mw.WaitingGoalID == waitingGoalID {
			out = append(out, f.memberWaitingRow(mw))
		}
	}
	return out, nil
}

func (f *fakeStore) WaitingGoalsByMember(ctx context.Context, memberID string) ([]models.WaitingGoal, error) {
	var out []models.WaitingGoal
	for _, w := range f.waitingGoals {
		for _, mw := range f.memberWaiting {
			if mw.WaitingGoalID == w.ID && mw.MemberID == memberID {
				out = append(out, *w)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) AcceptMemberWaitingGoal(ctx context.Context, memberID, waitingGoalID string) error {
	for _, mw := range f.memberWaiting {
		if mw.MemberID == memberID && mw.WaitingGoalID == waitingGoalID {
			mw.Accepted = true
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteMemberWaitingGoal(ctx context.Context, memberID, waitingGoalID string) error {
	for i, mw := range f.memberWaiting {
		if mw.MemberID == memberID && mw.WaitingGoalID == waitingGoalID {
			f.memberWaiting = append(f.memberWaiting[:i], f.memberWaiting[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteMemberWaitingGoalsByWaitingGoal(ctx context.Context, waitingGoalID string) error {
	var kept []*models.MemberWaitingGoal
	for _, mw := range f.memberWaiting {
		if mw.WaitingGoalID != waitingGoalID {
			kept = append(kept, mw)
		}
	}
	f.memberWaiting = kept
	return nil
}

// ---------------------------------------------------------------------------
// RecordStore

func (f *fakeStore) CreateRecord(ctx context.Context, r *models.Record) error {
	c := *r
	f.records = append(f.records, &c)
	return nil
}

func (f *fakeStore) RecordByID(ctx context.Context, id string) (*models.Record, error) {
	for _, r := range f.records {
		if r.ID == id {
			c := *r
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) RecordsByTypeAndMember(ctx context.Context, rt models.RecordType, memberID string) ([]models.Record, error) {
	var out []models.Record
	for _, r := range f.records {
		if r.RecordType == rt && r.MemberID == memberID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) RecordsByDayAndMember(ctx context.Context, day time.Time, memberID string) ([]models.Record, error) {
	y, m, d := day.Date()
	var out []models.Record
	for _, r := range f.records {
		ry, rm, rd := r.RecordDate.Date()
		if r.MemberID == memberID && ry == y && rm == m && rd == d {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteRecord(ctx context.Context, id string) error {
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

// ---------------------------------------------------------------------------
// DoneGoalStore

func (f *fakeStore) CreateDoneGoal(ctx context.Context, d *models.DoneGoal) error {
	c := *d
	f.doneGoals = append(f.doneGoals, &c)
	return nil
}

func (f *fakeStore) DoneGoalsByMember(ctx context.Context, memberID string) ([]models.DoneGoal, error) {
	var out []models.DoneGoal
	for _, d := range f.doneGoals {
		if d.MemberID == memberID {
			out = append(out, *d)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// AlarmStore

func (f *fakeStore) CreateAlarm(ctx context.Context, a *models.Alarm) error {
	c := *a
	f.alarms = append(f.alarms, &c)
	return nil
}

func (f *fakeStore) AlarmByID(ctx context.Context, id string) (*models.Alarm, error) {
	for _, a := range f.alarms {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) AlarmsByMember(ctx context.Context, memberID string) ([]models.Alarm, error) {
	var out []models.Alarm
	for _, a := range f.alarms {
		if a.MemberID == memberID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteAlarm(ctx context.Context, id string) error {
	for i, a := range f.alarms {
		if a.ID == id {
			f.alarms = append(f.alarms[:i], f.alarms[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteAlarmsByWaitingGoalAndDetail(ctx context.Context, waitingGoalID string, detail models.AlarmDetailType) error {
	var kept []*models.Alarm
	for _, a := range f.alarms {
		if a.WaitingGoalID != nil && *a.WaitingGoalID == waitingGoalID && a.DetailType == detail {
			continue
		}
		kept = append(kept, a)
	}
	f.alarms = kept
	return nil
}

func (f *fakeStore) DeleteAlarmsByMemberAndDetail(ctx context.Context, memberID string, at models.AlarmType, detail models.AlarmDetailType) error {
	var kept []*models.Alarm
	for _, a := range f.alarms {
		if a.MemberID == memberID && a.AlarmType == at && a.DetailType == detail {
			continue
		}
		kept = append(kept, a)
	}
	f.alarms = kept
	return nil
}

func (f *fakeStore) Transact(ctx context.Context, fn func(storage.Store) error) error {
	return fn(f)
}

// alarmsBy filters the persisted alarms by recipient and detail type; tests
// assert on fan-out with it.
func (f *fakeStore) alarmsBy(memberID string, detail models.AlarmDetailType) []*models.Alarm {
	var out []*models.Alarm
	for _, a := range f.alarms {
		if a.MemberID == memberID && a.DetailType == detail {
			out = append(out, a)
		}
	}
	return out
}

// fakeNotifier records every live push.
type fakeNotifier struct {
	notified []string
}

func (n *fakeNotifier) NotifyAlarm(memberID string) {
	n.notified = append(n.notified, memberID)
}
