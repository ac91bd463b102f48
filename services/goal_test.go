package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
)

func TestCreateChallengeUnknownNickname(t *testing.T) {
	f := newFakeStore()
	f.addMember("p", "paul")
	svc := NewGoalService(f, nil)

	err := svc.CreateChallenge(context.Background(), "p", models.GoalProposalRequest{
		GoalName: "Vacances", GoalAmount: 10000, FriendNicknames: []string{"ghost"},
	})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
	if len(f.challengeGoals) != 0 {
		t.Fatal("nothing may be created when a nickname is unknown")
	}
}

func TestCreateChallengeAttachesEveryMember(t *testing.T) {
	f := newFakeStore()
	f.addMember("p", "paul")
	f.addMember("a", "alice")
	svc := NewGoalService(f, nil)
	ctx := context.Background()

	err := svc.CreateChallenge(ctx, "p", models.GoalProposalRequest{
		GoalName: "Vacances", GoalAmount: 10000, FriendNicknames: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	if len(f.challengeGoals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(f.challengeGoals))
	}
	for _, id := range []string{"p", "a"} {
		m, _ := f.MemberByID(ctx, id)
		if m.ChallengeGoalID == nil || *m.ChallengeGoalID != f.challengeGoals[0].ID {
			t.Fatalf("%s not attached", id)
		}
	}
}

func TestCreateGroupStartsAccepted(t *testing.T) {
	f := newFakeStore()
	f.addMember("p", "paul")
	svc := NewGoalService(f, nil)

	err := svc.CreateGroup(context.Background(), "p", models.GoalProposalRequest{
		GoalName: "Cagnotte", GoalAmount: 5000,
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if len(f.groupGoals) != 1 || !f.groupGoals[0].Accepted {
		t.Fatal("a directly created group goal starts accepted")
	}
}

func TestExitChallengeSoleMemberTearsDown(t *testing.T) {
	f := newFakeStore()
	f.addMember("a", "alice")
	seedChallengeGoal(f, "g1", "Vacances", 10000, time.Now(), "a")
	n := &fakeNotifier{}
	svc := NewGoalService(f, n)
	ctx := context.Background()

	if err := svc.ExitChallenge(ctx, "a"); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if len(f.challengeGoals) != 0 {
		t.Fatal("the sole member leaving deletes the goal")
	}
	m, _ := f.MemberByID(ctx, "a")
	if m.ChallengeGoalID != nil {
		t.Fatal("the member must be detached")
	}
	if len(f.alarmsBy("a", models.AlarmDetailBoom)) != 1 {
		t.Fatal("expected a boom alarm to self")
	}

	// A second exit finds nothing to leave.
	if err := svc.ExitChallenge(ctx, "a"); !errors.Is(err, ErrNoActiveGoal) {
		t.Fatalf("expected ErrNoActiveGoal, got %v", err)
	}
}

func TestExitChallengeWithCoMembers(t *testing.T) {
	f := newFakeStore()
	f.addMember("a", "alice")
	f.addMember("b", "bob")
	f.addMember("c", "chloe")
	seedChallengeGoal(f, "g1", "Vacances", 10000, time.Now(), "a", "b", "c")
	svc := NewGoalService(f, nil)
	ctx := context.Background()

	if err := svc.ExitChallenge(ctx, "a"); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if len(f.challengeGoals) != 1 {
		t.Fatal("the goal survives the departure")
	}
	a, _ := f.MemberByID(ctx, "a")
	if a.ChallengeGoalID != nil {
		t.Fatal("alice must be detached")
	}
	for _, id := range []string{"b", "c"} {
		m, _ := f.MemberByID(ctx, id)
		if m.ChallengeGoalID == nil {
			t.Fatalf("%s keeps racing", id)
		}
		if len(f.alarmsBy(id, models.AlarmDetailExit)) != 1 {
			t.Fatalf("%s should hear of the departure", id)
		}
	}
	if len(f.alarmsBy("a", models.AlarmDetailExit)) != 0 {
		t.Fatal("the leaver gets no departure alarm")
	}
}

func TestExitGroupOfTwoTearsDown(t *testing.T) {
	f := newFakeStore()
	f.addMember("a", "alice")
	f.addMember("b", "bob")
	seedGroupGoal(f, "g1", "Cagnotte", 10000, time.Now(), "a", "b")
	svc := NewGoalService(f, nil)
	ctx := context.Background()

	if err := svc.ExitGroup(ctx, "a"); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if len(f.groupGoals) != 0 {
		t.Fatal("a group of two cannot survive a departure")
	}
	for _, id := range []string{"a", "b"} {
		m, _ := f.MemberByID(ctx, id)
		if m.GroupGoalID != nil {
			t.Fatalf("%s must be detached", id)
		}
		if len(f.alarmsBy(id, models.AlarmDetailBoom)) != 1 {
			t.Fatalf("%s should get a boom alarm", id)
		}
	}
}

func TestExitGroupOfThreeSurvives(t *testing.T) {
	f := newFakeStore()
	f.addMember("a", "alice")
	f.addMember("b", "bob")
	f.addMember("c", "chloe")
	seedGroupGoal(f, "g1", "Cagnotte", 10000, time.Now(), "a", "b", "c")
	svc := NewGoalService(f, nil)
	ctx := context.Background()

	if err := svc.ExitGroup(ctx, "a"); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if len(f.groupGoals) != 1 {
		t.Fatal("a group of three survives one departure")
	}
	a, _ := f.MemberByID(ctx, "a")
	if a.GroupGoalID != nil {
		t.Fatal("alice must be detached")
	}
	for _, id := range []string{"b", "c"} {
		if len(f.alarmsBy(id, models.AlarmDetailExit)) != 1 {
			t.Fatalf("%s should hear of the departure", id)
		}
	}
}

func TestChallengeInfoStatuses(t *testing.T) {
	f := newFakeStore()
	f.addMember("a", "alice")
	svc := NewGoalService(f, nil)
	ctx := context.Background()

	info, err := svc.ChallengeInfo(ctx, "a")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.GoalStatus != models.GoalStatusNone {
		t.Fatalf("expected noGoal, got %q", info.GoalStatus)
	}

	// A pending invitation flips the status to waiting.
	f.waitingGoals = append(f.waitingGoals, &models.WaitingGoal{
		ID: "w1", Name: "Vacances", Amount: 10000,
		GoalType: models.GoalTypeChallenge, ProposerID: "p", CreatedAt: time.Now(),
	})
	f.memberWaiting = append(f.memberWaiting, &models.MemberWaitingGoal{
		ID: "mw1", MemberID: "a", WaitingGoalID: "w1",
	})
	info, err = svc.ChallengeInfo(ctx, "a")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.GoalStatus != models.GoalStatusWaiting {
		t.Fatalf("expected waiting, got %q", info.GoalStatus)
	}
	if len(info.WaitingGoals) != 1 || info.WaitingGoals[0].Name != "Vacances" {
		t.Fatalf("unexpected waiting goals %+v", info.WaitingGoals)
	}

	// An active goal wins over the pending invitation.
	epoch := time.Now().Add(-time.Hour)
	seedChallengeGoal(f, "g1", "Voiture", 10000, epoch, "a")
	seedRecord(f, "a", models.RecordTypeChallenge, 4000, epoch.Add(time.Minute))
	info, err = svc.ChallengeInfo(ctx, "a")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.GoalStatus != models.GoalStatusActive {
		t.Fatalf("expected goal, got %q", info.GoalStatus)
	}
	if len(info.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(info.Members))
	}
	if info.Members[0].NowPercent != 40 || info.Members[0].LeftAmount != 6000 {
		t.Fatalf("unexpected progress %+v", info.Members[0])
	}
	if len(info.Records) != 1 {
		t.Fatalf("expected 1 contribution record, got %d", len(info.Records))
	}
}

func TestGroupInfoPoolsContributions(t *testing.T) {
	f := newFakeStore()
	f.addMember("a", "alice")
	f.addMember("b", "bob")
	epoch := time.Now().Add(-time.Hour)
	seedGroupGoal(f, "g1", "Cagnotte", 10000, epoch, "a", "b")
	seedRecord(f, "a", models.RecordTypeGroup, 2500, epoch.Add(time.Minute))
	seedRecord(f, "b", models.RecordTypeGroup, 2500, epoch.Add(2*time.Minute))
	seedRecord(f, "a", models.RecordTypeGroup, 2500, epoch.Add(-time.Minute)) // before epoch

	svc := NewGoalService(f, nil)
	info, err := svc.GroupInfo(context.Background(), "a")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.GoalStatus != models.GoalStatusActive {
		t.Fatalf("expected goal, got %q", info.GoalStatus)
	}
	if info.NowPercent != 50 || info.LeftAmount != 5000 {
		t.Fatalf("unexpected pooled progress %+v", info)
	}
	if len(info.Records) != 2 {
		t.Fatalf("expected 2 scoped records, got %d", len(info.Records))
	}
	if len(info.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(info.Members))
	}
}

func TestDoneGoalsSplitByType(t *testing.T) {
	f := newFakeStore()
	f.addMember("a", "alice")
	f.doneGoals = append(f.doneGoals,
		&models.DoneGoal{ID: "d1", MemberID: "a", Name: "Vacances", GoalType: models.GoalTypeChallenge},
		&models.DoneGoal{ID: "d2", MemberID: "a", Name: "Cagnotte", GoalType: models.GoalTypeGroup},
	)
	svc := NewGoalService(f, nil)
	ctx := context.Background()

	challengeInfo, err := svc.ChallengeInfo(ctx, "a")
	if err != nil {
		t.Fatalf("challenge info: %v", err)
	}
	if len(challengeInfo.DoneGoals) != 1 || challengeInfo.DoneGoals[0] != "Vacances" {
		t.Fatalf("unexpected challenge done goals %v", challengeInfo.DoneGoals)
	}
	groupInfo, err := svc.GroupInfo(ctx, "a")
	if err != nil {
		t.Fatalf("group info: %v", err)
	}
	if len(groupInfo.DoneGoals) != 1 || groupInfo.DoneGoals[0] != "Cagnotte" {
		t.Fatalf("unexpected group done goals %v", groupInfo.DoneGoals)
	}
}
