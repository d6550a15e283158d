//go:build integration_test

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/trainingcoach/internal/training/adaptation"
	"github.com/2beens/trainingcoach/internal/training/checkout"
	"github.com/2beens/trainingcoach/internal/training/engine"
	"github.com/2beens/trainingcoach/internal/training/readiness"
	"github.com/2beens/trainingcoach/internal/training/session"
)

func (s *IntegrationTestSuite) submitCheckin(ctx context.Context, token string, c map[string]any) engine.CheckinResult {
	resp, body := s.do(ctx, http.MethodPost, "/training/checkins", token, c)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var res engine.CheckinResult
	s.Require().NoError(json.Unmarshal(body, &res))
	return res
}

func redCheckin() map[string]any {
	return map[string]any{
		"sleepQuality":   2,
		"sleepHours":     4.5,
		"muscleSoreness": 9,
		"stressLevel":    9,
		"energyLevel":    2,
	}
}

func (s *IntegrationTestSuite) TestCheckin_SameDayReplaces() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.studentSession(ctx, "student-checkin")

	resp, body := s.do(ctx, http.MethodGet, "/training/checkins/today", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var today engine.TodayCheckin
	s.Require().NoError(json.Unmarshal(body, &today))
	s.True(today.CheckinRequired)

	first := s.submitCheckin(ctx, token, redCheckin())
	s.Equal(readiness.LevelRed, first.Result.Level)
	s.Equal(readiness.LevelRed, first.Rule.Level)

	second := s.submitCheckin(ctx, token, map[string]any{
		"sleepQuality":   9,
		"muscleSoreness": 2,
		"stressLevel":    2,
		"energyLevel":    9,
	})
	s.Equal(readiness.LevelGreen, second.Result.Level)

	var count int
	s.Require().NoError(s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wellness_checkin WHERE student_id = $1`, "student-checkin",
	).Scan(&count))
	s.Equal(1, count)

	resp, body = s.do(ctx, http.MethodGet, "/training/checkins", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var history readiness.ListResponse
	s.Require().NoError(json.Unmarshal(body, &history))
	s.Require().Len(history.Checkins, 1)
	s.Equal(readiness.LevelGreen, history.Checkins[0].ReadinessLevel)
}

func (s *IntegrationTestSuite) TestCheckin_Invalid() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.studentSession(ctx, "student-invalid")
	resp, _ := s.do(ctx, http.MethodPost, "/training/checkins", token, map[string]any{
		"sleepQuality":   0,
		"muscleSoreness": 11,
		"stressLevel":    5,
		"energyLevel":    5,
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestSession_RedDayFullFlow() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.studentSession(ctx, "student-red")
	s.submitCheckin(ctx, token, redCheckin())

	resp, body := s.do(ctx, http.MethodPost, "/training/sessions", token, map[string]any{
		"planId": "plan-1",
		"exercises": []map[string]any{
			{"id": "squat", "name": "Back Squat", "sets": 3, "reps": 10, "restSeconds": 90},
			{"id": "row", "name": "Barbell Row", "sets": 2, "reps": 8, "restSeconds": 60},
		},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	var snap session.Snapshot
	s.Require().NoError(json.Unmarshal(body, &snap))
	s.Equal(readiness.LevelRed, snap.ReadinessLevel)
	s.Equal(session.StateAwaitingSet, snap.State)
	s.Require().NotNil(snap.CurrentExercise)
	s.True(snap.CurrentExercise.Adapted)
	s.Less(snap.Modifiers.Volume, 1.0)

	// a second start while one is running is rejected
	resp, _ = s.do(ctx, http.MethodPost, "/training/sessions", token, map[string]any{
		"exercises": []map[string]any{{"id": "squat", "name": "Back Squat"}},
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	logSet := func(exerciseID string, setNumber int) session.SetResult {
		resp, body := s.do(ctx, http.MethodPost, "/training/sessions/current/sets", token, map[string]any{
			"exerciseId": exerciseID,
			"setNumber":  setNumber,
			"reps":       8,
			"weightKg":   60.0,
			"rpe":        7,
		})
		s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
		var res session.SetResult
		s.Require().NoError(json.Unmarshal(body, &res))
		return res
	}

	first := logSet("squat", 1)
	s.False(first.Duplicate)
	s.Equal(session.StateResting, first.Session.State)

	// retried submission of the same set is ignored
	dup := logSet("squat", 1)
	s.True(dup.Duplicate)

	resp, _ = s.do(ctx, http.MethodPost, "/training/sessions/current/rest/finish", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	// move on to the second exercise
	resp, _ = s.do(ctx, http.MethodPost, "/training/sessions/current/skip", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	logSet("row", 1)

	resp, body = s.do(ctx, http.MethodPost, "/training/sessions/current/finish", token, map[string]any{
		"overallRpe": 8,
		"feeling":    "tired",
		"notes":      "heavy legs",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var record checkout.Record
	s.Require().NoError(json.Unmarshal(body, &record))
	s.Equal(checkout.StatusCompleted, record.Session.Status)
	s.Equal(readiness.LevelRed, record.Session.ReadinessLevel)
	s.Equal(2, record.Session.CompletedExercises)
	s.InDelta(960.0, record.Session.TotalVolumeKg, 0.001)

	resp, _ = s.do(ctx, http.MethodGet, "/training/sessions/current", token, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var storedLogs int
	s.Require().NoError(s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercise_log WHERE session_id = $1`, record.Session.ID,
	).Scan(&storedLogs))
	s.Equal(2, storedLogs)

	resp, body = s.do(ctx, http.MethodGet, "/training/sessions/list/page/1/size/10", token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var list checkout.ListResponse
	s.Require().NoError(json.Unmarshal(body, &list))
	s.Equal(1, list.Total)
	s.Require().Len(list.Sessions, 1)
	s.Equal(record.Session.ID, list.Sessions[0].Session.ID)
}

func (s *IntegrationTestSuite) TestSession_AbandonWritesNothing() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.studentSession(ctx, "student-abandon")

	// no check-in today, the session runs unadapted
	resp, body := s.do(ctx, http.MethodPost, "/training/sessions", token, map[string]any{
		"exercises": []map[string]any{
			{"id": "bench", "name": "Bench Press", "sets": 3, "reps": 5, "restSeconds": 120},
		},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var snap session.Snapshot
	s.Require().NoError(json.Unmarshal(body, &snap))
	s.Equal(adaptation.NeutralModifiers(), snap.Modifiers)

	resp, _ = s.do(ctx, http.MethodDelete, "/training/sessions/current?reason=gym+closed", token, nil)
	s.Require().Equal(http.StatusNoContent, resp.StatusCode)

	var count int
	s.Require().NoError(s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workout_session WHERE student_id = $1`, "student-abandon",
	).Scan(&count))
	s.Equal(0, count)
}

func (s *IntegrationTestSuite) TestAdaptationRules_UpdateIsUsedForNextCheckin() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adminToken := s.doLogin(ctx)

	resp, body := s.doAdmin(ctx, http.MethodGet, "/training/adaptation/rules", adminToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var rules adaptation.ListRulesResponse
	s.Require().NoError(json.Unmarshal(body, &rules))
	s.Require().Len(rules.Rules, 3)

	var original adaptation.Rule
	for _, r := range rules.Rules {
		if r.Level == readiness.LevelRed {
			original = r
		}
	}
	s.Require().Equal(readiness.LevelRed, original.Level)

	resp, body = s.doAdmin(ctx, http.MethodPut, "/training/adaptation/rules/red", adminToken, adaptation.UpdateRuleRequest{
		Modifiers: adaptation.Modifiers{Volume: 0.5, Intensity: 0.6, Rest: 1.5},
		Message:   "Take it very easy.",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	defer func() {
		resp, _ := s.doAdmin(ctx, http.MethodPut, "/training/adaptation/rules/red", adminToken, adaptation.UpdateRuleRequest{
			Modifiers: original.Modifiers,
			Message:   original.Message,
		})
		s.Equal(http.StatusOK, resp.StatusCode)
	}()

	token := s.studentSession(ctx, "student-rules")
	res := s.submitCheckin(ctx, token, redCheckin())
	s.Equal(0.5, res.Rule.Modifiers.Volume)
	s.Equal("Take it very easy.", res.Rule.Message)
}
