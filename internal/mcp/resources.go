// ABOUTME: MCP resource implementations for health records.
// ABOUTME: Provides healthhub://today and healthhub://progress resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/healthhub/internal/models"
	"github.com/harperreed/healthhub/internal/report"
	"github.com/harperreed/healthhub/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI    = "healthhub://today"
	progressURI = "healthhub://progress"
)

// timeNow is replaced in tests.
var timeNow = time.Now

func (s *Server) registerResources() {
	// healthhub://today - Latest check-in plus today's exercise
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Dashboard",
		Description: "Latest check-in with BMI and hydration, and exercise logged today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// healthhub://progress - Totals per exercise and recent check-ins
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         progressURI,
		Name:        "Exercise Progress",
		Description: "Minutes and calories per exercise, exercises needing practice, and the last 7 check-ins",
		MIMEType:    "application/json",
	}, s.handleProgressResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := timeNow()

	latest, err := s.repo.LatestHealthEntry()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to get latest health entry: %w", err)
	}

	todayLog, err := s.repo.ListExerciseLogOn(now)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's exercise: %w", err)
	}

	dash := report.Today(latest, todayLog)

	result := map[string]interface{}{
		"date":           now.Format(models.DateLayout),
		"class":          dash.Class,
		"calories_today": dash.CaloriesToday,
		"minutes_today":  dash.MinutesToday,
		"sessions":       dash.Sessions,
		"distribution":   dash.Distribution,
		"exercises":      viewExercises(todayLog),
	}
	if latest != nil {
		result["latest"] = viewHealthEntry(latest)
	}
	if h, ok := dash.Hydration(s.opts.CupML, s.opts.WaterGoalML); ok {
		result["hydration"] = h
	}

	return jsonResource(todayURI, result)
}

func (s *Server) handleProgressResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	log, err := s.repo.ListExerciseLog(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercise log: %w", err)
	}

	entries, err := s.repo.ListHealthEntries(7)
	if err != nil {
		return nil, fmt.Errorf("failed to list health entries: %w", err)
	}

	totals := report.Summarize(log)
	recent := make([]healthEntryView, 0, len(entries))
	for _, e := range entries {
		recent = append(recent, viewHealthEntry(e))
	}

	var caloriesTotal, minutesTotal float64
	for _, t := range totals {
		caloriesTotal += t.Calories
		minutesTotal += t.DurationMin
	}

	result := map[string]interface{}{
		"generated_at":    timeNow().Format(time.RFC3339),
		"totals":          totals,
		"top":             report.Top(totals, report.TopCount),
		"needs_practice":  report.NeedsPractice(totals, report.NeedsPracticeCount),
		"recent_checkins": recent,
		"summary": map[string]interface{}{
			"sessions":       len(log),
			"exercise_types": len(totals),
			"total_minutes":  minutesTotal,
			"total_calories": caloriesTotal,
		},
	}
	if len(entries) > 0 {
		result["weight_change_kg"] = weightChange(entries)
	}

	return jsonResource(progressURI, result)
}

// weightChange compares the newest entry with the oldest one given
// (entries are newest first).
func weightChange(entries []*models.HealthEntry) float64 {
	return entries[0].WeightKg - entries[len(entries)-1].WeightKg
}

func jsonResource(uri string, result any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
