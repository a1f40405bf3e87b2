// ABOUTME: MCP tool implementations for health records.
// ABOUTME: Provides check-ins, BMI and MET helpers, the exercise log, and routines.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/harperreed/healthhub/internal/models"
	"github.com/harperreed/healthhub/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) registerTools() {
	// record_health
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_health",
		Description: "Record a check-in with weight, height, and cups of water; BMI is computed and stored",
	}, s.handleRecordHealth)

	// latest_health
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "latest_health",
		Description: "Get the most recent check-in with BMI class and hydration progress",
	}, s.handleLatestHealth)

	// calculate_bmi
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "calculate_bmi",
		Description: "Calculate and classify BMI without storing anything",
	}, s.handleCalculateBMI)

	// suggest_met
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "suggest_met",
		Description: "Suggest a MET value for an exercise name from the activity table",
	}, s.handleSuggestMET)

	// log_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_exercise",
		Description: "Log an exercise session; calories are estimated from MET, weight, and duration",
	}, s.handleLogExercise)

	// list_exercise_log
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercise_log",
		Description: "List logged exercise sessions, newest first",
	}, s.handleListExerciseLog)

	// clear_exercise_log
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_exercise_log",
		Description: "Delete every logged exercise session (check-ins and routines are kept)",
	}, s.handleClearExerciseLog)

	// create_routine
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_routine",
		Description: "Create a reusable routine with its exercises",
	}, s.handleCreateRoutine)

	// list_routines
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_routines",
		Description: "List saved routines, newest first",
	}, s.handleListRoutines)

	// get_routine
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_routine",
		Description: "Get a routine with all its exercises",
	}, s.handleGetRoutine)

	// complete_routine
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_routine",
		Description: "Log every exercise of a routine to the exercise log",
	}, s.handleCompleteRoutine)

	// delete_routine
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_routine",
		Description: "Delete a routine and its exercises",
	}, s.handleDeleteRoutine)
}

// Tool input/output types

type recordHealthInput struct {
	WeightKg float64 `json:"weight_kg" jsonschema:"Body weight in kilograms"`
	HeightM  float64 `json:"height_m" jsonschema:"Height in metres"`
	Cups     int     `json:"cups,omitempty" jsonschema:"Cups of water drunk today"`
	Note     string  `json:"note,omitempty" jsonschema:"Optional note"`
}

type recordHealthOutput struct {
	ID      int64    `json:"id"`
	BMI     *float64 `json:"bmi,omitempty"`
	Class   string   `json:"class"`
	Message string   `json:"message"`
}

type emptyInput struct{}

type latestHealthOutput struct {
	Found     bool                     `json:"found"`
	Entry     *healthEntryView         `json:"entry,omitempty"`
	Hydration *fitness.HydrationStatus `json:"hydration,omitempty"`
	Message   string                   `json:"message"`
}

type calculateBMIInput struct {
	WeightKg float64 `json:"weight_kg" jsonschema:"Body weight in kilograms"`
	HeightM  float64 `json:"height_m" jsonschema:"Height in metres"`
}

type calculateBMIOutput struct {
	BMI     *float64 `json:"bmi,omitempty"`
	Class   string   `json:"class"`
	Message string   `json:"message"`
}

type suggestMETInput struct {
	ExerciseName string `json:"exercise_name" jsonschema:"Exercise name, matched by keyword"`
}

type suggestMETOutput struct {
	MET     float64 `json:"met"`
	Matched bool    `json:"matched"`
	Message string  `json:"message"`
}

type logExerciseInput struct {
	Name        string  `json:"name" jsonschema:"Exercise name"`
	DurationMin float64 `json:"duration_min" jsonschema:"Duration in minutes"`
	MET         float64 `json:"met,omitempty" jsonschema:"MET value; suggested from the name when omitted"`
	WeightKg    float64 `json:"weight_kg,omitempty" jsonschema:"Body weight; latest check-in when omitted"`
}

type logExerciseOutput struct {
	ID       int64   `json:"id"`
	Calories float64 `json:"calories"`
	MET      float64 `json:"met"`
	Message  string  `json:"message"`
}

type listExerciseLogInput struct {
	Limit int  `json:"limit,omitempty" jsonschema:"Max results (default 20, negative for all)"`
	Today bool `json:"today,omitempty" jsonschema:"Only sessions logged today"`
}

type exerciseListOutput struct {
	Entries []exerciseView `json:"entries"`
	Count   int            `json:"count"`
}

type clearExerciseLogInput struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true to delete the exercise log"`
}

type clearExerciseLogOutput struct {
	Removed int64  `json:"removed"`
	Message string `json:"message"`
}

type routineItemInput struct {
	ExerciseName string  `json:"exercise_name" jsonschema:"Exercise name"`
	Sets         int     `json:"sets,omitempty" jsonschema:"Number of sets"`
	Reps         int     `json:"reps,omitempty" jsonschema:"Repetitions per set"`
	DurationMin  float64 `json:"duration_min,omitempty" jsonschema:"Duration in minutes; estimated from sets and reps when omitted"`
}

type createRoutineInput struct {
	Name  string             `json:"name" jsonschema:"Routine name"`
	Type  string             `json:"type,omitempty" jsonschema:"Routine type, e.g. casa or academia"`
	Items []routineItemInput `json:"items,omitempty" jsonschema:"Exercises in order"`
}

type routineOutput struct {
	Routine routineView `json:"routine"`
	Message string      `json:"message"`
}

type routineListOutput struct {
	Routines []routineView `json:"routines"`
	Count    int           `json:"count"`
}

type routineIDInput struct {
	ID int64 `json:"id" jsonschema:"Routine ID"`
}

type completeRoutineOutput struct {
	Logged        []exerciseView `json:"logged"`
	TotalCalories float64        `json:"total_calories"`
	TotalMinutes  float64        `json:"total_minutes"`
	Message       string         `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleRecordHealth(ctx context.Context, req *mcp.CallToolRequest, input recordHealthInput) (*mcp.CallToolResult, recordHealthOutput, error) {
	id, err := s.repo.AppendHealthEntry(input.WeightKg, input.HeightM, input.Cups, input.Note)
	if err != nil {
		return nil, recordHealthOutput{}, fmt.Errorf("failed to record health entry: %w", err)
	}

	bmi := fitness.ComputeBMI(input.WeightKg, input.HeightM)
	class := fitness.Classify(bmi)

	msg := fmt.Sprintf("Recorded check-in %d: %.1f kg, %s", id, input.WeightKg, class)
	if bmi != nil {
		msg = fmt.Sprintf("Recorded check-in %d: %.1f kg, BMI %.2f (%s)", id, input.WeightKg, *bmi, class)
	}

	return nil, recordHealthOutput{
		ID:      id,
		BMI:     bmi,
		Class:   class.String(),
		Message: msg,
	}, nil
}

func (s *Server) handleLatestHealth(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, latestHealthOutput, error) {
	e, err := s.repo.LatestHealthEntry()
	if errors.Is(err, storage.ErrNotFound) {
		return nil, latestHealthOutput{Message: "No check-ins recorded yet."}, nil
	}
	if err != nil {
		return nil, latestHealthOutput{}, fmt.Errorf("failed to get latest health entry: %w", err)
	}

	view := viewHealthEntry(e)
	hydration := fitness.Hydration(e.Cups, s.opts.CupML, s.opts.WaterGoalML)

	return nil, latestHealthOutput{
		Found:     true,
		Entry:     &view,
		Hydration: &hydration,
		Message:   fmt.Sprintf("Latest check-in on %s: %.1f kg (%s)", e.EntryDate, e.WeightKg, view.Class),
	}, nil
}

func (s *Server) handleCalculateBMI(ctx context.Context, req *mcp.CallToolRequest, input calculateBMIInput) (*mcp.CallToolResult, calculateBMIOutput, error) {
	bmi := fitness.ComputeBMI(input.WeightKg, input.HeightM)
	class := fitness.Classify(bmi)

	if bmi == nil {
		return nil, calculateBMIOutput{
			Class:   class.String(),
			Message: "Height must be greater than zero.",
		}, nil
	}

	return nil, calculateBMIOutput{
		BMI:     bmi,
		Class:   class.String(),
		Message: fmt.Sprintf("BMI %.2f (%s)", *bmi, class),
	}, nil
}

func (s *Server) handleSuggestMET(ctx context.Context, req *mcp.CallToolRequest, input suggestMETInput) (*mcp.CallToolResult, suggestMETOutput, error) {
	met, ok := fitness.SuggestMET(input.ExerciseName, s.repo.METTable())
	if !ok {
		return nil, suggestMETOutput{
			MET:     fitness.FallbackMET,
			Message: fmt.Sprintf("No match for %q; using default MET %.1f", input.ExerciseName, fitness.FallbackMET),
		}, nil
	}

	return nil, suggestMETOutput{
		MET:     met,
		Matched: true,
		Message: fmt.Sprintf("Suggested MET for %q: %.1f", input.ExerciseName, met),
	}, nil
}

func (s *Server) handleLogExercise(ctx context.Context, req *mcp.CallToolRequest, input logExerciseInput) (*mcp.CallToolResult, logExerciseOutput, error) {
	met := input.MET
	if met == 0 {
		met = fitness.SuggestMETOrFallback(input.Name, s.repo.METTable())
	}

	weight := input.WeightKg
	if weight == 0 {
		w, err := s.repo.LatestWeight(s.opts.DefaultWeightKg)
		if err != nil {
			return nil, logExerciseOutput{}, fmt.Errorf("failed to get latest weight: %w", err)
		}
		weight = w
	}

	calories, err := fitness.EstimateCalories(met, weight, input.DurationMin)
	if err != nil {
		return nil, logExerciseOutput{}, fmt.Errorf("failed to estimate calories: %w", err)
	}

	id, err := s.repo.AppendExerciseLog(input.Name, input.DurationMin, calories, met)
	if err != nil {
		return nil, logExerciseOutput{}, fmt.Errorf("failed to log exercise: %w", err)
	}

	s.log.Debug("logged exercise via MCP", zap.Int64("id", id), zap.String("name", input.Name))
	return nil, logExerciseOutput{
		ID:       id,
		Calories: calories,
		MET:      met,
		Message:  fmt.Sprintf("Logged %s: %.0f min, %.0f kcal (MET %.1f)", input.Name, input.DurationMin, calories, met),
	}, nil
}

func (s *Server) handleListExerciseLog(ctx context.Context, req *mcp.CallToolRequest, input listExerciseLogInput) (*mcp.CallToolResult, exerciseListOutput, error) {
	var entries []*models.ExerciseLogEntry
	var err error
	if input.Today {
		entries, err = s.repo.ListExerciseLogOn(timeNow())
	} else {
		limit := input.Limit
		if limit == 0 {
			limit = 20
		}
		entries, err = s.repo.ListExerciseLog(limit)
	}
	if err != nil {
		return nil, exerciseListOutput{}, fmt.Errorf("failed to list exercise log: %w", err)
	}

	return nil, exerciseListOutput{
		Entries: viewExercises(entries),
		Count:   len(entries),
	}, nil
}

func (s *Server) handleClearExerciseLog(ctx context.Context, req *mcp.CallToolRequest, input clearExerciseLogInput) (*mcp.CallToolResult, clearExerciseLogOutput, error) {
	if !input.Confirm {
		return nil, clearExerciseLogOutput{}, fmt.Errorf("refusing to clear the exercise log without confirm: true")
	}

	removed, err := s.repo.ClearExerciseLog()
	if err != nil {
		return nil, clearExerciseLogOutput{}, fmt.Errorf("failed to clear exercise log: %w", err)
	}

	return nil, clearExerciseLogOutput{
		Removed: removed,
		Message: fmt.Sprintf("Removed %d exercise sessions", removed),
	}, nil
}

func (s *Server) handleCreateRoutine(ctx context.Context, req *mcp.CallToolRequest, input createRoutineInput) (*mcp.CallToolResult, routineOutput, error) {
	items := make([]models.RoutineItem, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, models.NewRoutineItem(it.ExerciseName, it.Sets, it.Reps, it.DurationMin))
	}

	r, err := s.repo.CreateRoutineWithItems(input.Name, input.Type, items)
	if err != nil {
		return nil, routineOutput{}, fmt.Errorf("failed to create routine: %w", err)
	}

	return nil, routineOutput{
		Routine: viewRoutine(r),
		Message: fmt.Sprintf("Created routine %q with %d exercises (ID: %d)", r.Name, len(r.Items), r.ID),
	}, nil
}

func (s *Server) handleListRoutines(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, routineListOutput, error) {
	routines, err := s.repo.ListRoutines()
	if err != nil {
		return nil, routineListOutput{}, fmt.Errorf("failed to list routines: %w", err)
	}

	out := routineListOutput{Routines: make([]routineView, 0, len(routines))}
	for _, r := range routines {
		out.Routines = append(out.Routines, viewRoutine(r))
	}
	out.Count = len(out.Routines)
	return nil, out, nil
}

func (s *Server) handleGetRoutine(ctx context.Context, req *mcp.CallToolRequest, input routineIDInput) (*mcp.CallToolResult, routineOutput, error) {
	r, err := s.repo.GetRoutine(input.ID)
	if err != nil {
		return nil, routineOutput{}, fmt.Errorf("routine not found: %d: %w", input.ID, err)
	}

	return nil, routineOutput{
		Routine: viewRoutine(r),
		Message: fmt.Sprintf("Routine %q has %d exercises", r.Name, len(r.Items)),
	}, nil
}

func (s *Server) handleCompleteRoutine(ctx context.Context, req *mcp.CallToolRequest, input routineIDInput) (*mcp.CallToolResult, completeRoutineOutput, error) {
	logged, err := s.repo.CompleteRoutine(input.ID)
	if err != nil {
		return nil, completeRoutineOutput{}, fmt.Errorf("failed to complete routine: %w", err)
	}

	out := completeRoutineOutput{Logged: viewExercises(logged)}
	for _, e := range logged {
		out.TotalCalories += e.Calories
		out.TotalMinutes += e.DurationMin
	}
	out.Message = fmt.Sprintf("Logged %d exercises: %.0f min, %.0f kcal", len(logged), out.TotalMinutes, out.TotalCalories)
	return nil, out, nil
}

func (s *Server) handleDeleteRoutine(ctx context.Context, req *mcp.CallToolRequest, input routineIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteRoutine(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete routine: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted routine: %d", input.ID),
	}, nil
}
