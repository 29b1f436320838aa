package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"surveydash/internal/analytics"
	"surveydash/internal/app"
	"surveydash/internal/config"
	"surveydash/internal/metrics"
	"surveydash/internal/model"
	"surveydash/internal/service"
)

const seedResponses = 24

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stores, err := app.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open stores", "error", err)
		os.Exit(1)
	}
	defer stores.Close(context.Background())

	registry := analytics.NewRegistry()
	surveySvc := service.NewSurveyService(stores.SurveyRepo, stores.ResponseRepo, stores.ReportCache, registry,
		cfg.SurveyPageSize, cfg.RecentSurveys)
	responseSvc := service.NewResponseService(stores.SurveyRepo, stores.ResponseRepo, stores.ReportCache, registry,
		metrics.New(prometheus.NewRegistry()), cfg.ResponsePageSize)

	// Owned by the configured host so it shows up after login
	hostID := service.HostID(cfg.HostUsername)

	survey, err := surveySvc.Create(ctx, hostID, &model.CreateSurveyRequest{
		Title:       "Smartphone Launch Feedback",
		Description: "Understand user perception, satisfaction, and improvement areas for the new device.",
		Questions: []model.CreateQuestionRequest{
			{
				Kind:     model.KindLikert,
				Label:    "On a scale from 1 to 5, how satisfied are you with this smartphone overall?",
				ScaleMin: 1,
				ScaleMax: 5,
			},
			{
				Kind:    model.KindMultiChoice,
				Label:   "Which model did you purchase?",
				Choices: []string{"Standard Model", "Pro / Plus Model", "Ultra / Max Model"},
			},
			{
				Kind:    model.KindMultiChoice,
				Label:   "Which feature do you find the most impressive?",
				Choices: []string{"Display", "Battery", "Camera", "Speed", "Design"},
			},
			{
				Kind:     model.KindLikert,
				Label:    "How would you rate the phone's performance during everyday tasks?",
				ScaleMin: 1,
				ScaleMax: 5,
			},
		},
	})
	if err != nil {
		slog.Error("failed to create survey", "error", err)
		os.Exit(1)
	}

	if _, err := surveySvc.UpdateStatus(ctx, hostID, survey.ID, model.SurveyPublished); err != nil {
		slog.Error("failed to publish survey", "error", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(2026))
	for i := 1; i <= seedResponses; i++ {
		req := &model.SubmitResponseRequest{
			RespondentID:   fmt.Sprintf("seed-%02d", i),
			RespondentName: fmt.Sprintf("Respondent %02d", i),
		}
		for _, q := range survey.Questions {
			// leave roughly one answer in six blank
			if rng.Intn(6) == 0 {
				continue
			}
			var v model.AnswerValue
			switch q.Kind {
			case model.KindLikert:
				v.Rating = model.IntPtr(q.ScaleMin + rng.Intn(q.ScaleMax-q.ScaleMin+1))
			case model.KindMultiChoice:
				v.Choice = q.Choices[rng.Intn(len(q.Choices))]
			}
			req.Answers = append(req.Answers, model.AnswerRequest{QuestionID: q.ID, Value: v})
		}
		if _, err := responseSvc.Submit(ctx, survey.ID, req); err != nil {
			slog.Error("failed to submit response", "respondent", req.RespondentID, "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Successfully created survey '%s' (%s) with %d responses for host '%s'\n",
		survey.Title, survey.ID, seedResponses, hostID)
}
