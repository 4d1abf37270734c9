package app

import (
	"fmt"

	"github.com/aquademy/coachcore-backend/internal/clients/cohort"
	"github.com/aquademy/coachcore-backend/internal/clients/roster"
	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/platform/openai"
)

type Clients struct {
	Roster roster.Client
	Cohort cohort.Client
	OpenAI openai.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring external clients...")

	rosterClient, err := roster.New(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init roster client: %w", err)
	}
	cohortClient, err := cohort.New(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init cohort client: %w", err)
	}
	aiClient, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	return Clients{
		Roster: rosterClient,
		Cohort: cohortClient,
		OpenAI: aiClient,
	}, nil
}
