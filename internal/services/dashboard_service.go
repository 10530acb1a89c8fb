package services

import (
	"context"
	"fmt"

	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/database"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/models"
	"github.com/justsurfingit/Hiring-Pipeline-Tracker/internal/repository"
)

const recentActivityLimit = 5

type DashboardService struct {
	candidates *repository.CandidateRepository
	positions  *repository.PositionRepository
}

func NewDashboardService(candidates *repository.CandidateRepository, positions *repository.PositionRepository) *DashboardService {
	return &DashboardService{candidates: candidates, positions: positions}
}

type DashboardOverview struct {
	TotalCandidates int64 `json:"totalCandidates"`
	TotalPositions  int64 `json:"totalPositions"`
	OpenPositions   int64 `json:"openPositions"`
	// FillRate is (total - open) / total as a percentage with one decimal,
	// "0" when there are no positions yet.
	FillRate string `json:"fillRate"`
}

type RecentActivity struct {
	Candidates []models.Candidate `json:"candidates"`
	Positions  []models.Position  `json:"positions"`
}

type DashboardData struct {
	Overview              DashboardOverview     `json:"overview"`
	CandidatesByStage     []database.GroupCount `json:"candidatesByStage"`
	PositionsByDepartment []database.GroupCount `json:"positionsByDepartment"`
	RecentActivity        RecentActivity        `json:"recentActivity"`
}

// Overview assembles the dashboard read model: totals, fill rate, group
// counts and the latest activity on both collections.
func (s *DashboardService) Overview(ctx context.Context) (*DashboardData, error) {
	totalCandidates, err := s.candidates.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalPositions, err := s.positions.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	openPositions, err := s.positions.CountWhere(ctx, "status", models.PositionOpen)
	if err != nil {
		return nil, err
	}

	fillRate := "0"
	if totalPositions > 0 {
		fillRate = fmt.Sprintf("%.1f", float64(totalPositions-openPositions)/float64(totalPositions)*100)
	}

	candidatesByStage, err := s.candidates.GroupCountBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	positionsByDepartment, err := s.positions.GroupCountBy(ctx, "department")
	if err != nil {
		return nil, err
	}

	recentCandidates, err := s.candidates.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	recentPositions, err := s.positions.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Overview: DashboardOverview{
			TotalCandidates: totalCandidates,
			TotalPositions:  totalPositions,
			OpenPositions:   openPositions,
			FillRate:        fillRate,
		},
		CandidatesByStage:     candidatesByStage,
		PositionsByDepartment: positionsByDepartment,
		RecentActivity: RecentActivity{
			Candidates: recentCandidates,
			Positions:  recentPositions,
		},
	}, nil
}
