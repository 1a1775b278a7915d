package hearing

import (
	"context"
	"errors"
	"time"

	"github.com/nandyala/kacheri/core"
)

var ErrNotFound = errors.New("hearing not found")

type (
	Repository interface {
		CreateHearing(ctx context.Context, hrg Hearing, exec ...core.DBExecutor) (Hearing, error)
		// QueryHearings default ordering is hearing date ascending.
		QueryHearings(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Hearing, error)
		GetHearing(ctx context.Context, id string, exec ...core.DBExecutor) (Hearing, error)
		UpdateHearing(ctx context.Context, hrg Hearing, exec ...core.DBExecutor) (Hearing, error)
		DeleteHearingsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nh NewHearing, createdBy string) (Hearing, error) {
	now := time.Now().UTC()
	hrg := Hearing{
		MatterID:    nh.MatterID,
		CaseNo:      nh.CaseNo,
		CourtName:   nh.CourtName,
		JudgeName:   nh.JudgeName,
		HearingDate: nh.HearingDate,
		Purpose:     nh.Purpose,
		Notes:       nh.Notes,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateHearing(ctx, hrg)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Hearing, error) {
	return svc.repo.QueryHearings(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Hearing, error) {
	return svc.repo.GetHearing(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, uh UpdateHearing) (Hearing, error) {
	hrg, err := svc.repo.GetHearing(ctx, id)
	if err != nil {
		return Hearing{}, err
	}
	if uh.CaseNo != "" {
		hrg.CaseNo = uh.CaseNo
	}
	if uh.CourtName != nil {
		hrg.CourtName = *uh.CourtName
	}
	if uh.JudgeName != nil {
		hrg.JudgeName = *uh.JudgeName
	}
	if uh.HearingDate != nil {
		hrg.HearingDate = *uh.HearingDate
	}
	if uh.Purpose != nil {
		hrg.Purpose = *uh.Purpose
	}
	if uh.Notes != nil {
		hrg.Notes = *uh.Notes
	}
	hrg.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateHearing(ctx, hrg)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteHearingsByID(ctx, ids)
	return err
}
