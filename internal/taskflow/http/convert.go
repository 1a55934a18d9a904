package http

import (
	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	sdk "github.com/aussiebroadwan/taskflow/pkg/taskflowsdk"
)

func toUser(u domain.User) sdk.User {
	return sdk.User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		BusinessID:  u.BusinessID,
		LastLoginAt: u.LastLoginAt,
	}
}

func toBusiness(b domain.Business, role string) sdk.Business {
	return sdk.Business{
		ID:        b.ID,
		Name:      b.Name,
		Slug:      b.Slug,
		Plan:      b.Plan,
		OwnerID:   b.OwnerID,
		Role:      role,
		CreatedAt: b.CreatedAt,
	}
}

func toMemberships(ms []domain.Membership) []sdk.Business {
	return mapSlice(ms, func(m domain.Membership) sdk.Business { return toBusiness(m.Business, m.Role) })
}

func toMember(m domain.Member) sdk.Member {
	return sdk.Member{
		UserID:   m.UserID,
		Name:     m.Name,
		Email:    m.Email,
		Status:   m.Status,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

func toProject(p domain.Project) sdk.Project {
	return sdk.Project{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toTask(t domain.Task) sdk.Task {
	return sdk.Task{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		AssigneeID:  t.AssigneeID,
		DueDate:     t.DueDate,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTimeEntry(e domain.TimeEntry) sdk.TimeEntry {
	return sdk.TimeEntry{
		ID:        e.ID,
		ProjectID: e.ProjectID,
		TaskID:    e.TaskID,
		UserID:    e.UserID,
		Minutes:   e.Minutes,
		Note:      e.Note,
		SpentOn:   e.SpentOn,
		CreatedAt: e.CreatedAt,
	}
}

func toInvoice(i domain.Invoice) sdk.Invoice {
	return sdk.Invoice{
		ID:          i.ID,
		BusinessID:  i.BusinessID,
		Number:      i.Number,
		ClientName:  i.ClientName,
		AmountCents: i.AmountCents,
		Currency:    i.Currency,
		Status:      i.Status,
		IssuedAt:    i.IssuedAt,
		DueAt:       i.DueAt,
		CreatedAt:   i.CreatedAt,
	}
}

// mapSlice converts a slice and never returns nil, so JSON gets [] not null.
func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
