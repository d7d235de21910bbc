package request

import (
	"strings"

	"lab-scheduler/internal/usecase/commands"
	"lab-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	ManagerID   uuid.UUID `json:"manager_id,omitempty"`
}

func (r CreateResourceRequest) ToParams() commands.CreateResourceParams {
	return commands.CreateResourceParams{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Location:    strings.TrimSpace(r.Location),
		PhotoURL:    r.PhotoURL,
		ManagerID:   r.ManagerID,
	}
}

type UpdateResourceStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	ExpectedVersion int64  `json:"expected_version" binding:"required"`
}

type ListResourcesQuery struct {
	Keyword        string `form:"keyword"`
	OrganizationID string `form:"organization_id"`
	Status         string `form:"status"`
	Limit          int32  `form:"limit"`
	Offset         int32  `form:"offset"`
}

func (q ListResourcesQuery) ToFilter() (queries.ResourceFilter, error) {
	orgID, err := parseOptionalUUID(q.OrganizationID)
	if err != nil {
		return queries.ResourceFilter{}, err
	}
	return queries.ResourceFilter{
		Keyword:        normalizeOptional(q.Keyword),
		OrganizationID: orgID,
		Status:         normalizeOptional(strings.ToLower(q.Status)),
	}, nil
}
