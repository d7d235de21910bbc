package response

import (
	"time"

	"lab-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ResourceResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	PhotoURL       *string   `json:"photoUrl,omitempty"`
	Location       string    `json:"location"`
	Status         string    `json:"status"`
	OrganizationID uuid.UUID `json:"organizationId"`
	ManagerID      uuid.UUID `json:"managerId"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type ResourceListResponse struct {
	Items  []*ResourceResponse `json:"items"`
	Total  int64               `json:"total"`
	Limit  int32               `json:"limit"`
	Offset int32               `json:"offset"`
}

func FromResourceView(v *queries.ResourceView) *ResourceResponse {
	var resp ResourceResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromResourcePage(page *queries.Page[*queries.ResourceView]) *ResourceListResponse {
	items := make([]*ResourceResponse, len(page.Items))
	for i, item := range page.Items {
		items[i] = FromResourceView(item)
	}
	return &ResourceListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}
