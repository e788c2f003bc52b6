// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/project-board/internal/domain/project"
)

// ProjectResponse represents a single project in HTTP responses.
type ProjectResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	NumberOfPeople int    `json:"number_of_people"`
	PeopleAssigned string `json:"people_assigned"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// ProjectListResponse represents a list of projects in HTTP responses.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Count    int               `json:"count"`
}

// ToProjectResponse converts a domain Project to an HTTP response DTO.
func ToProjectResponse(p project.Project) ProjectResponse {
	return ProjectResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		NumberOfPeople: p.NumberOfPeople,
		PeopleAssigned: p.PeopleAssigned(),
		Status:         p.Status.String(),
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToProjectListResponse converts projects, in order, to an HTTP list
// response DTO. The list is never null in JSON.
func ToProjectListResponse(projects []project.Project) ProjectListResponse {
	items := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		items[i] = ToProjectResponse(p)
	}
	return ProjectListResponse{
		Projects: items,
		Count:    len(items),
	}
}
