package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/defo-server/internal/model"
)

// echo returns a store write unchanged, like a database that accepts it.
func echo[T any](_ context.Context, v T) T {
	return v
}

func ownedProject(owner uuid.UUID) model.Project {
	return model.Project{
		ID:      uuid.New(),
		Name:    "Sales",
		OwnerID: owner,
		Status:  model.ProjectStatusActive,
	}
}
