package models

import "fmt"

// Persistence selects how a variant's collection survives restarts.
type Persistence string

const (
	PersistenceDurable   Persistence = "durable"
	PersistenceTransient Persistence = "transient"
)

// Variant is the policy for one kind of record collection.
type Variant struct {
	Name           string
	Persistence    Persistence
	DefaultStatus  Status
	RequireDueDate bool
	SlotKey        string
	// Noun is used by the view, e.g. "website" or "task".
	Noun string
}

var (
	// Projects are generated websites kept in durable storage.
	Projects = Variant{
		Name:          "projects",
		Persistence:   PersistenceDurable,
		DefaultStatus: StatusGenerated,
		SlotKey:       "userProjects",
		Noun:          "website",
	}

	// Tasks live for the current session only and carry a due date.
	Tasks = Variant{
		Name:           "tasks",
		Persistence:    PersistenceTransient,
		DefaultStatus:  StatusPending,
		RequireDueDate: true,
		SlotKey:        "tasks",
		Noun:           "task",
	}
)

// VariantByName resolves a configured variant name.
func VariantByName(name string) (Variant, error) {
	switch name {
	case Projects.Name:
		return Projects, nil
	case Tasks.Name:
		return Tasks, nil
	default:
		return Variant{}, fmt.Errorf("unknown variant %q", name)
	}
}
