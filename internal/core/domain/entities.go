package domain

import "time"

// Entity is anything a resource-state container can manage.
type Entity interface {
	EntityID() string
}

// ProfileKind distinguishes the three staff profile collections.
type ProfileKind string

const (
	ProfileAssociate ProfileKind = "associate"
	ProfileIntern    ProfileKind = "intern"
	ProfilePartner   ProfileKind = "partner"
)

// Profile is a staff member record (associate, intern or partner).
type Profile struct {
	ID         string      `json:"id"`
	Kind       ProfileKind `json:"kind"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone,omitempty"`
	Specialty  string      `json:"specialty,omitempty"`
	HourlyRate float64     `json:"hourly_rate,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (p Profile) EntityID() string { return p.ID }

// Client is a firm client the billing is issued against.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Client) EntityID() string { return c.ID }

// Matter is a legal case opened for a client.
type Matter struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	OpenedAt time.Time `json:"opened_at"`
}

func (m Matter) EntityID() string { return m.ID }

// Invoice is a bill issued for work on a matter.
type Invoice struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	MatterID string    `json:"matter_id"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	Status   string    `json:"status"`
	IssuedAt time.Time `json:"issued_at"`
	DueAt    time.Time `json:"due_at"`
}

func (i Invoice) EntityID() string { return i.ID }
