package catalog

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates an unknown service or staff id.
var ErrNotFound = errors.New("catalog: not found")

// Service is an offering of the salon. Immutable reference data.
type Service struct {
	ID       string
	Name     string
	Duration time.Duration
	Price    float64
	Skill    string
}

// StaffMember is a professional with a skill set and a working schedule.
// Immutable reference data loaded at startup.
type StaffMember struct {
	ID          string
	Name        string
	Skills      []string
	WorkingDays []time.Weekday
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
	Efficiency  float64
}

// HasSkill reports whether the staff member holds the given skill.
func (s StaffMember) HasSkill(skill string) bool {
	for _, k := range s.Skills {
		if k == skill {
			return true
		}
	}
	return false
}

// WorksOn reports whether the staff member works on the given weekday.
func (s StaffMember) WorksOn(day time.Weekday) bool {
	for _, d := range s.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// WorkingWindow returns the staff member's shift on the given date.
func (s StaffMember) WorkingWindow(date time.Time) (start, end time.Time) {
	y, m, d := date.Date()
	loc := date.Location()
	start = time.Date(y, m, d, s.StartHour, s.StartMinute, 0, 0, loc)
	end = time.Date(y, m, d, s.EndHour, s.EndMinute, 0, 0, loc)
	return start, end
}

// Catalog is a read-only view over the salon's services and staff.
type Catalog struct {
	services map[string]Service
	staff    map[string]StaffMember
	order    []string
}

// New builds a catalog from the given reference data.
func New(services []Service, staff []StaffMember) *Catalog {
	c := &Catalog{
		services: make(map[string]Service, len(services)),
		staff:    make(map[string]StaffMember, len(staff)),
	}
	for _, svc := range services {
		c.services[svc.ID] = svc
	}
	for _, st := range staff {
		c.staff[st.ID] = st
		c.order = append(c.order, st.ID)
	}
	return c
}

// ServiceByID returns the service with the given id.
func (c *Catalog) ServiceByID(id string) (Service, error) {
	svc, ok := c.services[id]
	if !ok {
		return Service{}, fmt.Errorf("service %q: %w", id, ErrNotFound)
	}
	return svc, nil
}

// StaffByID returns the staff member with the given id.
func (c *Catalog) StaffByID(id string) (StaffMember, error) {
	st, ok := c.staff[id]
	if !ok {
		return StaffMember{}, fmt.Errorf("staff %q: %w", id, ErrNotFound)
	}
	return st, nil
}

// Services returns all services in undefined order.
func (c *Catalog) Services() []Service {
	out := make([]Service, 0, len(c.services))
	for _, svc := range c.services {
		out = append(out, svc)
	}
	return out
}

// StaffQualifiedFor returns the staff members whose skill set covers the
// service's required skill, in declaration order.
func (c *Catalog) StaffQualifiedFor(serviceID string) ([]StaffMember, error) {
	svc, err := c.ServiceByID(serviceID)
	if err != nil {
		return nil, err
	}
	var qualified []StaffMember
	for _, id := range c.order {
		st := c.staff[id]
		if st.HasSkill(svc.Skill) {
			qualified = append(qualified, st)
		}
	}
	return qualified, nil
}
